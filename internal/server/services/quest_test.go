package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimQuest_Cooldown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.signup(t, "alice")

	c, err := f.quests.ClaimQuest(ctx, "alice", token, "daily", 25)
	require.NoError(t, err)
	assert.Equal(t, int64(25), c.NewBalance)
	assert.Equal(t, f.clock.Now(), c.ClaimedAt)
	assert.Equal(t, "Claimed 25 Aether Shards from quest daily!", c.Message())

	f.clock.Advance(time.Hour)
	_, err = f.quests.ClaimQuest(ctx, "alice", token, "daily", 25)
	require.ErrorIs(t, err, common.ErrCooldownActive)

	var cd *common.CooldownError
	require.True(t, errors.As(err, &cd))
	assert.Equal(t, "daily", cd.QuestID)
	assert.Equal(t, 11*time.Hour, cd.Remaining)

	f.clock.Advance(11*time.Hour - time.Millisecond)
	_, err = f.quests.ClaimQuest(ctx, "alice", token, "daily", 25)
	assert.ErrorIs(t, err, common.ErrCooldownActive)

	f.clock.Advance(time.Millisecond)
	c, err = f.quests.ClaimQuest(ctx, "alice", token, "daily", 25)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.NewBalance)

	acc, _ := f.registry.Account("alice")
	last, ok := acc.LastClaim("daily")
	require.True(t, ok)
	assert.True(t, last.Equal(f.clock.Now()))
}

func TestClaimQuest_QuestsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.signup(t, "alice")
	bob := f.signup(t, "bob")

	_, err := f.quests.ClaimQuest(ctx, "alice", token, "daily", 10)
	require.NoError(t, err)
	_, err = f.quests.ClaimQuest(ctx, "alice", token, "weekly", 10)
	require.NoError(t, err)
	_, err = f.quests.ClaimQuest(ctx, "bob", bob, "daily", 10)
	require.NoError(t, err)
}

func TestClaimQuest_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.signup(t, "alice")

	_, err := f.quests.ClaimQuest(ctx, "alice", token, "  ", 10)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = f.quests.ClaimQuest(ctx, "alice", token, "daily", -1)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = f.quests.ClaimQuest(ctx, "alice", "bad", "daily", 1)
	assert.ErrorIs(t, err, common.ErrUnauthorizedAccount)
	_, err = f.quests.ClaimQuest(ctx, "ghost", token, "daily", 1)
	assert.ErrorIs(t, err, common.ErrUnauthorizedAccount)

	acc, _ := f.registry.Account("alice")
	assert.Empty(t, acc.QuestClaims)
}

func TestClaimQuest_ZeroRewardStartsCooldown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.signup(t, "alice")

	_, err := f.quests.ClaimQuest(ctx, "alice", token, "daily", 0)
	require.NoError(t, err)
	_, err = f.quests.ClaimQuest(ctx, "alice", token, "daily", 5)
	assert.ErrorIs(t, err, common.ErrCooldownActive)
}

func TestClaimQuest_ConfiguredCooldown(t *testing.T) {
	cfg := testConfig()
	cfg.QuestCooldown = time.Minute
	f := newFixtureWithConfig(t, cfg)
	ctx := context.Background()
	token := f.signup(t, "alice")

	_, err := f.quests.ClaimQuest(ctx, "alice", token, "daily", 1)
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.quests.ClaimQuest(ctx, "alice", token, "daily", 1)
	assert.NoError(t, err)
}

func TestClaimQuest_PersistenceFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.signup(t, "alice")

	f.store.setSaveErr(errors.New("down"))
	_, err := f.quests.ClaimQuest(ctx, "alice", token, "daily", 10)
	assert.ErrorIs(t, err, common.ErrPersistenceUnavailable)

	f.store.setSaveErr(nil)
	_, err = f.quests.ClaimQuest(ctx, "alice", token, "daily", 10)
	assert.NoError(t, err, "a failed claim must not start the cooldown")
}
