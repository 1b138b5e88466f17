package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_Forbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.admin.AddCode(ctx, "wrong", NewCode{Code: "X", Amount: 1})
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = f.admin.ListCodes(ctx, "")
	assert.ErrorIs(t, err, common.ErrForbidden)

	cfg := testConfig()
	cfg.AdminSecret = ""
	disabled := newFixtureWithConfig(t, cfg)
	_, err = disabled.admin.AddCode(ctx, "", NewCode{Code: "X", Amount: 1})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestAdmin_AddCodeValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	past := f.clock.Now().Add(-time.Minute)

	tests := []struct {
		name string
		req  NewCode
		want error
	}{
		{"empty code", NewCode{Code: " ", Amount: 1}, common.ErrMissingFields},
		{"zero amount", NewCode{Code: "A", Amount: 0}, common.ErrInvalidInput},
		{"negative amount", NewCode{Code: "A", Amount: -5}, common.ErrInvalidInput},
		{"bad mode", NewCode{Code: "A", Amount: 1, Mode: "sometimes"}, common.ErrInvalidInput},
		{"past expiry", NewCode{Code: "A", Amount: 1, ExpiresAt: &past}, common.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.admin.AddCode(ctx, "op-secret", tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	_, ok := f.registry.Code("A")
	assert.False(t, ok)
}

func TestAdmin_AddAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.admin.AddCode(ctx, "op-secret", NewCode{Code: "welcome", Amount: 40})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME", c.Code)
	assert.Equal(t, models.PerAccountOnce, c.Mode)

	codes, err := f.admin.ListCodes(ctx, "op-secret")
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "WELCOME", codes[0].Code)
	assert.Equal(t, "ZENYXONTOP", codes[1].Code)

	token := f.signup(t, "alice")
	res, err := f.redemption.Redeem(ctx, "alice", token, "Welcome")
	require.NoError(t, err)
	assert.Equal(t, int64(40), res.NewBalance)
}

func TestAdmin_ReAddResetsConsumedCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice")
	bob := f.signup(t, "bob")

	_, err := f.admin.AddCode(ctx, "op-secret", NewCode{Code: "DROP", Amount: 5, Mode: "global_once"})
	require.NoError(t, err)
	_, err = f.redemption.Redeem(ctx, "alice", alice, "DROP")
	require.NoError(t, err)

	_, err = f.admin.AddCode(ctx, "op-secret", NewCode{Code: "DROP", Amount: 5, Mode: "global_once"})
	require.NoError(t, err)
	_, err = f.redemption.Redeem(ctx, "bob", bob, "DROP")
	assert.NoError(t, err)
}
