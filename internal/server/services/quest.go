package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/dmitrijs2005/azyrnyx/internal/server/registry"
)

// Claim describes a granted quest reward.
type Claim struct {
	QuestID    string
	Reward     int64
	NewBalance int64
	ClaimedAt  time.Time
}

func (c *Claim) Message() string {
	return fmt.Sprintf("Claimed %d Aether Shards from quest %s!", c.Reward, c.QuestID)
}

type QuestService struct {
	registry *registry.Registry
	sessions sessions
	cooldown time.Duration
	logger   logging.Logger
	now      func() time.Time
}

func NewQuestService(r *registry.Registry, cfg *config.Config, logger logging.Logger) *QuestService {
	return &QuestService{
		registry: r,
		sessions: newSessions(cfg),
		cooldown: cfg.QuestCooldown,
		logger:   logger.With("module", "quest"),
		now:      time.Now,
	}
}

// ClaimQuest grants reward for questID unless the previous claim of the same
// quest is younger than the cooldown. A rejected claim fails with a
// *common.CooldownError carrying the time left.
func (s *QuestService) ClaimQuest(ctx context.Context, username, token, questID string, reward int64) (*Claim, error) {
	questID = strings.TrimSpace(questID)
	if questID == "" {
		return nil, fmt.Errorf("%w: quest id is empty", common.ErrInvalidInput)
	}
	if reward < 0 {
		return nil, fmt.Errorf("%w: reward must not be negative", common.ErrInvalidInput)
	}

	var res *Claim
	err := s.registry.Mutate(ctx, username, func(tx *registry.Tx) error {
		if !s.sessions.matches(tx.Account, token) {
			return common.ErrUnauthorizedAccount
		}

		now := s.now()
		if last, ok := tx.Account.LastClaim(questID); ok {
			if elapsed := now.Sub(last); elapsed < s.cooldown {
				return &common.CooldownError{QuestID: questID, Remaining: s.cooldown - elapsed}
			}
		}

		if err := tx.Account.Credit(reward); err != nil {
			return err
		}
		tx.Account.RecordClaim(questID, now)

		res = &Claim{QuestID: questID, Reward: reward, NewBalance: tx.Account.ShardBalance, ClaimedAt: now}
		return nil
	})
	if err != nil {
		return nil, unauthorized(err)
	}

	s.logger.Info(ctx, "Quest claimed", "username", username, "quest", questID, "reward", reward)
	return res, nil
}
