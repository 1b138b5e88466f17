package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/catalog"
	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"github.com/dmitrijs2005/azyrnyx/internal/server/registry"
)

// Redemption describes a granted code.
type Redemption struct {
	Code       string
	Amount     int64
	NewBalance int64
}

func (r *Redemption) Message() string {
	return fmt.Sprintf("Redeemed %d Aether Shards!", r.Amount)
}

type RedemptionService struct {
	registry *registry.Registry
	sessions sessions
	logger   logging.Logger
	now      func() time.Time
}

func NewRedemptionService(r *registry.Registry, cfg *config.Config, logger logging.Logger) *RedemptionService {
	return &RedemptionService{
		registry: r,
		sessions: newSessions(cfg),
		logger:   logger.With("module", "redemption"),
		now:      time.Now,
	}
}

// Redeem grants the shards of code to username. The session check, catalog
// lookup, usage check and credit happen in one registry mutation, so the same
// account redeeming the same code twice at once succeeds exactly once.
func (s *RedemptionService) Redeem(ctx context.Context, username, token, code string) (*Redemption, error) {
	id := catalog.Normalize(code)
	if id == "" {
		return nil, common.ErrMissingFields
	}

	var res *Redemption
	err := s.registry.Mutate(ctx, username, func(tx *registry.Tx) error {
		if !s.sessions.matches(tx.Account, token) {
			return common.ErrUnauthorizedAccount
		}

		c, ok := tx.Code(id)
		if !ok || !c.Available(s.now()) {
			return common.ErrUnknownOrExpiredCode
		}

		if tx.Account.HasRedeemed(id) {
			return common.ErrAlreadyRedeemed
		}

		if err := tx.Account.Credit(c.Amount); err != nil {
			return err
		}
		tx.Account.MarkRedeemed(id)

		if c.Mode == models.GlobalOnce {
			c.ConsumedBy = username
			tx.PutCode(c)
		}

		res = &Redemption{Code: id, Amount: c.Amount, NewBalance: tx.Account.ShardBalance}
		return nil
	})
	if err != nil {
		return nil, unauthorized(err)
	}

	s.logger.Info(ctx, "Code redeemed", "username", username, "code", id, "amount", res.Amount)
	return res, nil
}
