package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/catalog"
	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"github.com/dmitrijs2005/azyrnyx/internal/server/registry"
)

// NewCode is an operator request to add or replace a catalog entry.
type NewCode struct {
	Code      string
	Amount    int64
	Mode      string
	ExpiresAt *time.Time
}

type AdminService struct {
	registry *registry.Registry
	secret   []byte
	logger   logging.Logger
	now      func() time.Time
}

func NewAdminService(r *registry.Registry, cfg *config.Config, logger logging.Logger) *AdminService {
	return &AdminService{
		registry: r,
		secret:   []byte(cfg.AdminSecret),
		logger:   logger.With("module", "admin"),
		now:      time.Now,
	}
}

func (s *AdminService) authorize(secret string) error {
	if len(s.secret) == 0 || subtle.ConstantTimeCompare(s.secret, []byte(secret)) != 1 {
		return common.ErrForbidden
	}
	return nil
}

// AddCode upserts a code. Re-adding a consumed global code makes it
// available again.
func (s *AdminService) AddCode(ctx context.Context, adminSecret string, req NewCode) (*models.RedeemCode, error) {
	if err := s.authorize(adminSecret); err != nil {
		return nil, err
	}

	id := catalog.Normalize(req.Code)
	if id == "" {
		return nil, fmt.Errorf("%w: code", common.ErrMissingFields)
	}
	mode, err := models.ParseUsageMode(req.Mode)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := models.RedeemCode{
		Code:      id,
		Amount:    req.Amount,
		Mode:      mode,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
		return nil, fmt.Errorf("%w: expiry is in the past", common.ErrInvalidInput)
	}

	if err := s.registry.PutCode(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Code added", "code", c.Code, "amount", c.Amount, "mode", string(c.Mode))
	return &c, nil
}

// ListCodes returns the catalog sorted by code.
func (s *AdminService) ListCodes(ctx context.Context, adminSecret string) ([]models.RedeemCode, error) {
	if err := s.authorize(adminSecret); err != nil {
		return nil, err
	}
	return s.registry.Codes(), nil
}
