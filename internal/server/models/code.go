package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
)

// UsageMode decides who may redeem a code.
type UsageMode string

const (
	// PerAccountOnce lets every account redeem the code once.
	PerAccountOnce UsageMode = "per_account_once"
	// GlobalOnce is consumed entirely by the first account that redeems it.
	GlobalOnce UsageMode = "global_once"
)

// ParseUsageMode accepts the canonical names; empty means PerAccountOnce.
func ParseUsageMode(s string) (UsageMode, error) {
	switch UsageMode(s) {
	case "", PerAccountOnce:
		return PerAccountOnce, nil
	case GlobalOnce:
		return GlobalOnce, nil
	default:
		return "", fmt.Errorf("%w: unknown usage mode %q", common.ErrInvalidInput, s)
	}
}

// RedeemCode is a catalog entry granting Amount shards.
type RedeemCode struct {
	Code       string     `json:"code"`
	Amount     int64      `json:"amount"`
	Mode       UsageMode  `json:"mode"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	ConsumedBy string     `json:"consumed_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Available reports whether the code can still be redeemed by someone at now.
// Consumed global codes and expired codes are not available.
func (c RedeemCode) Available(now time.Time) bool {
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	if c.Mode == GlobalOnce && c.ConsumedBy != "" {
		return false
	}
	return true
}

// Validate checks the fields an operator controls.
func (c RedeemCode) Validate() error {
	if c.Code == "" {
		return fmt.Errorf("%w: code", common.ErrMissingFields)
	}
	if c.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", common.ErrInvalidInput)
	}
	if _, err := ParseUsageMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}
