// Package catalog normalizes redeem code identifiers and loads the seed
// catalog an operator ships with the server.
package catalog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Normalize returns the canonical (upper case, trimmed) form of a code.
func Normalize(code string) string {
	// a Caser keeps state, so one is built per call
	return cases.Upper(language.Und).String(strings.TrimSpace(code))
}

// DefaultSeed is used when no seed file is configured.
func DefaultSeed() []models.RedeemCode {
	return []models.RedeemCode{
		{Code: "ZENYXONTOP", Amount: 200, Mode: models.PerAccountOnce},
	}
}

type seedFile struct {
	Codes []seedEntry `yaml:"codes"`
}

type seedEntry struct {
	Code      string `yaml:"code"`
	Amount    int64  `yaml:"amount"`
	Mode      string `yaml:"mode"`
	ExpiresAt string `yaml:"expires_at"`
}

// LoadSeedFile reads a YAML catalog:
//
//	codes:
//	  - code: zenyxontop
//	    amount: 200
//	    mode: per_account_once   # or global_once
//	    expires_at: 2027-01-01T00:00:00Z
func LoadSeedFile(path string) ([]models.RedeemCode, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	return ParseSeed(b)
}

// ParseSeed decodes and validates YAML seed content. Codes are normalized and
// must be unique after normalization.
func ParseSeed(b []byte) ([]models.RedeemCode, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Codes))
	codes := make([]models.RedeemCode, 0, len(f.Codes))

	for i, e := range f.Codes {
		mode, err := models.ParseUsageMode(e.Mode)
		if err != nil {
			return nil, fmt.Errorf("catalog seed entry %d: %w", i, err)
		}

		c := models.RedeemCode{Code: Normalize(e.Code), Amount: e.Amount, Mode: mode}
		if e.ExpiresAt != "" {
			at, err := time.Parse(time.RFC3339, e.ExpiresAt)
			if err != nil {
				return nil, fmt.Errorf("catalog seed entry %d: %w: expires_at: %v", i, common.ErrInvalidInput, err)
			}
			c.ExpiresAt = &at
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("catalog seed entry %d: %w", i, err)
		}
		if _, dup := seen[c.Code]; dup {
			return nil, fmt.Errorf("catalog seed entry %d: %w: duplicate code %q", i, common.ErrInvalidInput, c.Code)
		}
		seen[c.Code] = struct{}{}
		codes = append(codes, c)
	}

	return codes, nil
}
