// Package services contains server-side business logic: account
// authentication, code redemption, quest claims and catalog administration.
// Services keep only configuration; all state lives in the registry.
package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/server/auth"
	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"github.com/dmitrijs2005/azyrnyx/internal/server/registry"
)

// sessions checks a presented token against the one stored on an account.
type sessions struct {
	jwtSecret []byte
	validity  time.Duration
}

func newSessions(cfg *config.Config) sessions {
	return sessions{
		jwtSecret: []byte(cfg.SecretKey),
		validity:  cfg.SessionTokenValidityDuration,
	}
}

func (s sessions) issue(username string) (string, error) {
	return auth.GenerateToken(username, s.jwtSecret, s.validity)
}

// matches reports whether token is the live session of acc. An empty token
// never matches. With a configured validity the token must also be unexpired.
func (s sessions) matches(acc *models.Account, token string) bool {
	if acc == nil || token == "" || acc.SessionToken == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(acc.SessionToken), []byte(token)) != 1 {
		return false
	}
	if s.validity > 0 {
		subject, err := auth.GetUsernameFromToken(token, s.jwtSecret)
		if err != nil || subject != acc.Username {
			return false
		}
	}
	return true
}

// unauthorized folds an unknown account into the same error a bad token gets.
func unauthorized(err error) error {
	if errors.Is(err, registry.ErrAccountNotFound) {
		return common.ErrUnauthorizedAccount
	}
	return err
}

// Bundle groups the services a transport exposes.
type Bundle struct {
	Auth       *AuthService
	Redemption *RedemptionService
	Quests     *QuestService
	Admin      *AdminService
}
