// Package common defines shared constants, sentinel errors and error kinds used
// across the Azyrnyx server and client. Callers should use errors.Is / KindOf
// to match these values.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Request validation errors.
	ErrMissingFields = errors.New("missing fields")
	ErrInvalidInput  = errors.New("invalid input")

	// Account errors.
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid username or secret")
	ErrUnauthorizedAccount = errors.New("invalid user or session")

	// Reward errors.
	ErrUnknownOrExpiredCode = errors.New("invalid or expired code")
	ErrAlreadyRedeemed      = errors.New("code already redeemed")
	ErrCooldownActive       = errors.New("quest is on cooldown")

	// Admin errors.
	ErrForbidden = errors.New("forbidden")

	// Storage errors.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// Generic internal failure, never shown with its cause to callers.
	ErrorInternal = errors.New("internal error")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
)

// CooldownError reports a rejected quest claim together with the time left
// until the quest can be claimed again. It matches ErrCooldownActive.
type CooldownError struct {
	QuestID   string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("quest %q is on cooldown for %s", e.QuestID, e.Remaining.Round(time.Second))
}

func (e *CooldownError) Unwrap() error { return ErrCooldownActive }
