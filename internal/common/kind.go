package common

import "errors"

// Kind is the stable, machine-checkable name of a failure reported to callers.
type Kind string

const (
	KindMissingFields          Kind = "MissingFields"
	KindUsernameTaken          Kind = "UsernameTaken"
	KindInvalidCredentials     Kind = "InvalidCredentials"
	KindUnauthorizedAccount    Kind = "UnauthorizedAccount"
	KindUnknownOrExpiredCode   Kind = "UnknownOrExpiredCode"
	KindAlreadyRedeemed        Kind = "AlreadyRedeemed"
	KindCooldownActive         Kind = "CooldownActive"
	KindInvalidInput           Kind = "InvalidInput"
	KindForbidden              Kind = "Forbidden"
	KindPersistenceUnavailable Kind = "PersistenceUnavailable"
	KindInternal               Kind = "Internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrMissingFields, KindMissingFields},
	{ErrUsernameTaken, KindUsernameTaken},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrUnauthorizedAccount, KindUnauthorizedAccount},
	{ErrInvalidToken, KindUnauthorizedAccount},
	{ErrUnknownOrExpiredCode, KindUnknownOrExpiredCode},
	{ErrAlreadyRedeemed, KindAlreadyRedeemed},
	{ErrCooldownActive, KindCooldownActive},
	{ErrInvalidInput, KindInvalidInput},
	{ErrForbidden, KindForbidden},
	{ErrPersistenceUnavailable, KindPersistenceUnavailable},
}

// KindOf maps err onto the failure taxonomy. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// PublicMessage returns the text that may be shown to a caller for err.
// Internal failures never expose their cause.
func PublicMessage(err error) string {
	if KindOf(err) == KindInternal {
		return ErrorInternal.Error()
	}
	var cd *CooldownError
	if errors.As(err, &cd) {
		return cd.Error()
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.err.Error()
		}
	}
	return ErrorInternal.Error()
}
