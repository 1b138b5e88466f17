package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/cryptox"
	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"github.com/dmitrijs2005/azyrnyx/internal/server/registry"
	"github.com/google/uuid"
)

const maxUsernameLength = 64

// Session is what a successful signup or login hands back to the client.
type Session struct {
	Token        string
	ShardBalance int64
}

type AuthService struct {
	registry  *registry.Registry
	hasher    *cryptox.Hasher
	sessions  sessions
	logger    logging.Logger
	dummyHash string
	now       func() time.Time
}

// NewAuthService prepares the service, including the hash that login checks
// unknown usernames against.
func NewAuthService(r *registry.Registry, h *cryptox.Hasher, cfg *config.Config, logger logging.Logger) (*AuthService, error) {
	seed, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}
	dummy, err := h.Hash(seed)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}
	return &AuthService{
		registry:  r,
		hasher:    h,
		sessions:  newSessions(cfg),
		logger:    logger.With("module", "auth"),
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

func validateUsername(username string) error {
	if len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username longer than %d bytes", common.ErrInvalidInput, maxUsernameLength)
	}
	if !utf8.ValidString(username) {
		return fmt.Errorf("%w: username is not valid UTF-8", common.ErrInvalidInput)
	}
	for _, r := range username {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: username contains whitespace or control characters", common.ErrInvalidInput)
		}
	}
	return nil
}

// Signup creates an account with a zero balance and starts its first session.
func (s *AuthService) Signup(ctx context.Context, username, secret string) (*Session, error) {
	if username == "" || secret == "" {
		return nil, common.ErrMissingFields
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if _, ok := s.registry.Account(username); ok {
		return nil, common.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("error hashing secret: %w", err)
	}

	token, err := s.sessions.issue(username)
	if err != nil {
		return nil, fmt.Errorf("error issuing session: %w", err)
	}

	acc := &models.Account{
		ID:             uuid.NewString(),
		Username:       username,
		CredentialHash: hash,
		SessionToken:   token,
		CreatedAt:      s.now().UTC(),
	}
	acc.Normalize()

	// a concurrent signup may still win between the check above and here
	if err := s.registry.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Account created", "username", username)
	return &Session{Token: token, ShardBalance: 0}, nil
}

// Login checks the secret and replaces the session token. Unknown usernames
// and wrong secrets are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, secret string) (*Session, error) {
	if username == "" || secret == "" {
		return nil, common.ErrMissingFields
	}

	acc, ok := s.registry.Account(username)
	if !ok {
		_, _ = s.hasher.Verify(secret, s.dummyHash)
		return nil, common.ErrInvalidCredentials
	}

	match, err := s.hasher.Verify(secret, acc.CredentialHash)
	if err != nil {
		s.logger.Error(ctx, "Stored credential unreadable", "username", username, "error", err.Error())
		return nil, common.ErrInvalidCredentials
	}
	if !match {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.sessions.issue(username)
	if err != nil {
		return nil, fmt.Errorf("error issuing session: %w", err)
	}

	var balance int64
	err = s.registry.Mutate(ctx, username, func(tx *registry.Tx) error {
		tx.Account.SessionToken = token
		balance = tx.Account.ShardBalance
		return nil
	})
	if err != nil {
		if errors.Is(err, registry.ErrAccountNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	return &Session{Token: token, ShardBalance: balance}, nil
}

// Verify reports whether token is the current session of username.
func (s *AuthService) Verify(username, token string) bool {
	acc, ok := s.registry.Account(username)
	if !ok {
		return false
	}
	return s.sessions.matches(acc, token)
}

// Balance returns the shard balance of an authenticated account.
func (s *AuthService) Balance(ctx context.Context, username, token string) (int64, error) {
	acc, ok := s.registry.Account(username)
	if !ok || !s.sessions.matches(acc, token) {
		return 0, common.ErrUnauthorizedAccount
	}
	return acc.ShardBalance, nil
}
