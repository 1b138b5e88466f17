package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/cryptox"
	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/catalog"
	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/dmitrijs2005/azyrnyx/internal/server/registry"
	"github.com/dmitrijs2005/azyrnyx/internal/server/snapshot"
	"github.com/stretchr/testify/require"
)

// memStore keeps the last saved snapshot in memory and can be told to fail.
type memStore struct {
	mu      sync.Mutex
	doc     *snapshot.Document
	saveErr error
}

func (m *memStore) Load(context.Context) (*snapshot.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil, snapshot.ErrSnapshotNotFound
	}
	b, err := snapshot.Encode(m.doc)
	if err != nil {
		return nil, err
	}
	return snapshot.Decode(b)
}

func (m *memStore) Save(_ context.Context, doc *snapshot.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	b, err := snapshot.Encode(doc)
	if err != nil {
		return err
	}
	m.doc, err = snapshot.Decode(b)
	return err
}

func (m *memStore) Close() error { return nil }

func (m *memStore) setSaveErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

type fixture struct {
	store      *memStore
	registry   *registry.Registry
	auth       *AuthService
	redemption *RedemptionService
	quests     *QuestService
	admin      *AdminService
	clock      *fakeClock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AdminSecret = "op-secret"
	return cfg
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, testConfig())
}

func newFixtureWithConfig(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()

	store := &memStore{}
	reg := registry.New(context.Background(), store, logging.Nop{}, catalog.DefaultSeed())

	hasher, err := cryptox.NewHasher(cryptox.Params{Memory: 1024, Time: 1, Threads: 1, SaltLength: 16, KeyLength: 32})
	require.NoError(t, err)

	authSvc, err := NewAuthService(reg, hasher, cfg, logging.Nop{})
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}

	f := &fixture{
		store:      store,
		registry:   reg,
		auth:       authSvc,
		redemption: NewRedemptionService(reg, cfg, logging.Nop{}),
		quests:     NewQuestService(reg, cfg, logging.Nop{}),
		admin:      NewAdminService(reg, cfg, logging.Nop{}),
		clock:      clock,
	}
	f.auth.now = clock.Now
	f.redemption.now = clock.Now
	f.quests.now = clock.Now
	f.admin.now = clock.Now
	return f
}

func (f *fixture) signup(t *testing.T, username string) string {
	t.Helper()
	s, err := f.auth.Signup(context.Background(), username, "pw-"+username)
	require.NoError(t, err)
	return s.Token
}
