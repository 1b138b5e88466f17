package server

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/dmitrijs2005/azyrnyx/internal/server/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.EndpointAddrGRPC = "127.0.0.1:0"
	cfg.SnapshotPath = filepath.Join(t.TempDir(), "registry.json")
	cfg.Argon2Memory = 1024
	cfg.Argon2Threads = 1
	cfg.LogLevel = "error"
	return cfg
}

func TestNewApp_WritesSeededSnapshot(t *testing.T) {
	cfg := testConfig(t)

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.registry.Close() })

	doc, err := snapshot.NewFileStore(cfg.SnapshotPath).Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, doc.Codes, "ZENYXONTOP")
	assert.False(t, app.registry.Degraded())
}

// unreachableStore fails every Load and counts Save calls.
type unreachableStore struct {
	saves int
}

func (s *unreachableStore) Load(context.Context) (*snapshot.Document, error) {
	return nil, errors.New("connection refused")
}

func (s *unreachableStore) Save(context.Context, *snapshot.Document) error {
	s.saves++
	return nil
}

func (s *unreachableStore) Close() error { return nil }

func TestNewApp_UnreadableStoreIsNotOverwritten(t *testing.T) {
	store := &unreachableStore{}
	orig := openStore
	t.Cleanup(func() { openStore = orig })
	openStore = func(context.Context, *config.Config) (snapshot.Store, error) {
		return store, nil
	}

	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	assert.True(t, app.registry.Degraded())
	assert.Equal(t, 0, store.saves, "startup must not write over a snapshot it could not read")
}

func TestNewApp_CatalogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogFile = filepath.Join(t.TempDir(), "codes.yaml")
	require.NoError(t, os.WriteFile(cfg.CatalogFile, []byte("codes:\n  - code: launch\n    amount: 5\n"), 0o600))

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)

	_, ok := app.registry.Code("LAUNCH")
	assert.True(t, ok)
	_, ok = app.registry.Code("ZENYXONTOP")
	assert.False(t, ok)
}

func TestNewApp_Errors(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreKind = "floppy"
	_, err := NewApp(context.Background(), cfg)
	assert.ErrorContains(t, err, "config error")

	cfg = testConfig(t)
	cfg.LogLevel = "loud"
	_, err = NewApp(context.Background(), cfg)
	assert.ErrorContains(t, err, "logger init error")

	cfg = testConfig(t)
	cfg.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewApp(context.Background(), cfg)
	assert.ErrorContains(t, err, "catalog error")

	orig := openStore
	t.Cleanup(func() { openStore = orig })
	openStore = func(context.Context, *config.Config) (snapshot.Store, error) {
		return nil, errors.New("no route to host")
	}
	_, err = NewApp(context.Background(), testConfig(t))
	assert.ErrorContains(t, err, "store init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(7 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}
