package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "registry.json"))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "registry.json")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleDocument()))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(200), doc.Accounts["alice"].ShardBalance)

	doc.Accounts["alice"].ShardBalance = 300
	require.NoError(t, s.Save(ctx, doc))

	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(300), again.Accounts["alice"].ShardBalance)
	assert.NoError(t, s.Close())
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestFileStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// parent "directory" is a regular file
	s := NewFileStore(filepath.Join(blocker, "registry.json"))
	assert.Error(t, s.Save(context.Background(), sampleDocument()))
}
