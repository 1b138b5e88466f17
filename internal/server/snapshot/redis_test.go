package snapshot

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, "azyrnyx:registry")
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_LoadMissing(t *testing.T) {
	s, _ := newRedisStore(t)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRedisStore_SaveLoad(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleDocument()))

	raw, err := mr.Get("azyrnyx:registry")
	require.NoError(t, err)
	assert.Contains(t, raw, `"alice"`)

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(200), doc.Accounts["alice"].ShardBalance)
}

func TestRedisStore_LoadCorrupt(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set("azyrnyx:registry", "garbage"))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestRedisStore_Unavailable(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	assert.Error(t, s.Save(context.Background(), sampleDocument()))
	_, err := s.Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSnapshotNotFound)
}
