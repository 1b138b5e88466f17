package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ZENYXONTOP", Normalize("zenyxOnTop"))
	assert.Equal(t, "ZENYXONTOP", Normalize("  zenyxontop\n"))
	assert.Equal(t, "STRASSE", Normalize("straße"))
	assert.Equal(t, "", Normalize("   "))
}

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()
	require.Len(t, seed, 1)
	assert.Equal(t, "ZENYXONTOP", seed[0].Code)
	assert.Equal(t, int64(200), seed[0].Amount)
	assert.Equal(t, models.PerAccountOnce, seed[0].Mode)
}

func TestParseSeed(t *testing.T) {
	codes, err := ParseSeed([]byte(`
codes:
  - code: zenyxontop
    amount: 200
  - code: launch
    amount: 1000
    mode: global_once
    expires_at: 2027-01-01T00:00:00Z
`))
	require.NoError(t, err)
	require.Len(t, codes, 2)

	assert.Equal(t, "ZENYXONTOP", codes[0].Code)
	assert.Equal(t, models.PerAccountOnce, codes[0].Mode)
	assert.Nil(t, codes[0].ExpiresAt)

	assert.Equal(t, "LAUNCH", codes[1].Code)
	assert.Equal(t, models.GlobalOnce, codes[1].Mode)
	require.NotNil(t, codes[1].ExpiresAt)
	assert.True(t, codes[1].ExpiresAt.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseSeed_Errors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "codes: [",
		"no amount":    "codes:\n  - code: a\n",
		"bad mode":     "codes:\n  - code: a\n    amount: 1\n    mode: twice\n",
		"bad expiry":   "codes:\n  - code: a\n    amount: 1\n    expires_at: tomorrow\n",
		"duplicate":    "codes:\n  - code: a\n    amount: 1\n  - code: A\n    amount: 2\n",
		"missing code": "codes:\n  - amount: 1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed([]byte(content))
			assert.Error(t, err)
		})
	}

	_, err := ParseSeed([]byte("codes:\n  - amount: 1\n"))
	assert.ErrorIs(t, err, common.ErrMissingFields)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("codes:\n  - code: abc\n    amount: 5\n"), 0o600))

	codes, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "ABC", codes[0].Code)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
