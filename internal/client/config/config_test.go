package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, "session.json", filepath.Base(c.SessionFile))
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("AZYRNYX_SERVER_URL", "http://rewards.example:8080")
	t.Setenv("AZYRNYX_SESSION_FILE", "/tmp/s.json")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://rewards.example:8080", cfg.ServerURL)
	assert.Equal(t, "/tmp/s.json", cfg.SessionFile)
}
