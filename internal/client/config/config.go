package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Azyrnyx CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API.
//   - SessionFile: where the current session token is kept between runs.
//   - Timeout: per-request timeout.
type Config struct {
	ServerURL   string
	SessionFile string
	Timeout     time.Duration
}

// DefaultSessionFile is the session path under the user config directory,
// falling back to the working directory when there is none.
func DefaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".azyrnyx", "session.json")
	}
	return filepath.Join(dir, "azyrnyx", "session.json")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.SessionFile = DefaultSessionFile()
	c.Timeout = 10 * time.Second
}

// LoadConfig applies defaults, the environment and, when path is not empty,
// the JSON file at path.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("AZYRNYX_SERVER_URL"); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv("AZYRNYX_SESSION_FILE"); ok && v != "" {
		cfg.SessionFile = v
	}
}
