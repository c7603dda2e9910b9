package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings for the GigLine CLI.
//
// Fields:
//   - ServerBaseURL: scheme://host[:port] of the backend, without path.
//   - RequestTimeout: per-request wall-clock bound.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DataDir: directory for the local database and keyfile.
type Config struct {
	ServerBaseURL       string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	DataDir             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.DataDir = "."
}

// DatabasePath is the SQLite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "gigline.db")
}

// KeyfilePath is the credential-encryption keyfile inside DataDir.
func (c *Config) KeyfilePath() string {
	return filepath.Join(c.DataDir, "client.key")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file, if present), a JSON file
// (if configured) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
