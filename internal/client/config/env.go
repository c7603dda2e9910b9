package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by the client. A .env file in the
// working directory is loaded first; real environment variables win over
// .env entries (godotenv does not override existing values).
const (
	EnvBaseURL             = "GIGLINE_BASE_URL"
	EnvRequestTimeout      = "GIGLINE_TIMEOUT"
	EnvOnlineCheckInterval = "GIGLINE_ONLINE_CHECK_INTERVAL"
	EnvDataDir             = "GIGLINE_DATA_DIR"
)

// parseEnv overlays Config with values from the environment. Malformed
// durations are ignored, keeping the previous value.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv(EnvOnlineCheckInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OnlineCheckInterval = d
		}
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
}
