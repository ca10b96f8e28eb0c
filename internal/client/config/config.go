package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the Tempero CLI.
//
// Fields:
//   - BaseURL: root of the REST API, e.g. http://localhost:8080/api.
//   - DatabasePath: SQLite file holding the session. Empty keeps the session
//     in memory only.
//   - LogLevel: debug, info, warn or error.
//   - RequestTimeout: per-request bound; zero disables it.
type Config struct {
	BaseURL        string
	DatabasePath   string
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080/api"
	c.DatabasePath = "tempero.db"
	c.LogLevel = "warn"
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
