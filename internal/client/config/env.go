package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable the client reads.
const EnvPrefix = "TEMPERO"

// envConfig mirrors Config for envconfig. Unset variables keep the values
// copied in from Config. split_words gives TEMPERO_BASE_URL and so on,
// without the unprefixed fallback an explicit envconfig tag would add.
type envConfig struct {
	BaseURL        string        `split_words:"true"`
	DatabasePath   string        `split_words:"true"`
	LogLevel       string        `split_words:"true"`
	RequestTimeout time.Duration `split_words:"true"`
}

// parseEnv overlays Config with TEMPERO_* variables. Panics on values that
// do not parse.
func parseEnv(cfg *Config) {
	ec := envConfig{
		BaseURL:        cfg.BaseURL,
		DatabasePath:   cfg.DatabasePath,
		LogLevel:       cfg.LogLevel,
		RequestTimeout: cfg.RequestTimeout,
	}
	if err := envconfig.Process(EnvPrefix, &ec); err != nil {
		panic(err)
	}

	cfg.BaseURL = ec.BaseURL
	cfg.DatabasePath = ec.DatabasePath
	cfg.LogLevel = ec.LogLevel
	cfg.RequestTimeout = ec.RequestTimeout
}
