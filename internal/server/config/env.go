package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable the backend reads.
const EnvPrefix = "TEMPERO_SERVER"

type envConfig struct {
	ListenAddr    string        `split_words:"true"`
	DatabaseDSN   string        `split_words:"true"`
	SecretKey     string        `split_words:"true"`
	TokenValidity time.Duration `split_words:"true"`
	Storage       string
	LogLevel      string `split_words:"true"`
}

// parseEnv overlays Config with TEMPERO_SERVER_* variables. Panics on values
// that do not parse.
func parseEnv(cfg *Config) {
	ec := envConfig{
		ListenAddr:    cfg.ListenAddr,
		DatabaseDSN:   cfg.DatabaseDSN,
		SecretKey:     cfg.SecretKey,
		TokenValidity: cfg.TokenValidity,
		Storage:       cfg.Storage,
		LogLevel:      cfg.LogLevel,
	}
	if err := envconfig.Process(EnvPrefix, &ec); err != nil {
		panic(err)
	}

	cfg.ListenAddr = ec.ListenAddr
	cfg.DatabaseDSN = ec.DatabaseDSN
	cfg.SecretKey = ec.SecretKey
	cfg.TokenValidity = ec.TokenValidity
	cfg.Storage = ec.Storage
	cfg.LogLevel = ec.LogLevel
}
