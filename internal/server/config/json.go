package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tempero/internal/flagx"
	"github.com/dmitrijs2005/tempero/internal/timex"
)

// ConfigFileEnv names the variable that may point at the JSON config file
// when neither -c nor -config is given.
const ConfigFileEnv = "TEMPERO_SERVER_CONFIG"

// JsonConfig is the on-disk shape of the config file. Absent keys leave the
// corresponding Config field untouched.
type JsonConfig struct {
	ListenAddr    string          `json:"listen_addr"`
	DatabaseDSN   string          `json:"database_dsn"`
	SecretKey     string          `json:"secret_key"`
	TokenValidity *timex.Duration `json:"token_validity"`
	Storage       string          `json:"storage"`
	LogLevel      string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. Panics on
// read or unmarshal errors.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile(ConfigFileEnv)
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.Storage != "" {
		config.Storage = c.Storage
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
