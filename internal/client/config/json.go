package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tempero/internal/flagx"
	"github.com/dmitrijs2005/tempero/internal/timex"
)

// ConfigFileEnv names the variable that may point at the JSON config file
// when neither -c nor -config is given.
const ConfigFileEnv = "TEMPERO_CONFIG"

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	BaseURL        string          `json:"base_url"`
	DatabasePath   *string         `json:"database_path"`
	LogLevel       string          `json:"log_level"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file. Panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(ConfigFileEnv)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
