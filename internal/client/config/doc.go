// Package config loads runtime configuration for the Tempero CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or TEMPERO_CONFIG.
//  3. Environment variables TEMPERO_BASE_URL, TEMPERO_DATABASE_PATH,
//     TEMPERO_LOG_LEVEL and TEMPERO_REQUEST_TIMEOUT ("5s"). A .env file in
//     the working directory is loaded first and never overrides variables
//     that are already set.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-d string   local session database path
//	-l string   log level
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "base_url": "http://localhost:8080/api",
//	  "database_path": "tempero.db",
//	  "log_level": "warn",
//	  "request_timeout": "10s"
//	}
package config
