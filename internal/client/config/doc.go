// Package config loads runtime configuration for the job board CLI.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string    base URL of the job board API
//	-d string    path of the local sqlite database
//	-t duration  per-request timeout (e.g. "10s")
//	-l string    log level (debug, info, warn, error)
//
// The JSON file uses timex.Duration, so the timeout may be "10s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:4000",
//	  "db_path": "jobboard.db",
//	  "request_timeout": "10s",
//	  "log_level": "warn"
//	}
package config
