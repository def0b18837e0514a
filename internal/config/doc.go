// Package config loads runtime configuration for the wheelhouse CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override everything earlier.
//
// Supported environment variables
//
//	API_URL             base URL of the giveaway backend (REST + websocket)
//	WHEELHOUSE_DB       path to the local sqlite database
//
// Supported flags
//
//	-a string   base URL of the backend
//	-d string   path to the local sqlite database
//	-p int      settings poll interval (seconds)
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:5000",
//	  "database_path": "/home/me/.config/wheelhouse/wheelhouse.db",
//	  "poll_interval": "30s",
//	  "push_stale_after": "1m"
//	}
package config
