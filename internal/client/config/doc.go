// Package config loads runtime configuration for the training portal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. PORTAL_* environment variables, optionally loaded from a .env file
//     in the working directory. Variables already set in the process are
//     not replaced by the file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Environment variables
//
//	PORTAL_API_URL, PORTAL_POLL_INTERVAL ("2s"), PORTAL_ONLINE_CHECK_INTERVAL,
//	PORTAL_CACHE_DSN, PORTAL_CACHE_PASSPHRASE, PORTAL_LOG_LEVEL
//
// Supported flags
//
//	-a string   base URL of the portal API
//	-i int      video list refresh interval (seconds)
//	-o int      online status check interval (seconds)
//	-d string   local cache database path (SQLite DSN)
//	-p string   local cache passphrase
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "2s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://portal.example.com",
//	  "poll_interval": "2s",
//	  "online_check_interval": "3s",
//	  "cache_dsn": "portal.db",
//	  "cache_passphrase": "change-me",
//	  "log_level": "info"
//	}
//
// Keys absent from the file keep their previous value.
package config
