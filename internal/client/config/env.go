package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL          = "PORTAL_API_URL"
	EnvPollInterval        = "PORTAL_POLL_INTERVAL"
	EnvOnlineCheckInterval = "PORTAL_ONLINE_CHECK_INTERVAL"
	EnvCacheDSN            = "PORTAL_CACHE_DSN"
	EnvCachePassphrase     = "PORTAL_CACHE_PASSPHRASE"
	EnvLogLevel            = "PORTAL_LOG_LEVEL"
)

// DefaultEnvFile is loaded into the environment when present.
const DefaultEnvFile = ".env"

// parseEnv loads envFile (a missing file is fine; variables already set in
// the process win) and overlays cfg with the PORTAL_* variables.
// Panics on an unreadable file or a malformed duration.
func parseEnv(cfg *Config, envFile string) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(EnvAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvPollInterval); ok {
		cfg.PollInterval = mustDuration(v)
	}
	if v, ok := os.LookupEnv(EnvOnlineCheckInterval); ok {
		cfg.OnlineCheckInterval = mustDuration(v)
	}
	if v, ok := os.LookupEnv(EnvCacheDSN); ok {
		cfg.CacheDSN = v
	}
	if v, ok := os.LookupEnv(EnvCachePassphrase); ok {
		cfg.CachePassphrase = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
}

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
