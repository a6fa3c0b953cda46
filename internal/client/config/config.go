package config

import (
	"os"
	"time"
)

// DefaultCachePassphrase is the passphrase compiled into the client for the
// local session cache. It only obfuscates the cache file; see cryptox.
const DefaultCachePassphrase = "@portal-cache@"

// Config holds runtime settings for the portal client.
type Config struct {
	APIBaseURL          string
	PollInterval        time.Duration
	OnlineCheckInterval time.Duration
	CacheDSN            string
	CachePassphrase     string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.PollInterval = 2 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.CacheDSN = "portal.db"
	c.CachePassphrase = DefaultCachePassphrase
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and .env), JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := os.Args[1:]
	parseEnv(cfg, DefaultEnvFile)
	parseJson(cfg, args)
	parseFlags(cfg, args)

	return cfg
}
