package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/trainingportal/internal/flagx"
)

// parseFlags populates cfg from the flags it owns in args; other flags are
// filtered out first. Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-o", "-d", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the portal API")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "video list refresh interval (in seconds)")
	onlineCheckInterval := fs.Int("o", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "local cache database path")
	fs.StringVar(&cfg.CachePassphrase, "p", cfg.CachePassphrase, "local cache passphrase")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
