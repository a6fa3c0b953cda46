package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/trainingportal/internal/flagx"
	"github.com/dmitrijs2005/trainingportal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	PollInterval        *timex.Duration `json:"poll_interval"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	CacheDSN            *string         `json:"cache_dsn"`
	CachePassphrase     *string         `json:"cache_passphrase"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigPath(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.PollInterval != nil {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.CacheDSN != nil {
		cfg.CacheDSN = *jc.CacheDSN
	}
	if jc.CachePassphrase != nil {
		cfg.CachePassphrase = *jc.CachePassphrase
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
