package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
)

// JsonConfig is the on-disk shape. Pointer fields distinguish "absent" from
// zero so a partial file only overrides what it names.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_url"`
	Store          *string         `json:"store"`
	DataDir        *string         `json:"data_dir"`
	StorePath      *string         `json:"store_path"`
	RedisAddr      *string         `json:"redis_addr"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RateLimit      *float64        `json:"rate_limit"`
	RateBurst      *int            `json:"rate_burst"`
	LogLevel       *string         `json:"log_level"`
	MetricsAddr    *string         `json:"metrics_addr"`
}

// parseJSON overlays cfg with the file named by -c/-config in args, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.Store, jc.Store)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.RateBurst != nil {
		cfg.RateBurst = *jc.RateBurst
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
