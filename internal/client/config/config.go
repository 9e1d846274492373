package config

import (
	"fmt"
	"net/url"
	"time"
)

// Session store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	APIBaseURL     string
	Store          string
	DataDir        string
	StorePath      string
	RedisAddr      string
	RequestTimeout time.Duration
	RateLimit      float64
	RateBurst      int
	LogLevel       string
	MetricsAddr    string
}

func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.Store = StoreSQLite
	c.DataDir = ".notekeeper"
	c.StorePath = "notekeeper.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RequestTimeout = 10 * time.Second
	c.RateLimit = 10
	c.RateBurst = 5
	c.LogLevel = "info"
	c.MetricsAddr = ""
}

// LoadConfig builds a Config from defaults, the environment, an optional
// JSON file and the flags in args (without the program name).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q", c.APIBaseURL)
	}
	switch c.Store {
	case StoreSQLite, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("store %q needs a redis address", c.Store)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("negative request timeout %s", c.RequestTimeout)
	}
	if c.RateLimit <= 0 || c.RateBurst < 1 {
		return fmt.Errorf("rate limit %v/s burst %d: both must be positive", c.RateLimit, c.RateBurst)
	}
	return nil
}
