package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
)

var ownFlags = []string{"-a", "-s", "-p", "-r", "-t", "-l", "-m"}

// parseFlags overlays cfg with the flags it owns; other flags in args (such
// as -c) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("notekeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the notes API")
	fs.StringVar(&cfg.Store, "s", cfg.Store, "session store backend (sqlite, redis, memory)")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "sqlite file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
