package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// dotenvPath is read before the process environment; a missing file is fine.
var dotenvPath = ".env"

// parseEnv overlays values from dotenvPath and the environment. Variables
// already set in the process win over the file.
func parseEnv(cfg *Config) error {
	fileVars := map[string]string{}
	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return err
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok && v != ""
	}

	for key, dst := range map[string]*string{
		"NOTES_API_URL":    &cfg.APIBaseURL,
		"NOTES_STORE":      &cfg.Store,
		"NOTES_STORE_PATH": &cfg.StorePath,
		"NOTES_REDIS_ADDR": &cfg.RedisAddr,
		"NOTES_LOG_LEVEL":  &cfg.LogLevel,
	} {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	return nil
}
