// Package config loads runtime configuration for the notekeeper CLI.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then process environment
//     variables (see parseEnv).
//  3. Optional JSON file selected with -c or -config (see parseJSON).
//  4. Command-line flags (see parseFlags).
//
// Supported flags
//
//	-a string   base URL of the notes REST API
//	-s string   session store backend: sqlite, redis or memory
//	-p string   sqlite file, relative to the data directory
//	-r string   redis address (host:port)
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//	-m string   address for the /metrics listener; empty disables it
//
// Environment
//
//	NOTES_API_URL, NOTES_STORE, NOTES_STORE_PATH, NOTES_REDIS_ADDR, NOTES_LOG_LEVEL
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work.
// Absent keys leave the earlier value in place:
//
//	{
//	  "api_url": "https://notes.example.com/api",
//	  "store": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "request_timeout": "10s",
//	  "rate_limit": 10,
//	  "rate_burst": 5
//	}
package config
