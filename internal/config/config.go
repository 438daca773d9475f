// Package config handles configuration for the interviewkeeper server,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP API.
//   - DatabaseDSN: SQLite file path (or ":memory:"), or a postgres:// URL.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - LogLevel: debug, info, warn or error.
//   - UsersFile: optional YAML file with users to create at startup.
//   - BusyTimeout: how long a SQLite writer waits for a competing lock.
type Config struct {
	HTTPAddr                    string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
	UsersFile                   string
	BusyTimeout                 time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure for production and must be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.DatabaseDSN = "interviewkeeper.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.LogLevel = "info"
	c.UsersFile = ""
	c.BusyTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (and a .env file), an optional JSON file and finally
// command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

// LoadEnvConfig applies defaults and the environment only. Command-line tools
// that parse their own flags start from it.
func LoadEnvConfig() (*Config, error) {
	return load(nil, os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
