package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvHTTPAddr    = "IK_HTTP_ADDR"
	EnvDatabaseDSN = "IK_DATABASE_DSN"
	EnvSecretKey   = "IK_SECRET_KEY"
	EnvAccessTTL   = "IK_ACCESS_TOKEN_TTL"
	EnvLogLevel    = "IK_LOG_LEVEL"
	EnvUsersFile   = "IK_USERS_FILE"
	EnvBusyTimeout = "IK_BUSY_TIMEOUT"
)

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables that are already set win. A missing file is not an
// error.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// parseEnv overlays IK_* variables onto config. Durations use Go syntax
// ("90s", "24h").
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvHTTPAddr, &config.HTTPAddr},
		{EnvDatabaseDSN, &config.DatabaseDSN},
		{EnvSecretKey, &config.SecretKey},
		{EnvLogLevel, &config.LogLevel},
		{EnvUsersFile, &config.UsersFile},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	durs := []struct {
		key string
		dst *time.Duration
	}{
		{EnvAccessTTL, &config.AccessTokenValidityDuration},
		{EnvBusyTimeout, &config.BusyTimeout},
	}
	for _, d := range durs {
		v, ok := lookup(d.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	return nil
}
