package config

import (
	"fmt"
	"os"

	json "github.com/bytedance/sonic"
	"github.com/dmitrijs2005/interviewkeeper/internal/flagx"
	"github.com/dmitrijs2005/interviewkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// strings such as "1m" and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                    string         `json:"http_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    string         `json:"log_level"`
	UsersFile                   string         `json:"users_file"`
	BusyTimeout                 timex.Duration `json:"busy_timeout"`
}

// parseJson loads the file named by -c / -config, if any. Only keys present
// in the file override config.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.ConfigFileFlag(args)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", jsonConfigFile, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.UsersFile, c.UsersFile)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BusyTimeout.Duration != 0 {
		config.BusyTimeout = c.BusyTimeout.Duration
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
