package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envMap map[string]string

func (m envMap) lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func noEnv(string) (string, bool) { return "", false }

func TestParseEnv(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := parseEnv(cfg, envMap{
		EnvHTTPAddr:    "127.0.0.1:9000",
		EnvDatabaseDSN: "postgres://u:p@db:5432/ik?sslmode=disable",
		EnvSecretKey:   "s3cr3t",
		EnvAccessTTL:   "90m",
		EnvLogLevel:    "debug",
		EnvUsersFile:   "users.yaml",
		EnvBusyTimeout: "250ms",
	}.lookup)
	require.NoError(t, err)

	want := &Config{
		HTTPAddr:                    "127.0.0.1:9000",
		DatabaseDSN:                 "postgres://u:p@db:5432/ik?sslmode=disable",
		SecretKey:                   "s3cr3t",
		AccessTokenValidityDuration: 90 * time.Minute,
		LogLevel:                    "debug",
		UsersFile:                   "users.yaml",
		BusyTimeout:                 250 * time.Millisecond,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("parseEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnv_EmptyValuesIgnored(t *testing.T) {
	cfg := &Config{HTTPAddr: ":1", BusyTimeout: time.Second}

	require.NoError(t, parseEnv(cfg, envMap{EnvHTTPAddr: "", EnvBusyTimeout: ""}.lookup))
	assert.Equal(t, ":1", cfg.HTTPAddr)
	assert.Equal(t, time.Second, cfg.BusyTimeout)
}

func TestParseEnv_BadDuration(t *testing.T) {
	cfg := &Config{}
	err := parseEnv(cfg, envMap{EnvAccessTTL: "tomorrow"}.lookup)
	require.ErrorContains(t, err, EnvAccessTTL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("IK_LOG_LEVEL=warn\n"), 0o600))
	t.Chdir(dir)
	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvLogLevel))

	LoadDotEnv()

	assert.Equal(t, "warn", os.Getenv(EnvLogLevel))
}
