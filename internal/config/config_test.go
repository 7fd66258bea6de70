package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ADDR", "TLS_CERT_FILE", "TLS_KEY_FILE", "DATABASE_URL", "TOKEN_KEY",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_ENABLED", "CACHE_TTL",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	// keep a developer .env out of the way
	t.Chdir(t.TempDir())
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":443", cfg.Addr)
	assert.False(t, cfg.TLS())
	assert.Equal(t, "secret", cfg.TokenKey)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 1.0, cfg.RateLimit.RPS)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("APP_ADDR", ":8080")
	t.Setenv("TLS_CERT_FILE", "server.crt")
	t.Setenv("TLS_KEY_FILE", "server.key")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("RATE_LIMIT_RPS", "5.5")
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.TLS())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 5.5, cfg.RateLimit.RPS)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("REDIS_DB", "two")
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("RATE_LIMIT_RPS", "-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 1.0, cfg.RateLimit.RPS)
}

func TestLoad_MissingTokenKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	assert.ErrorIs(t, err, ErrMissingTokenKey)
	assert.Nil(t, cfg)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("TOKEN_KEY=from-file\nAPP_ADDR=:9000\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.TokenKey)
	assert.Equal(t, ":9000", cfg.Addr)

	// godotenv writes the process environment, t.Setenv does not see it
	os.Unsetenv("TOKEN_KEY")
	os.Unsetenv("APP_ADDR")
}
