package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingTokenKey = errors.New("TOKEN_KEY environment variable is not set")

type Config struct {
	Addr        string
	TLSCertFile string
	TLSKeyFile  string

	DatabaseURL string
	TokenKey    string

	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Cache struct {
		Enabled bool
		TTL     time.Duration
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
	Log struct {
		Level  string
		Format string
	}
}

// TLS reports whether both certificate files are configured.
func (c *Config) TLS() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Load reads an optional .env file from the working directory, then the
// environment.
func Load() (*Config, error) {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Addr = getEnv("APP_ADDR", ":443")
	cfg.TLSCertFile = getEnv("TLS_CERT_FILE", "")
	cfg.TLSKeyFile = getEnv("TLS_KEY_FILE", "")

	cfg.DatabaseURL = getEnv("DATABASE_URL", "user=postgres dbname=postgres password=password sslmode=disable")
	cfg.TokenKey = getEnv("TOKEN_KEY", "")
	if cfg.TokenKey == "" {
		return nil, ErrMissingTokenKey
	}

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.Cache.Enabled = getEnv("CACHE_ENABLED", "true") == "true"
	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", time.Hour)

	cfg.RateLimit.RPS = getEnvFloat("RATE_LIMIT_RPS", 1)
	cfg.RateLimit.Burst = getEnvInt("RATE_LIMIT_BURST", 3)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
