package app

import (
	"os"
	"strconv"
	"time"

	"github.com/pennywise-app/pennywise/pkg/jwtx"
)

type Config struct {
	Issuer        string // Issuer claim for tokens (default: pennywise)
	AccessSecret  string // HMAC secret for access tokens
	RefreshSecret string // HMAC secret for refresh tokens

	AccessTTL  time.Duration // Access token lifetime (default: 15m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 168h)

	DatabaseFile        string        // Path to SQLite database file (default: ./pennywise.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	ReserveInterval     time.Duration // Reserve worker sweep interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              getEnvOrDefault("LEDGER_ISSUER", "pennywise"),
		AccessSecret:        os.Getenv("LEDGER_ACCESS_SECRET"),
		RefreshSecret:       os.Getenv("LEDGER_REFRESH_SECRET"),
		AccessTTL:           getEnvDurationOrDefault("LEDGER_ACCESS_TTL", jwtx.DefaultAccessTTL),
		RefreshTTL:          getEnvDurationOrDefault("LEDGER_REFRESH_TTL", jwtx.DefaultRefreshTTL),
		DatabaseFile:        getEnvOrDefault("LEDGER_DATABASE_FILE", "pennywise.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		ReserveInterval:     getEnvDurationOrDefault("LEDGER_RESERVE_INTERVAL", 1*time.Hour),
	}

	// Dev fallbacks so the server comes up without any env. Real deployments
	// must set both secrets.
	if cfg.AccessSecret == "" {
		cfg.AccessSecret = "insecure-dev-access-secret"
	}
	if cfg.RefreshSecret == "" {
		cfg.RefreshSecret = "insecure-dev-refresh-secret"
	}

	return cfg
}

// SecretsFromEnv reports whether both signing secrets were explicitly
// configured rather than falling back to the dev defaults.
func SecretsFromEnv() bool {
	return os.Getenv("LEDGER_ACCESS_SECRET") != "" && os.Getenv("LEDGER_REFRESH_SECRET") != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Durations like "1h", "30m", "90s"; bare integers are taken as minutes.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
