// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the filesystem path of the embedded SQLite database.
	DBPath string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// InstallationID is the stable per-installation identifier mixed into the
	// device fingerprint. It stands in for the browser extension id and must
	// stay constant for the lifetime of an installation.
	InstallationID string

	// ClientInfo is the client identification string mixed into the device
	// fingerprint (the user-agent equivalent).
	ClientInfo string

	// Locale is the locale string mixed into the device fingerprint. Defaults
	// to the LANG environment variable when unset.
	Locale string

	// UsageLogRetention is how long usage log entries are kept before the
	// retention sweep removes them.
	UsageLogRetention time.Duration

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Database configuration
		DBPath: env.GetString("DB_PATH", "aikey_vault.db"),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Device fingerprint inputs
		InstallationID: env.GetString("INSTALLATION_ID", "aikey-local"),
		ClientInfo:     env.GetString("CLIENT_INFO", "aikey-vault/1.0"),
		Locale:         env.GetString("LOCALE", os.Getenv("LANG")),

		// Usage log retention
		UsageLogRetention: env.GetDuration("USAGE_LOG_RETENTION_DAYS", 30, 24*time.Hour),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "aikey"),
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
