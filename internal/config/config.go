package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port  string
	Mode  string
	Debug bool

	// Shared secret checked against the optional password field
	// in inbound notifications
	SharedSecret string

	// Database configuration
	DatabasePath string
	DatabaseURL  string

	// Redis configuration (optional, cache disabled when empty)
	RedisURL string

	// Logging configuration
	LogLevel string

	// Downstream webhook configuration (optional, relay disabled when empty)
	WebhookURL string

	// Apple receipt validation endpoint
	ReceiptValidationURL string
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Ignore error if .env file doesn't exist
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Mode:                 getEnv("GIN_MODE", ""),
		Debug:                getEnvBool("DEBUG", false),
		SharedSecret:         getEnv("SHARED_SECRET", "your_shared_secret"),
		DatabasePath:         getEnv("DATABASE_PATH", "notifications.db"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		WebhookURL:           getEnv("WEBHOOK_URL", ""),
		ReceiptValidationURL: getEnv("APPLE_RECEIPT_VALIDATION_URL", "https://buy.itunes.apple.com/verifyReceipt"),
	}

	// GIN_MODE, when set, takes precedence over the DEBUG flag
	if cfg.Mode == "" {
		if cfg.Debug {
			cfg.Mode = "debug"
		} else {
			cfg.Mode = "release"
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
