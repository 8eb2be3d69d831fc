package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "your_shared_secret", cfg.SharedSecret)
	assert.Equal(t, "notifications.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.WebhookURL)
	assert.Equal(t, "https://buy.itunes.apple.com/verifyReceipt", cfg.ReceiptValidationURL)
	assert.Equal(t, "release", cfg.Mode)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SHARED_SECRET", "s3cret")
	t.Setenv("WEBHOOK_URL", "http://localhost:1234/hook")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "s3cret", cfg.SharedSecret)
	assert.Equal(t, "http://localhost:1234/hook", cfg.WebhookURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.Mode)
}

func TestGinModeOverridesDebugFlag(t *testing.T) {
	t.Setenv("GIN_MODE", "test")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Mode)
}
