package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("STORAGE_DIR", "")
	t.Setenv("MAX_PAIRS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE", "")
	t.Setenv("SITE_URL", "")
	t.Setenv("SITE_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.OpenRouterAPIKey)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "chat_logs", cfg.StorageDir)
	assert.Equal(t, 5, cfg.MaxPairs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "app.log", cfg.LogFile)
	assert.Empty(t, cfg.SiteURL)
	assert.Empty(t, cfg.SiteName)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "OPENROUTER_API_KEY")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SITE_URL", "https://example.com")
	t.Setenv("SITE_NAME", "Example")
	t.Setenv("STORAGE_DIR", "/tmp/sessions")
	t.Setenv("MAX_PAIRS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "https://example.com", cfg.SiteURL)
	assert.Equal(t, "Example", cfg.SiteName)
	assert.Equal(t, "/tmp/sessions", cfg.StorageDir)
	assert.Equal(t, 3, cfg.MaxPairs)
}

func TestLoadInvalidInt(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("MAX_PAIRS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxPairs)
}
