// Package config provides configuration for the chat proxy.
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the chat proxy configuration.
type Config struct {
	// Server settings
	HTTPPort    int
	Environment string

	// OpenRouter settings
	OpenRouterAPIKey string
	SiteURL          string
	SiteName         string

	// Session storage
	StorageDir string
	MaxPairs   int

	// Logging
	LogLevel string
	LogFile  string
}

// Load loads configuration from environment variables, honoring a .env file
// when one is present. It fails when required settings are missing.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		HTTPPort:         getEnvInt("PORT", 8000),
		Environment:      getEnv("ENVIRONMENT", "development"),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		SiteURL:          getEnv("SITE_URL", ""),
		SiteName:         getEnv("SITE_NAME", ""),
		StorageDir:       getEnv("STORAGE_DIR", "chat_logs"),
		MaxPairs:         getEnvInt("MAX_PAIRS", 5),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", "app.log"),
	}

	if cfg.OpenRouterAPIKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY is required, set it in your .env file or environment")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
