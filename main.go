package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"orproxy/api"
	"orproxy/config"
	"orproxy/logger"
	"orproxy/openrouter"
	"orproxy/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	logger.Setup(cfg)

	log.Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.HTTPPort).
		Str("storage_dir", cfg.StorageDir).
		Int("max_pairs", cfg.MaxPairs).
		Msg("Starting OpenRouter chat proxy")

	// Initialize session store
	sessions, err := store.NewFileStore(cfg.StorageDir, cfg.MaxPairs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session store")
	}

	// Initialize OpenRouter client
	client := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.SiteURL, cfg.SiteName)

	// Initialize handler
	h := api.NewHandler(sessions, client, cfg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.HTTPErrorHandler

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.HTTPPort).Msg("API started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown server gracefully")
	}

	log.Info().Msg("Server stopped")
}
