// Package api provides HTTP handlers for the chat proxy.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"orproxy/config"
	"orproxy/domain"
	"orproxy/store"
)

const (
	serviceName    = "OpenRouter Chat Proxy"
	serviceVersion = "0.1.0"
)

// Completer produces an assistant reply for a message given the prior
// conversation turns.
type Completer interface {
	Complete(ctx context.Context, model string, history []domain.HistoryMessage, message string) (string, error)
}

// Handler handles HTTP requests.
type Handler struct {
	store     store.SessionStore
	completer Completer
	config    *config.Config
}

// NewHandler creates a new handler.
func NewHandler(store store.SessionStore, completer Completer, config *config.Config) *Handler {
	return &Handler{
		store:     store,
		completer: completer,
		config:    config,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Chat API
	e.POST("/chat", h.Chat)
	e.GET("/chat/:chat_id", h.GetChatInfo)
	e.GET("/chat/:chat_id/messages", h.GetChatMessages)
	e.GET("/chats", h.ListChats)

	// Health checks
	e.GET("/health", h.Health)
	e.GET("/api/health", h.APIHealth)
}

// Health returns detailed health status.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":                "healthy",
		"service":               serviceName,
		"version":               serviceVersion,
		"environment":           h.config.Environment,
		"openrouter_configured": h.config.OpenRouterAPIKey != "",
		"site_configured":       h.config.SiteURL != "" && h.config.SiteName != "",
	})
}

// APIHealth returns a short liveness status.
// GET /api/health
func (h *Handler) APIHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     serviceName + " is running",
		"status":      "healthy",
		"environment": h.config.Environment,
	})
}
