package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"orproxy/domain"
	"orproxy/store"
)

// GetChatInfo returns summary information about a chat session.
// GET /chat/:chat_id
func (h *Handler) GetChatInfo(c echo.Context) error {
	ctx := c.Request().Context()
	chatID := c.Param("chat_id")

	info, err := h.store.Info(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return errorJSON(c, http.StatusNotFound, fmt.Sprintf("Chat session %s not found", chatID))
		}
		log.Error().Err(err).Str("chat_id", chatID).Msg("Failed to load session info")
		return errorJSON(c, http.StatusInternalServerError, "Internal server error occurred")
	}

	return c.JSON(http.StatusOK, info)
}

// GetChatMessages returns every message in a chat session.
// GET /chat/:chat_id/messages
func (h *Handler) GetChatMessages(c echo.Context) error {
	ctx := c.Request().Context()
	chatID := c.Param("chat_id")

	session, err := h.store.Get(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return errorJSON(c, http.StatusNotFound, fmt.Sprintf("Chat session %s not found", chatID))
		}
		log.Error().Err(err).Str("chat_id", chatID).Msg("Failed to load session")
		return errorJSON(c, http.StatusInternalServerError, "Internal server error occurred")
	}

	return c.JSON(http.StatusOK, domain.MessagesResponse{
		ChatID:     chatID,
		Messages:   session.Messages,
		TotalCount: len(session.Messages),
	})
}

// ListChats lists the ids of every persisted chat session.
// GET /chats
func (h *Handler) ListChats(c echo.Context) error {
	ctx := c.Request().Context()

	sessions, err := h.store.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list sessions")
		return errorJSON(c, http.StatusInternalServerError, "Internal server error occurred")
	}

	return c.JSON(http.StatusOK, domain.SessionsResponse{
		Sessions: sessions,
		Count:    len(sessions),
	})
}
