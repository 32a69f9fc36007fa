package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"orproxy/domain"
	"orproxy/openrouter"
	"orproxy/store"
)

// Chat processes a message through OpenRouter with conversation memory.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Validation failed: invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Validation failed: message is required")
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return errorJSON(c, http.StatusBadRequest, "Message cannot be empty or whitespace only")
	}

	model := req.Model
	if model == "" {
		model = domain.DefaultModel
	}

	chatID := req.ChatID
	if chatID == "" {
		id, err := h.store.Create(ctx, model)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create chat session")
			return errorJSON(c, http.StatusInternalServerError, "Internal server error occurred")
		}
		chatID = id
	}

	// History is captured before the user message is appended, so the
	// upstream request carries prior turns only.
	history, err := h.store.History(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("Failed to load conversation history")
		return errorJSON(c, http.StatusInternalServerError, "Internal server error occurred")
	}

	if _, err := h.store.AppendMessage(ctx, chatID, domain.RoleUser, req.Message); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return errorJSON(c, http.StatusBadRequest, "Invalid chat session: "+err.Error())
		}
		log.Error().Err(err).Str("chat_id", chatID).Msg("Failed to append user message")
		return errorJSON(c, http.StatusInternalServerError, "Internal server error occurred")
	}

	reply, err := h.completer.Complete(ctx, model, history, req.Message)
	if err != nil {
		return h.completionError(c, chatID, err)
	}

	session, err := h.store.AppendMessage(ctx, chatID, domain.RoleAssistant, reply)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("Failed to append assistant message")
		return errorJSON(c, http.StatusInternalServerError, "Internal server error occurred")
	}

	return c.JSON(http.StatusOK, domain.ChatResponse{
		Response:     reply,
		ChatID:       chatID,
		Status:       "success",
		Model:        model,
		MessageCount: len(session.Messages),
	})
}

// completionError maps an upstream completion failure onto the HTTP surface.
// Failures the caller can fix land on 400, everything else on 502.
func (h *Handler) completionError(c echo.Context, chatID string, err error) error {
	var orErr *openrouter.Error
	if !errors.As(err, &orErr) {
		log.Error().Err(err).Str("chat_id", chatID).Msg("Unexpected completion failure")
		return errorJSON(c, http.StatusInternalServerError, "Internal server error occurred")
	}

	status := http.StatusBadGateway
	switch orErr.Kind {
	case openrouter.ErrorKindUnauthorized, openrouter.ErrorKindBadRequest:
		status = http.StatusBadRequest
	}

	log.Error().
		Str("chat_id", chatID).
		Str("kind", string(orErr.Kind)).
		Str("message", orErr.Message).
		Msg("OpenRouter request failed")
	return errorJSON(c, status, "OpenRouter API error: "+orErr.Message)
}
