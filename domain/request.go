package domain

// DefaultModel is the model used when a chat request does not name one.
const DefaultModel = "cognitivecomputations/dolphin-mistral-24b-venice-edition:free"

// HistoryMessage is a role/content pair in the exact shape forwarded to the
// completion API.
type HistoryMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the body of a chat request.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	ChatID  string `json:"chat_id,omitempty"`
	Model   string `json:"model,omitempty"`
}

// ChatResponse represents a successful chat completion.
type ChatResponse struct {
	Response     string `json:"response"`
	ChatID       string `json:"chat_id"`
	Status       string `json:"status"`
	Model        string `json:"model"`
	MessageCount int    `json:"message_count"`
}

// MessagesResponse lists the stored messages of a session.
type MessagesResponse struct {
	ChatID     string    `json:"chat_id"`
	Messages   []Message `json:"messages"`
	TotalCount int       `json:"total_count"`
}

// SessionsResponse lists the identifiers of all persisted sessions.
type SessionsResponse struct {
	Sessions []string `json:"sessions"`
	Count    int      `json:"count"`
}

// ErrorResponse is the body returned on every failure path.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
	Code   int    `json:"code"`
}
