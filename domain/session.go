package domain

import (
	"time"
)

// Message represents a single message in a session. Messages are immutable
// once created.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session represents a conversation session. The ID doubles as the on-disk
// filename stem for the persisted session file.
type Session struct {
	ID        string    `json:"chat_id"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// SessionInfo is a lightweight summary of a session.
type SessionInfo struct {
	ID           string    `json:"chat_id"`
	Model        string    `json:"model"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
