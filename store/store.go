// Package store defines the session storage interface and implementations.
package store

import (
	"context"
	"errors"

	"orproxy/domain"
)

// ErrSessionNotFound is returned when a session id does not resolve to a
// known session.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore defines the interface for conversation persistence.
type SessionStore interface {
	// Create makes a new empty session bound to the given model and returns
	// its id. Nothing is written to disk until the first append.
	Create(ctx context.Context, model string) (string, error)

	// Get returns the session for the given id, loading it from disk when
	// it is not cached. Returns ErrSessionNotFound for unknown ids.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// AppendMessage adds a message to an existing session, trims the
	// history to the retention bound, and persists the session before
	// returning. Returns ErrSessionNotFound for unknown ids.
	AppendMessage(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Session, error)

	// History returns the session's messages as role/content pairs in
	// insertion order. Unknown ids yield an empty history, not an error.
	History(ctx context.Context, sessionID string) ([]domain.HistoryMessage, error)

	// List returns the ids of all persisted sessions.
	List(ctx context.Context) ([]string, error)

	// Info returns a summary of the session. Returns ErrSessionNotFound for
	// unknown ids.
	Info(ctx context.Context, sessionID string) (*domain.SessionInfo, error)
}
