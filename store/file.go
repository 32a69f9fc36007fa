package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"orproxy/domain"
)

// FileStore implements SessionStore with one JSON document per session under
// a storage directory, fronted by an in-memory cache. The cache has no
// expiration and no eviction, and the per-session write locks are never
// released: both grow with the number of sessions touched during the process
// lifetime, since sessions are never deleted.
type FileStore struct {
	dir      string
	maxPairs int

	cache *cache.Cache

	// writeLocks serializes append+persist per session id. Entries are
	// never removed: a session's lock must stay the same mutex for as long
	// as the session exists.
	locksMu    sync.Mutex
	writeLocks map[string]*sync.Mutex
}

// NewFileStore creates a file-backed session store rooted at dir. Each
// session retains at most maxPairs user/assistant pairs.
func NewFileStore(dir string, maxPairs int) (*FileStore, error) {
	if maxPairs < 1 {
		return nil, fmt.Errorf("maxPairs must be at least 1, got %d", maxPairs)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileStore{
		dir:        dir,
		maxPairs:   maxPairs,
		cache:      cache.New(cache.NoExpiration, 0),
		writeLocks: make(map[string]*sync.Mutex),
	}, nil
}

// Create creates a new empty session bound to model and returns its id. The
// session lives only in the cache until its first message is appended.
func (s *FileStore) Create(ctx context.Context, model string) (string, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New().String(),
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []domain.Message{},
	}

	s.cache.Set(session.ID, session, cache.DefaultExpiration)
	return session.ID, nil
}

// Get returns the session for sessionID, consulting the cache first and
// falling back to the persisted file. A successful load populates the cache.
func (s *FileStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	if cached, ok := s.cache.Get(sessionID); ok {
		return cached.(*domain.Session), nil
	}

	session, err := s.loadFromFile(sessionID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(sessionID, session, cache.DefaultExpiration)
	return session, nil
}

// AppendMessage appends a message to an existing session, trims the history
// to the last maxPairs*2 messages, and persists the full session before
// returning. The session must already exist; appends are serialized per id.
func (s *FileStore) AppendMessage(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Session, error) {
	lock := s.writeLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Copy rather than mutate so concurrent readers of the cached session
	// never observe a partial update.
	updated := &domain.Session{
		ID:        session.ID,
		Model:     session.Model,
		CreatedAt: session.CreatedAt,
		UpdatedAt: now,
	}
	updated.Messages = make([]domain.Message, 0, len(session.Messages)+1)
	updated.Messages = append(updated.Messages, session.Messages...)
	updated.Messages = append(updated.Messages, domain.Message{
		Role:      role,
		Content:   strings.TrimSpace(content),
		Timestamp: now,
	})

	// Keep only the most recent messages.
	if limit := s.maxPairs * 2; len(updated.Messages) > limit {
		updated.Messages = updated.Messages[len(updated.Messages)-limit:]
	}

	s.cache.Set(sessionID, updated, cache.DefaultExpiration)

	if err := s.saveToFile(updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// History returns the conversation as role/content pairs in insertion order,
// the exact payload shape forwarded to the completion API. Sessions that do
// not exist yield an empty history.
func (s *FileStore) History(ctx context.Context, sessionID string) ([]domain.HistoryMessage, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return []domain.HistoryMessage{}, nil
	}

	history := make([]domain.HistoryMessage, 0, len(session.Messages))
	for _, msg := range session.Messages {
		history = append(history, domain.HistoryMessage{Role: msg.Role, Content: msg.Content})
	}
	return history, nil
}

// List returns the ids of all persisted sessions, derived from the file
// names in the storage directory. A session created but never appended to
// has no file yet and is not listed.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return ids, nil
}

// Info returns a summary of the session.
func (s *FileStore) Info(ctx context.Context, sessionID string) (*domain.SessionInfo, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &domain.SessionInfo{
		ID:           session.ID,
		Model:        session.Model,
		MessageCount: len(session.Messages),
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}, nil
}

// writeLock gets or creates the write lock for a session id.
func (s *FileStore) writeLock(sessionID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	if lock, exists := s.writeLocks[sessionID]; exists {
		return lock
	}

	lock := &sync.Mutex{}
	s.writeLocks[sessionID] = lock
	return lock
}

// validateSessionID rejects identifiers that cannot be used as a filename
// stem.
func validateSessionID(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	if strings.Contains(sessionID, "..") {
		return fmt.Errorf("session id cannot contain '..'")
	}
	if strings.ContainsAny(sessionID, "/\\") {
		return fmt.Errorf("session id cannot contain path separators")
	}
	if strings.Contains(sessionID, "\x00") {
		return fmt.Errorf("session id cannot contain null bytes")
	}
	return nil
}

// sessionPath returns the path of the persisted file for a session id.
func (s *FileStore) sessionPath(sessionID string) string {
	return filepath.Join(s.dir, sessionID+".json")
}

// loadFromFile reads one persisted session. Missing, unreadable, and
// malformed files all map to ErrSessionNotFound; only the last two are worth
// a diagnostic.
func (s *FileStore) loadFromFile(sessionID string) (*domain.Session, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, ErrSessionNotFound
	}

	path := s.sessionPath(sessionID)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		log.Error().Err(err).Str("path", path).Msg("Failed to read session file")
		return nil, ErrSessionNotFound
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Corrupt session file, treating as not found")
		return nil, ErrSessionNotFound
	}
	if session.ID == "" || session.Model == "" {
		log.Error().Str("path", path).Msg("Session file missing required fields, treating as not found")
		return nil, ErrSessionNotFound
	}
	if session.Messages == nil {
		session.Messages = []domain.Message{}
	}

	return &session, nil
}

// saveToFile persists the full session as one indented JSON document,
// writing to a temp file and renaming it into place so a crash mid-write
// cannot leave a partial file behind.
func (s *FileStore) saveToFile(session *domain.Session) error {
	path := s.sessionPath(session.ID)
	tempPath := path + ".tmp"

	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(session); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	file.Close()

	// Atomic replace
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}
