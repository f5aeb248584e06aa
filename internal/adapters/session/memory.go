package session

import (
	"context"
	"sync"
	"time"

	"github.com/acme/quote-manager/internal/domain"
)

const entitySession = "session"

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

// Store saves a copy of s, replacing any session with the same id.
func (m *MemoryStore) Store(_ context.Context, s *domain.Session) error {
	if s == nil || s.ID == "" {
		return domain.NewValidationError("id", "Session id is required.")
	}

	m.mu.Lock()
	m.sessions[s.ID] = *s
	m.mu.Unlock()

	return nil
}

// Load returns the session, or a not-found error when it is missing or expired.
func (m *MemoryStore) Load(_ context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, domain.NewNotFoundError(entitySession, id)
	}

	if s.Expired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()

		return nil, domain.NewNotFoundError(entitySession, id)
	}

	return &s, nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
