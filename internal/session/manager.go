package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"parolaccia/internal/cart"
)

// ErrNotFound is returned when a session id is unknown
var ErrNotFound = errors.New("session not found")

// Manager hands out and tracks the live sessions of this process
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create opens a new session for a table. Party size is clamped at 1 and
// the first-order flag starts true.
func (m *Manager) Create(tableID string, partySize int) *Session {
	if partySize < 1 {
		partySize = 1
	}
	s := &Session{
		ID:         uuid.NewString(),
		TableID:    tableID,
		PartySize:  partySize,
		FirstOrder: true,
		Cart:       cart.New(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a live session by id
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Restore re-registers a session from a snapshot, replacing any live
// session with the same id
func (m *Manager) Restore(data []byte) (*Session, error) {
	s, err := restoreSession(data)
	if err != nil {
		return nil, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Close discards a session once the table is done
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count reports the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
