// Package session owns per-table ordering sessions. It replaces the
// original process-wide persisted store with explicitly-owned session
// objects handed out by id; persistence happens only at session boundaries
// through Snapshot/Restore.
package session

import (
	"encoding/json"
	"sync"

	"parolaccia/internal/cart"
	"parolaccia/internal/models"
)

// Session is one table's ordering state for the duration of a visit. Turns
// for a session are processed one at a time; the mutex serializes the HTTP
// handlers that share the object.
type Session struct {
	ID         string
	TableID    string
	PartySize  int
	FirstOrder bool
	Cart       *cart.Store

	mu sync.Mutex
}

// Lock serializes turn processing for this session
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the turn lock
func (s *Session) Unlock() { s.mu.Unlock() }

// snapshot is the serialized form of a session
type snapshot struct {
	ID         string            `json:"id"`
	TableID    string            `json:"mesaId"`
	PartySize  int               `json:"comensales"`
	FirstOrder bool              `json:"primerPedido"`
	Cart       []models.LineItem `json:"cart"`
}

// Snapshot serializes the session for storage outside the process
func (s *Session) Snapshot() ([]byte, error) {
	return json.Marshal(snapshot{
		ID:         s.ID,
		TableID:    s.TableID,
		PartySize:  s.PartySize,
		FirstOrder: s.FirstOrder,
		Cart:       s.Cart.Items(),
	})
}

// restoreSession rebuilds a session from a snapshot payload
func restoreSession(data []byte) (*Session, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.PartySize < 1 {
		snap.PartySize = 1
	}
	return &Session{
		ID:         snap.ID,
		TableID:    snap.TableID,
		PartySize:  snap.PartySize,
		FirstOrder: snap.FirstOrder,
		Cart:       cart.FromItems(snap.Cart),
	}, nil
}
