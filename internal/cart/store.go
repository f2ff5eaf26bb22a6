package cart

import (
	"context"
	"encoding/json"
	"sync"
)

// Store persists cart snapshots between page loads. The aggregation
// logic stays pure; persistence is injected rather than reached for as
// ambient global state.
type Store interface {
	// Load returns the cart for a session. A missing or malformed
	// snapshot loads as an empty cart, silently.
	Load(ctx context.Context, sessionID string) (*Cart, error)
	// Save replaces the session's snapshot. Last write wins.
	Save(ctx context.Context, sessionID string, c *Cart) error
	// Delete removes the session's snapshot.
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is an in-process Store used in tests and single-node
// development runs.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	raw, ok := s.snapshots[sessionID]
	s.mu.RUnlock()
	if !ok {
		return New(), nil
	}
	return decodeSnapshot(raw), nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshots[sessionID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.snapshots, sessionID)
	s.mu.Unlock()
	return nil
}

// decodeSnapshot tolerates corrupt snapshots by treating them as an
// empty cart rather than raising an error.
func decodeSnapshot(raw []byte) *Cart {
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return New()
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return &c
}
