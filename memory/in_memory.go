package memory

import (
	"context"
	"sync"
)

// InMemoryStore is a volatile Store keeping histories in a process-local map
// keyed by sanitized user identity. It is safe for concurrent access and
// best suited for tests or ephemeral demo sessions. Returned and stored
// slices are defensive copies so callers cannot mutate internal state.
type InMemoryStore struct {
	mu        sync.RWMutex
	histories map[string][]Record
}

// Compile-time assertion.
var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{histories: make(map[string][]Record)}
}

// Load returns a copy of the stored history or the empty sequence.
func (s *InMemoryStore) Load(_ context.Context, userID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.histories[SanitizeUserID(userID)]
	out := make([]Record, len(history))
	copy(out, history)
	return out, nil
}

// Save replaces the stored history for a user with a copy of the given one.
func (s *InMemoryStore) Save(_ context.Context, userID string, history []Record) error {
	stored := make([]Record, len(history))
	copy(stored, history)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[SanitizeUserID(userID)] = stored
	return nil
}

// Append adds a single record to the user's history.
func (s *InMemoryStore) Append(_ context.Context, userID string, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := SanitizeUserID(userID)
	s.histories[key] = append(s.histories[key], record)
	return nil
}

// Extend adds multiple records to the user's history.
func (s *InMemoryStore) Extend(_ context.Context, userID string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := SanitizeUserID(userID)
	s.histories[key] = append(s.histories[key], records...)
	return nil
}
