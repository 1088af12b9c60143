// Package history is an append-only per-game action log, adapted from
// the teacher's events.InMemoryEventStore: same map-of-slices-under-a-
// mutex shape, generalized from a reflection-extracted TableID to an
// explicit gameID parameter, since engine.Action carries no identifying
// field of its own to reflect on.
package history

import (
	"sync"
	"time"

	"github.com/lazharichir/missingparts/engine"
)

// Entry records one accepted action, for operator replay/debugging.
// Rejected actions never reach here: the rules engine leaves state (and
// thus history) untouched on error.
type Entry struct {
	Actor     int
	Action    engine.Action
	AppliedAt time.Time
}

// Store is the append/load interface, kept separate from the in-memory
// implementation the same way the teacher separated EventStore from
// InMemoryEventStore.
type Store interface {
	Append(gameID string, entry Entry)
	Load(gameID string) []Entry
}

// InMemoryStore is the only Store implementation; persistence is an
// explicit non-goal.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

// NewInMemoryStore builds an empty history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string][]Entry)}
}

// Append records entry under gameID.
func (s *InMemoryStore) Append(gameID string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[gameID] = append(s.entries[gameID], entry)
}

// Load returns a copy of gameID's recorded entries, oldest first.
func (s *InMemoryStore) Load(gameID string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing := s.entries[gameID]
	out := make([]Entry, len(existing))
	copy(out, existing)
	return out
}
