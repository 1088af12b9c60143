// Package store owns every active engine.Game, keyed by a uuid-generated
// game_id.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lazharichir/missingparts/engine"
)

// Store maps game_id -> *engine.Game. Insert and Get are serialized by mu;
// once a *engine.Game reference is obtained the caller uses it without
// holding the store lock, since each Game carries its own lock (spec §5).
type Store struct {
	mu    sync.RWMutex
	games map[string]*engine.Game
}

// New builds an empty store.
func New() *Store {
	return &Store{games: make(map[string]*engine.Game)}
}

// CreateGame allocates a fresh game ID, wraps snap as a *engine.Game, and
// inserts it. It satisfies lobby.GameStore. IDs are generated with
// google/uuid, the teacher's entity-ID generator (server/server.go's
// uuid.NewString() for client IDs), reserved for identifiers unlike the
// session package's crypto/rand bearer tokens. IDs are random UUIDs: they
// are distinct but carry no creation order.
func (s *Store) CreateGame(snap engine.Snapshot) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = engine.NewGame(id, snap)
	return id
}

// Get retrieves a game by ID.
func (s *Store) Get(gameID string) (*engine.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[gameID]
	return g, ok
}

// All returns every active game, for diagnostics.
func (s *Store) All() []*engine.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*engine.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	return out
}

// Len reports how many games are active.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
