// Package session maps opaque bearer tokens to the identity they
// authorize: a waiting lobby player, or a seat at a specific game.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
)

// NewToken generates an opaque bearer token with at least 128 bits of
// entropy from a cryptographically strong source (spec §4.5). Unlike
// google/uuid's entity IDs, this is never meant to be parsed or
// version-checked by the client, only compared for equality.
func NewToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: generating token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Identity is the sum type a token resolves to.
type Identity interface {
	isIdentity()
}

// LobbySession identifies a player still waiting in the lobby.
type LobbySession struct {
	IDInLobby int
}

func (LobbySession) isIdentity() {}

// GameSession identifies a seated player in a specific game.
//
// OriginIDInLobby remembers the lobby id this token started as, when it
// was upgraded from a LobbySession rather than minted fresh: the "found
// game" endpoint is authorized by "token for that lobby id" even after
// the upgrade has already happened, since the token is reused rather than
// replaced (spec §3). It is -1 for tokens minted directly as a game
// session by RegisterGameSession. The lobby upgrades every matched
// player's lobby token, including on the JoinedGameDirectly path, so
// those tokens all carry their lobby id here.
type GameSession struct {
	GameID          string
	PlayerIDInGame  int
	OriginIDInLobby int
}

func (GameSession) isIdentity() {}

// Registry is the token -> identity map. Mutations (insert/upgrade) are
// serialized by mu; lookups take a read lock, per spec §5's
// lock-free-against-a-stable-snapshot requirement relaxed to an RWMutex
// since Go offers no wait-free map read.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]Identity
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]Identity)}
}

// RegisterLobbySession mints and stores a token for a newly joined lobby
// player.
func (r *Registry) RegisterLobbySession(idInLobby int) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = LobbySession{IDInLobby: idInLobby}
	return token, nil
}

// UpgradeToGameSession reuses an existing lobby token for the game seat it
// was matched into (spec §3: "the token is reused"). It is a no-op error
// if the token is unknown.
func (r *Registry) UpgradeToGameSession(token string, gameID string, playerIDInGame int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.tokens[token]
	if !ok {
		return fmt.Errorf("session: unknown token cannot be upgraded")
	}
	origin := -1
	if ls, ok := existing.(LobbySession); ok {
		origin = ls.IDInLobby
	}
	r.tokens[token] = GameSession{GameID: gameID, PlayerIDInGame: playerIDInGame, OriginIDInLobby: origin}
	return nil
}

// RegisterGameSession mints a fresh token directly bound to a game seat,
// with no originating lobby session. The lobby does not call it: Join
// always registers a lobby session first and matchmaking upgrades that
// token, even for a JoinedGameDirectly result.
func (r *Registry) RegisterGameSession(gameID string, playerIDInGame int) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = GameSession{GameID: gameID, PlayerIDInGame: playerIDInGame, OriginIDInLobby: -1}
	return token, nil
}

// Lookup resolves a token to its identity.
func (r *Registry) Lookup(token string) (Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.tokens[token]
	return id, ok
}

// AuthorizeLobby reports whether token authorizes actions on behalf of
// idInLobby, whether that player is still waiting (LobbySession) or has
// since been matched and upgraded (GameSession with a matching origin).
func (r *Registry) AuthorizeLobby(token string, idInLobby int) bool {
	id, ok := r.Lookup(token)
	if !ok {
		return false
	}
	switch v := id.(type) {
	case LobbySession:
		return v.IDInLobby == idInLobby
	case GameSession:
		return v.OriginIDInLobby == idInLobby
	default:
		return false
	}
}

// AuthorizeGame reports whether token authorizes actions on behalf of
// (gameID, playerIDInGame).
func (r *Registry) AuthorizeGame(token string, gameID string, playerIDInGame int) bool {
	id, ok := r.Lookup(token)
	if !ok {
		return false
	}
	gs, ok := id.(GameSession)
	return ok && gs.GameID == gameID && gs.PlayerIDInGame == playerIDInGame
}
