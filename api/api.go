// Package api is the façade exposing §6's five operations to whatever
// transport sits in front of it (spec §4.7), generalized from the
// teacher's server/handlers.CommandRouter: authorization is checked
// first, then the call is delegated into the domain objects that already
// know how to serialize their own mutations.
package api

import (
	"time"

	"github.com/lazharichir/missingparts/engine"
	"github.com/lazharichir/missingparts/history"
	"github.com/lazharichir/missingparts/lobby"
	"github.com/lazharichir/missingparts/session"
	"github.com/lazharichir/missingparts/store"
)

// API wires the lobby, the game store, and the session registry together
// behind the five operations a transport needs.
type API struct {
	Lobby    *lobby.Lobby
	Store    *store.Store
	Sessions *session.Registry
	History  history.Store
}

// New builds the façade over already-constructed collaborators. History
// is optional diagnostic bookkeeping: a nil Store records nothing.
func New(l *lobby.Lobby, s *store.Store, sessions *session.Registry) *API {
	return &API{Lobby: l, Store: s, Sessions: sessions, History: history.NewInMemoryStore()}
}

// JoinLobby admits a new player (POST /lobby).
func (a *API) JoinLobby(minSize, maxSize int) (lobby.JoinResult, error) {
	return a.Lobby.Join(minSize, maxSize)
}

// PollLobbyAssignment reports whether idInLobby has been matched yet
// (GET /lobby/players/{id}/game).
func (a *API) PollLobbyAssignment(token string, idInLobby int) (lobby.Assignment, error) {
	if !a.Sessions.AuthorizeLobby(token, idInLobby) {
		return lobby.Assignment{}, a.classifyTokenError(token)
	}
	assignment, ok := a.Lobby.Poll(idInLobby)
	if !ok {
		return lobby.Assignment{}, ErrNotMatchedYet
	}
	return assignment, nil
}

// GetPrivateView returns playerID's missing part
// (GET /games/{gid}/players/{pid}/private).
func (a *API) GetPrivateView(token, gameID string, playerID int) (engine.PrivateView, error) {
	if !a.Sessions.AuthorizeGame(token, gameID, playerID) {
		return engine.PrivateView{}, a.classifyTokenError(token)
	}
	g, ok := a.Store.Get(gameID)
	if !ok {
		return engine.PrivateView{}, ErrNoSuchGame
	}
	view, ok := g.DescribePrivate(playerID)
	if !ok {
		return engine.PrivateView{}, ErrNoSuchPlayer
	}
	return view, nil
}

// SubmitAction applies action on playerID's behalf
// (POST /games/{gid}/players/{pid}/moves). Rule violations come back as
// *engine.ActionError, unchanged from what GameRules produced.
func (a *API) SubmitAction(token, gameID string, playerID int, action engine.Action) error {
	if !a.Sessions.AuthorizeGame(token, gameID, playerID) {
		return a.classifyTokenError(token)
	}
	g, ok := a.Store.Get(gameID)
	if !ok {
		return ErrNoSuchGame
	}
	if err := g.Apply(playerID, action); err != nil {
		return err
	}
	if a.History != nil {
		a.History.Append(gameID, history.Entry{Actor: playerID, Action: action, AppliedAt: time.Now()})
	}
	return nil
}

// GetPublicView returns a game's public description (GET /games/{gid}).
// Unauthenticated, per spec §6.
func (a *API) GetPublicView(gameID string) (engine.Description, error) {
	g, ok := a.Store.Get(gameID)
	if !ok {
		return engine.Description{}, ErrNoSuchGame
	}
	return g.DescribePublic(), nil
}

// classifyTokenError distinguishes an unrecognized token from one that
// simply doesn't authorize the resource being requested.
func (a *API) classifyTokenError(token string) error {
	if _, ok := a.Sessions.Lookup(token); !ok {
		return ErrBadToken
	}
	return ErrTokenNotForThisResource
}
