// Package transport is the thin net/http collaborator spec §1 allows:
// it decodes strict JSON, calls into api.API, and encodes the result. No
// JSON5 leniency, no content negotiation — those are explicit non-goals.
// Grounded on the teacher's server/server.go, which layers
// http.HandleFunc directly over its own CommandRouter.
package transport

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/lazharichir/missingparts/api"
	"github.com/lazharichir/missingparts/engine"
	"github.com/lazharichir/missingparts/lobby"
)

// Server wires api.API behind the five REST endpoints of spec §6, plus
// the additive websocket broadcaster.
type Server struct {
	api *api.API
	hub *Hub
	mux *http.ServeMux
}

// NewServer builds a Server ready to ListenAndServe.
func NewServer(a *api.API) *Server {
	s := &Server{api: a, hub: NewHub(), mux: http.NewServeMux()}
	s.routes()
	return s
}

// Hub exposes the websocket broadcaster so callers (e.g. main) can push
// game_description deltas after an action is applied.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) routes() {
	s.mux.HandleFunc("/lobby", s.handleJoinLobby)
	s.mux.HandleFunc("/lobby/players/", s.handlePollLobby)
	s.mux.HandleFunc("/games/", s.handleGamesPrefix)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
}

func (s *Server) ListenAndServe(addr string) error {
	log.Printf("missingparts: listening on %s", addr)
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type joinLobbyRequest struct {
	MinSize int `json:"min_size"`
	MaxSize int `json:"max_size"`
}

type joinLobbyResponse struct {
	Token     string `json:"token"`
	IDInLobby int    `json:"id_in_lobby,omitempty"`
	GameID    string `json:"game_id,omitempty"`
	PlayerID  int    `json:"player_id_in_game,omitempty"`
	Matched   bool   `json:"matched"`
}

// handleJoinLobby implements POST /lobby.
func (s *Server) handleJoinLobby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req joinLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequestBody", err.Error())
		return
	}

	result, err := s.api.JoinLobby(req.MinSize, req.MaxSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidSizePreferences", err.Error())
		return
	}

	resp := joinLobbyResponse{}
	switch v := result.(type) {
	case lobby.Joined:
		resp.Token = v.Token
		resp.IDInLobby = v.IDInLobby
		resp.Matched = false
	case lobby.JoinedGameDirectly:
		resp.Token = v.Token
		resp.GameID = v.GameID
		resp.PlayerID = v.PlayerIDInGame
		resp.Matched = true
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handlePollLobby implements GET /lobby/players/{id}/game.
func (s *Server) handlePollLobby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/lobby/players/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "game" {
		http.NotFound(w, r)
		return
	}
	idInLobby, err := strconv.Atoi(parts[0])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	token := bearerToken(r)
	assignment, err := s.api.PollLobbyAssignment(token, idInLobby)
	if err != nil {
		writeAuthOrRoutingError(w, err)
		return
	}

	location := "/games/" + assignment.GameID + "/players/" + strconv.Itoa(assignment.PlayerIDInGame) + "/private"
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusTemporaryRedirect, map[string]any{
		"game_id":           assignment.GameID,
		"player_id_in_game": assignment.PlayerIDInGame,
	})
}

// handleGamesPrefix dispatches the three /games/... endpoints: the
// public description, the private view, and move submission.
func (s *Server) handleGamesPrefix(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/games/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1:
		s.handleGetPublicView(w, r, parts[0])
	case len(parts) == 4 && parts[1] == "players" && parts[3] == "private":
		s.handleGetPrivateView(w, r, parts[0], parts[2])
	case len(parts) == 4 && parts[1] == "players" && parts[3] == "moves":
		s.handleSubmitAction(w, r, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetPublicView(w http.ResponseWriter, r *http.Request, gameID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	desc, err := s.api.GetPublicView(gameID)
	if err != nil {
		writeAuthOrRoutingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

func (s *Server) handleGetPrivateView(w http.ResponseWriter, r *http.Request, gameID, playerIDRaw string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	playerID, err := strconv.Atoi(playerIDRaw)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	view, err := s.api.GetPrivateView(bearerToken(r), gameID, playerID)
	if err != nil {
		writeAuthOrRoutingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSubmitAction(w http.ResponseWriter, r *http.Request, gameID, playerIDRaw string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	playerID, err := strconv.Atoi(playerIDRaw)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	body, err := readAll(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequestBody", err.Error())
		return
	}
	action, err := engine.UnmarshalAction(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequestBody", err.Error())
		return
	}

	if err := s.api.SubmitAction(bearerToken(r), gameID, playerID, action); err != nil {
		if actionErr, ok := err.(*engine.ActionError); ok {
			writeJSON(w, http.StatusBadRequest, actionErr)
			return
		}
		writeAuthOrRoutingError(w, err)
		return
	}

	if desc, err := s.api.GetPublicView(gameID); err == nil {
		s.hub.Broadcast(gameID, desc)
	}
	w.WriteHeader(http.StatusNoContent)
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}
