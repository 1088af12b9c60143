package transport

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans out game_description deltas to websocket subscribers, one
// registration/unregistration channel pair per the teacher's
// connection.Manager, generalized from per-table to per-game fan-out.
// Strictly additive: nothing reachable only through Hub, every update it
// carries was already produced by an HTTP-visible mutation.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{} // gameID -> set

	Register   chan *subscriber
	Unregister chan *subscriber
}

type subscriber struct {
	gameID string
	send   chan []byte
	conn   *websocket.Conn
}

// NewHub builds an empty Hub. Callers must run Start in its own
// goroutine before traffic arrives.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		Register:    make(chan *subscriber),
		Unregister:  make(chan *subscriber),
	}
}

// Start processes (un)registration events until the process exits.
func (h *Hub) Start() {
	for {
		select {
		case sub := <-h.Register:
			h.mu.Lock()
			set, ok := h.subscribers[sub.gameID]
			if !ok {
				set = make(map[*subscriber]struct{})
				h.subscribers[sub.gameID] = set
			}
			set[sub] = struct{}{}
			h.mu.Unlock()
		case sub := <-h.Unregister:
			h.mu.Lock()
			if set, ok := h.subscribers[sub.gameID]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(h.subscribers, sub.gameID)
				}
				close(sub.send)
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes v, JSON-encoded, to every subscriber of gameID.
func (h *Hub) Broadcast(gameID string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("missingparts: hub: marshal %s: %v", gameID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers[gameID] {
		select {
		case sub.send <- payload:
		default:
			log.Printf("missingparts: hub: dropping slow subscriber for %s", gameID)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWebSocket upgrades and subscribes the caller to a single game's
// updates (?game_id=...). It is the only place the core's JSON output
// reaches a client outside the plain HTTP endpoints.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		http.Error(w, "missing game_id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("missingparts: websocket upgrade: %v", err)
		return
	}

	sub := &subscriber{gameID: gameID, send: make(chan []byte, 16), conn: conn}
	s.hub.Register <- sub

	go s.writePump(sub)
	go s.readPump(sub)
}

// readPump's only job is to notice the client went away; Missing Parts
// never accepts moves over the websocket, only plain HTTP (spec §1: the
// channel is additive, not a second way to mutate state).
func (s *Server) readPump(sub *subscriber) {
	defer func() {
		s.hub.Unregister <- sub
		sub.conn.Close()
	}()
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(sub *subscriber) {
	defer sub.conn.Close()
	for msg := range sub.send {
		if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
