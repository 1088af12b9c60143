package engine

import (
	"encoding/json"
	"sync"

	"github.com/lazharichir/missingparts/cards"
)

// Game owns a GameRules-governed snapshot plus the bookkeeping the rules
// engine itself doesn't need: a stable ID and the per-game exclusion lock
// (spec §4.3, §5). All mutating calls are serialized through mu; readers
// take the same lock briefly to clone a consistent view.
type Game struct {
	mu   sync.Mutex
	ID   string
	snap Snapshot
}

// NewGame wraps an already-dealt snapshot (see lobby.Lobby's formGame) as a
// lockable Game.
func NewGame(id string, snap Snapshot) *Game {
	return &Game{ID: id, snap: snap}
}

// Apply validates and applies action on actor's behalf. On success the
// game's internal snapshot is replaced; on failure it is left untouched
// and the *ActionError is returned.
func (g *Game) Apply(actor int, action Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, err := Apply(g.snap, actor, action)
	if err != nil {
		return err
	}
	g.snap = next
	return nil
}

// PlayerView is the public projection of one seat: everything except the
// missing part and any hidden pile contents.
type PlayerView struct {
	GatheredParts []cards.Card `json:"gathered_parts"`
	Escaped       bool         `json:"escaped"`
	MovesLeft     *int         `json:"moves_left"`
}

// Description is the public view of a game: draw pile size and discard
// contents are visible, but never the draw pile's order or cards, and
// never any player's missing part.
type Description struct {
	GameID    string       `json:"game_id"`
	DrawCount int          `json:"draw_count"`
	Discard   []cards.Card `json:"discard"`
	Players   []PlayerView `json:"players"`
	State     GameState    `json:"-"`
	StateWire []byte       `json:"-"`
}

// MarshalJSON embeds State using its tagged-union wire encoding under the
// "state" key, alongside the plain struct fields above.
func (d Description) MarshalJSON() ([]byte, error) {
	type alias struct {
		GameID    string          `json:"game_id"`
		DrawCount int             `json:"draw_count"`
		Discard   []cards.Card    `json:"discard"`
		Players   []PlayerView    `json:"players"`
		State     json.RawMessage `json:"state"`
	}
	stateWire := d.StateWire
	if stateWire == nil {
		var err error
		stateWire, err = MarshalGameState(d.State)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(alias{
		GameID:    d.GameID,
		DrawCount: d.DrawCount,
		Discard:   d.Discard,
		Players:   d.Players,
		State:     stateWire,
	})
}

// DescribePublic builds the wire-safe public view under the game's lock.
func (g *Game) DescribePublic() Description {
	g.mu.Lock()
	defer g.mu.Unlock()

	players := make([]PlayerView, len(g.snap.Players))
	for i, p := range g.snap.Players {
		var moves *int
		if p.MovesLeft != nil {
			m := *p.MovesLeft
			moves = &m
		}
		players[i] = PlayerView{
			GatheredParts: append([]cards.Card(nil), p.GatheredParts...),
			Escaped:       p.Escaped,
			MovesLeft:     moves,
		}
	}

	stateWire, _ := MarshalGameState(g.snap.State)

	return Description{
		GameID:    g.ID,
		DrawCount: g.snap.Draw.Len(),
		Discard:   append([]cards.Card(nil), g.snap.Discard...),
		Players:   players,
		State:     g.snap.State,
		StateWire: stateWire,
	}
}

// PrivateView is a player's secret information: their missing part.
type PrivateView struct {
	MissingPart cards.Card `json:"missing_part"`
}

// DescribePrivate returns player's missing part. ok is false if player is
// out of range.
func (g *Game) DescribePrivate(player int) (PrivateView, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if player < 0 || player >= len(g.snap.Players) {
		return PrivateView{}, false
	}
	return PrivateView{MissingPart: g.snap.Players[player].MissingPart}, true
}

// PlayerCount reports the fixed number of seats at the table.
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.snap.Players)
}

// Snapshot returns a deep copy of the internal state, for diagnostics only.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snap.Clone()
}
