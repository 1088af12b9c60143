package engine

import "github.com/lazharichir/missingparts/cards"

// Snapshot is the complete mutable state Apply operates on: the players,
// the two shared piles, and the current state-machine state. GameRules is
// a pure function over this value — Apply never mutates its argument.
type Snapshot struct {
	Players []Player
	Draw    cards.Stack
	Discard cards.Stack
	State   GameState
}

// Clone returns a deep copy safe for Apply to mutate internally before
// handing back to the caller.
func (s Snapshot) Clone() Snapshot {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = p.Clone()
	}
	return Snapshot{
		Players: players,
		Draw:    s.Draw.Clone(),
		Discard: s.Discard.Clone(),
		State:   s.State,
	}
}
