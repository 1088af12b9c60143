package engine

import "github.com/lazharichir/missingparts/cards"

// Player is the in-game state of one seat: the cards they hold, their
// secret missing part, and their progress toward leaving the game.
type Player struct {
	GatheredParts cards.Stack
	MissingPart   cards.Card
	Escaped       bool

	// MovesLeft is nil for an unbounded player, or a non-negative count
	// that decrements by one every time a turn completes for them.
	MovesLeft *int

	// IsTester is attached at player creation by the lobby side-channel
	// and honored only by CheatGetCards.
	IsTester bool
}

// HasMovesLeft reports whether the player may still take a turn.
func (p Player) HasMovesLeft() bool {
	return p.MovesLeft == nil || *p.MovesLeft != 0
}

// Clone returns a deep copy safe for independent mutation.
func (p Player) Clone() Player {
	clone := p
	clone.GatheredParts = p.GatheredParts.Clone()
	if p.MovesLeft != nil {
		moves := *p.MovesLeft
		clone.MovesLeft = &moves
	}
	return clone
}

// NewUnboundedPlayer builds a player dealt the given missing part with no
// move limit.
func NewUnboundedPlayer(missingPart cards.Card, isTester bool) Player {
	return Player{
		GatheredParts: cards.Stack{},
		MissingPart:   missingPart,
		IsTester:      isTester,
	}
}

// NewBoundedPlayer builds a player dealt the given missing part with a
// finite move budget.
func NewBoundedPlayer(missingPart cards.Card, moves int, isTester bool) Player {
	m := moves
	return Player{
		GatheredParts: cards.Stack{},
		MissingPart:   missingPart,
		MovesLeft:     &m,
		IsTester:      isTester,
	}
}
