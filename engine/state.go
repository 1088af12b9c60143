package engine

import "github.com/lazharichir/missingparts/cards"

// GameState is the sum type of the turn state machine's possible states,
// modeled as a tagged union (spec §9): every variant marshals on the wire
// as an object whose sole key is the variant name, except Finished which
// carries no payload and marshals as the bare string "Finished".
type GameState interface {
	isGameState()
	StateName() string
}

// WaitingForPlayerAction is the state between turns: Player is the active
// turn-holder, who must satisfy escaped=false and moves_left != 0.
type WaitingForPlayerAction struct {
	Player int
}

func (WaitingForPlayerAction) isGameState()          {}
func (WaitingForPlayerAction) StateName() string      { return "WaitingForPlayerAction" }

// TradeOffer pairs the card offered by the initiator with the card they
// want in exchange from the target.
type TradeOffer struct {
	Offered    cards.Card
	InExchange cards.Card
}

// WaitingForScavengeComplete is the mid-action state after Scavenge pops
// three cards; Player must submit FinishScavenge to resolve it.
type WaitingForScavengeComplete struct {
	Player    int
	Scavenged [3]cards.Card
}

func (WaitingForScavengeComplete) isGameState()     {}
func (WaitingForScavengeComplete) StateName() string { return "WaitingForScavengeComplete" }

// WaitingForTradeConfirmation is the mid-action state after Trade; only
// Target may respond, with TradeAccept or TradeReject.
type WaitingForTradeConfirmation struct {
	Initiator int
	Target    int
	Offer     TradeOffer
}

func (WaitingForTradeConfirmation) isGameState() {}
func (WaitingForTradeConfirmation) StateName() string {
	return "WaitingForTradeConfirmation"
}

// Finished is the terminal state: no further mutation is legal.
type Finished struct{}

func (Finished) isGameState()     {}
func (Finished) StateName() string { return "Finished" }
