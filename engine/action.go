package engine

import "github.com/lazharichir/missingparts/cards"

// Action is the sum type of every move a client may submit against a game,
// modeled as a tagged union matching GameState's wire convention.
type Action interface {
	isAction()
	ActionName() string
}

// Scavenge draws the top three cards of the draw pile into a pending
// selection. Legal only in WaitingForPlayerAction; does not advance the turn.
type Scavenge struct{}

func (Scavenge) isAction()          {}
func (Scavenge) ActionName() string { return "Scavenge" }

// FinishScavenge resolves a pending Scavenge by keeping one of the three
// scavenged cards and discarding the other two.
type FinishScavenge struct {
	Card cards.Card
}

func (FinishScavenge) isAction()          {}
func (FinishScavenge) ActionName() string { return "FinishScavenge" }

// Share draws the top three cards, keeping two and giving one to WithPlayer.
type Share struct {
	WithPlayer int
}

func (Share) isAction()          {}
func (Share) ActionName() string { return "Share" }

// Trade proposes swapping Offer.Offered (held by the actor) for
// Offer.InExchange (held by WithPlayer). Does not advance the turn; awaits
// TradeAccept or TradeReject from WithPlayer.
type Trade struct {
	WithPlayer int
	Offer      TradeOffer
}

func (Trade) isAction()          {}
func (Trade) ActionName() string { return "Trade" }

// TradeAccept completes a pending trade, swapping the two cards.
type TradeAccept struct{}

func (TradeAccept) isAction()          {}
func (TradeAccept) ActionName() string { return "TradeAccept" }

// TradeReject declines a pending trade with no card movement; the
// initiator keeps their turn (no turn advance).
type TradeReject struct{}

func (TradeReject) isAction()          {}
func (TradeReject) ActionName() string { return "TradeReject" }

// Steal takes Card from FromPlayer's gathered parts without any
// precondition on what the actor currently holds.
type Steal struct {
	FromPlayer int
	Card       cards.Card
}

func (Steal) isAction()          {}
func (Steal) ActionName() string { return "Steal" }

// Scrap discards four of the actor's own cards in exchange for one
// specific card already sitting in the discard pile.
type Scrap struct {
	PlayerCards    [4]cards.Card
	ForDiscardCard cards.Card
}

func (Scrap) isAction()          {}
func (Scrap) ActionName() string { return "Scrap" }

// Escape ends the actor's participation once they hold at least one card
// of every suit other than their missing part's (the missing part counts
// as presence of its own suit).
type Escape struct{}

func (Escape) isAction()          {}
func (Escape) ActionName() string { return "Escape" }

// Skip always advances the turn with no other effect.
type Skip struct{}

func (Skip) isAction()          {}
func (Skip) ActionName() string { return "Skip" }

// CheatGetCards appends arbitrary cards to the actor's hand; legal only
// for tester-flagged players.
type CheatGetCards struct {
	Cards []cards.Card
}

func (CheatGetCards) isAction()          {}
func (CheatGetCards) ActionName() string { return "CheatGetCards" }
