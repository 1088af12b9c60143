package engine

import "github.com/lazharichir/missingparts/cards"

// Apply validates and applies action on behalf of actor against snap,
// returning the new snapshot. On any rule violation it returns the zero
// Snapshot and an *ActionError; the caller must discard its draft and keep
// using the snapshot it already had, since no mutation took place.
func Apply(snap Snapshot, actor int, action Action) (Snapshot, error) {
	if actor < 0 || actor >= len(snap.Players) {
		return Snapshot{}, newActionError(ErrInvalidPlayerReference, "actor %d does not exist", actor)
	}
	if err := authorize(snap, actor, action); err != nil {
		return Snapshot{}, err
	}

	next := snap.Clone()

	switch a := action.(type) {
	case Scavenge:
		return applyScavenge(next, actor)
	case FinishScavenge:
		return applyFinishScavenge(next, actor, a)
	case Share:
		return applyShare(next, actor, a)
	case Trade:
		return applyTrade(next, actor, a)
	case TradeAccept:
		return applyTradeAccept(next, actor)
	case TradeReject:
		return applyTradeReject(next, actor)
	case Steal:
		return applySteal(next, actor, a)
	case Scrap:
		return applyScrap(next, actor, a)
	case Escape:
		return applyEscape(next, actor)
	case Skip:
		return applySkip(next, actor)
	case CheatGetCards:
		return applyCheat(next, actor, a)
	default:
		return Snapshot{}, newActionError(ErrInvalidActionForState, "unrecognized action %T", action)
	}
}

// authorize is the gate every action passes through first (spec §4.2):
// it checks who may act in the current state, and with which action.
func authorize(snap Snapshot, actor int, action Action) error {
	switch st := snap.State.(type) {
	case WaitingForPlayerAction:
		if actor != st.Player {
			return newActionError(ErrNotYourTurn, "it is player %d's turn, not %d", st.Player, actor)
		}
	case WaitingForScavengeComplete:
		if actor != st.Player {
			return newActionError(ErrNotYourTurn, "player %d's scavenge is pending", st.Player)
		}
		if _, ok := action.(FinishScavenge); !ok {
			return newActionError(ErrInvalidActionForState, "only FinishScavenge is legal while a scavenge is pending")
		}
	case WaitingForTradeConfirmation:
		if actor != st.Target {
			return newActionError(ErrNotYourTurn, "only player %d may respond to this trade", st.Target)
		}
		switch action.(type) {
		case TradeAccept, TradeReject:
		default:
			return newActionError(ErrInvalidActionForState, "only TradeAccept or TradeReject is legal while a trade is pending")
		}
	case Finished:
		return newActionError(ErrInvalidActionForState, "the game has finished")
	default:
		return newActionError(ErrInvalidActionForState, "unrecognized game state %T", snap.State)
	}
	return nil
}

func applyScavenge(snap Snapshot, actor int) (Snapshot, error) {
	if snap.Draw.Len() < 3 {
		return Snapshot{}, newActionError(ErrNotEnoughCardsInDraw, "draw pile has %d cards, need 3", snap.Draw.Len())
	}
	top3 := snap.Draw.PopTopN(3)
	var scavenged [3]cards.Card
	copy(scavenged[:], top3)
	snap.State = WaitingForScavengeComplete{Player: actor, Scavenged: scavenged}
	return snap, nil
}

func applyFinishScavenge(snap Snapshot, actor int, a FinishScavenge) (Snapshot, error) {
	st, ok := snap.State.(WaitingForScavengeComplete)
	if !ok {
		return Snapshot{}, newActionError(ErrInvalidActionForState, "no scavenge is pending")
	}

	idx := -1
	for i, c := range st.Scavenged {
		if c.Equals(a.Card) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Snapshot{}, newActionError(ErrCardNotInScavenged, "%s was not among the scavenged cards", a.Card)
	}

	snap.Players[actor].GatheredParts = append(snap.Players[actor].GatheredParts, st.Scavenged[idx])
	for i, c := range st.Scavenged {
		if i == idx {
			continue
		}
		snap.Discard.PushTop(c)
	}

	completeTurn(&snap, actor)
	return snap, nil
}

func applyShare(snap Snapshot, actor int, a Share) (Snapshot, error) {
	if err := requireOtherEligiblePlayer(snap, actor, a.WithPlayer); err != nil {
		return Snapshot{}, err
	}
	if snap.Draw.Len() < 3 {
		return Snapshot{}, newActionError(ErrNotEnoughCardsInDraw, "draw pile has %d cards, need 3", snap.Draw.Len())
	}
	top3 := snap.Draw.PopTopN(3)
	snap.Players[actor].GatheredParts = append(snap.Players[actor].GatheredParts, top3[0], top3[1])
	snap.Players[a.WithPlayer].GatheredParts = append(snap.Players[a.WithPlayer].GatheredParts, top3[2])
	completeTurn(&snap, actor)
	return snap, nil
}

func applyTrade(snap Snapshot, actor int, a Trade) (Snapshot, error) {
	if err := requireOtherEligiblePlayer(snap, actor, a.WithPlayer); err != nil {
		return Snapshot{}, err
	}
	if !snap.Players[actor].GatheredParts.Contains(a.Offer.Offered) {
		return Snapshot{}, newActionError(ErrCardNotOwned, "you do not hold %s", a.Offer.Offered)
	}
	if !snap.Players[a.WithPlayer].GatheredParts.Contains(a.Offer.InExchange) {
		return Snapshot{}, newActionError(ErrCardNotOwned, "player %d does not hold %s", a.WithPlayer, a.Offer.InExchange)
	}
	snap.State = WaitingForTradeConfirmation{Initiator: actor, Target: a.WithPlayer, Offer: a.Offer}
	return snap, nil
}

func applyTradeAccept(snap Snapshot, actor int) (Snapshot, error) {
	st, ok := snap.State.(WaitingForTradeConfirmation)
	if !ok {
		return Snapshot{}, newActionError(ErrInvalidActionForState, "no trade is pending")
	}
	if !snap.Players[st.Initiator].GatheredParts.RemoveFirst(st.Offer.Offered) {
		return Snapshot{}, newActionError(ErrCardNotOwned, "initiator no longer holds %s", st.Offer.Offered)
	}
	if !snap.Players[st.Target].GatheredParts.RemoveFirst(st.Offer.InExchange) {
		return Snapshot{}, newActionError(ErrCardNotOwned, "target no longer holds %s", st.Offer.InExchange)
	}
	snap.Players[st.Initiator].GatheredParts = append(snap.Players[st.Initiator].GatheredParts, st.Offer.InExchange)
	snap.Players[st.Target].GatheredParts = append(snap.Players[st.Target].GatheredParts, st.Offer.Offered)
	completeTurn(&snap, st.Initiator)
	return snap, nil
}

func applyTradeReject(snap Snapshot, actor int) (Snapshot, error) {
	st, ok := snap.State.(WaitingForTradeConfirmation)
	if !ok {
		return Snapshot{}, newActionError(ErrInvalidActionForState, "no trade is pending")
	}
	snap.State = WaitingForPlayerAction{Player: st.Initiator}
	return snap, nil
}

func applySteal(snap Snapshot, actor int, a Steal) (Snapshot, error) {
	if a.FromPlayer == actor {
		return Snapshot{}, newActionError(ErrInvalidPlayerReference, "cannot steal from yourself")
	}
	if a.FromPlayer < 0 || a.FromPlayer >= len(snap.Players) {
		return Snapshot{}, newActionError(ErrInvalidPlayerReference, "player %d does not exist", a.FromPlayer)
	}
	if !snap.Players[a.FromPlayer].GatheredParts.RemoveFirst(a.Card) {
		return Snapshot{}, newActionError(ErrCardNotOwned, "player %d does not hold %s", a.FromPlayer, a.Card)
	}
	snap.Players[actor].GatheredParts = append(snap.Players[actor].GatheredParts, a.Card)
	completeTurn(&snap, actor)
	return snap, nil
}

func applyScrap(snap Snapshot, actor int, a Scrap) (Snapshot, error) {
	owned := snap.Players[actor].GatheredParts.Clone()
	for _, c := range a.PlayerCards {
		if !owned.RemoveFirst(c) {
			return Snapshot{}, newActionError(ErrCardNotOwned, "you do not hold enough copies of %s", c)
		}
	}
	if !snap.Discard.Contains(a.ForDiscardCard) {
		return Snapshot{}, newActionError(ErrCardNotInDiscard, "%s is not in the discard pile", a.ForDiscardCard)
	}

	for _, c := range a.PlayerCards {
		snap.Players[actor].GatheredParts.RemoveFirst(c)
		snap.Discard.PushTop(c)
	}
	snap.Discard.RemoveFirst(a.ForDiscardCard)
	snap.Players[actor].GatheredParts = append(snap.Players[actor].GatheredParts, a.ForDiscardCard)

	completeTurn(&snap, actor)
	return snap, nil
}

func applyEscape(snap Snapshot, actor int) (Snapshot, error) {
	if !satisfiesEscapeCondition(snap.Players[actor]) {
		return Snapshot{}, newActionError(ErrEscapeConditionNotMet, "player %d does not hold a card of every suit other than the missing part's", actor)
	}
	snap.Players[actor].Escaped = true
	completeTurn(&snap, actor)
	return snap, nil
}

func applySkip(snap Snapshot, actor int) (Snapshot, error) {
	completeTurn(&snap, actor)
	return snap, nil
}

func applyCheat(snap Snapshot, actor int, a CheatGetCards) (Snapshot, error) {
	if !snap.Players[actor].IsTester {
		return Snapshot{}, newActionError(ErrNotATester, "player %d is not a tester", actor)
	}
	snap.Players[actor].GatheredParts = append(snap.Players[actor].GatheredParts, a.Cards...)
	completeTurn(&snap, actor)
	return snap, nil
}

// requireOtherEligiblePlayer checks the shared precondition for Share and
// Trade targets: distinct from actor, a valid index, and not escaped or
// out of moves.
func requireOtherEligiblePlayer(snap Snapshot, actor, other int) error {
	if other == actor {
		return newActionError(ErrInvalidPlayerReference, "cannot target yourself")
	}
	if other < 0 || other >= len(snap.Players) {
		return newActionError(ErrInvalidPlayerReference, "player %d does not exist", other)
	}
	p := snap.Players[other]
	if p.Escaped || !p.HasMovesLeft() {
		return newActionError(ErrInvalidPlayerReference, "player %d is not eligible", other)
	}
	return nil
}

// satisfiesEscapeCondition reports whether p's gathered parts include at
// least one card of every suit other than their missing part's. The
// missing part counts as presence of its own suit; the missing-part card
// itself does not have to be among the gathered parts.
func satisfiesEscapeCondition(p Player) bool {
	held := map[cards.Suit]bool{p.MissingPart.Suit: true}
	for _, c := range p.GatheredParts {
		held[c.Suit] = true
	}
	for _, s := range cards.Suits {
		if !held[s] {
			return false
		}
	}
	return true
}

// completeTurn centralizes turn advancement (spec §9): decrement the
// actor's move budget, then hand the turn to the next eligible player,
// skipping anyone escaped or out of moves. If none remain, the game ends.
func completeTurn(snap *Snapshot, actor int) {
	p := &snap.Players[actor]
	if p.MovesLeft != nil {
		*p.MovesLeft--
	}

	next, ok := nextEligiblePlayer(snap.Players, actor)
	if !ok {
		snap.State = Finished{}
		return
	}
	snap.State = WaitingForPlayerAction{Player: next}
}

func nextEligiblePlayer(players []Player, from int) (int, bool) {
	n := len(players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		p := players[idx]
		if !p.Escaped && p.HasMovesLeft() {
			return idx, true
		}
	}
	return 0, false
}
