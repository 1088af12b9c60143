package engine

import (
	"encoding/json"
	"fmt"
)

// MarshalGameState encodes state per spec §9's tagged-union convention: an
// object whose sole key is the variant name, except Finished which has no
// payload and marshals as the bare string "Finished".
func MarshalGameState(state GameState) ([]byte, error) {
	switch st := state.(type) {
	case WaitingForPlayerAction:
		return json.Marshal(map[string]WaitingForPlayerAction{"WaitingForPlayerAction": st})
	case WaitingForScavengeComplete:
		return json.Marshal(map[string]WaitingForScavengeComplete{"WaitingForScavengeComplete": st})
	case WaitingForTradeConfirmation:
		return json.Marshal(map[string]WaitingForTradeConfirmation{"WaitingForTradeConfirmation": st})
	case Finished:
		return json.Marshal("Finished")
	default:
		return nil, fmt.Errorf("engine: unknown game state %T", state)
	}
}

// UnmarshalGameState decodes the tagged-union encoding produced by
// MarshalGameState. Mainly useful to tests and diagnostics; the server
// only ever emits this encoding, it does not need to accept it.
func UnmarshalGameState(data []byte) (GameState, error) {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		if bare == "Finished" {
			return Finished{}, nil
		}
		return nil, fmt.Errorf("engine: unknown bare game state %q", bare)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("engine: game state is neither a string nor an object: %w", err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("engine: game state envelope must have exactly one key, got %d", len(envelope))
	}

	for variant, payload := range envelope {
		switch variant {
		case "WaitingForPlayerAction":
			var v WaitingForPlayerAction
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
			return v, nil
		case "WaitingForScavengeComplete":
			var v WaitingForScavengeComplete
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
			return v, nil
		case "WaitingForTradeConfirmation":
			var v WaitingForTradeConfirmation
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
			return v, nil
		default:
			return nil, fmt.Errorf("engine: unknown game state variant %q", variant)
		}
	}
	panic("unreachable")
}

// payloadlessActions lists the variants that marshal as bare strings
// instead of single-key objects (spec §9).
var payloadlessActions = map[string]Action{
	"Scavenge":    Scavenge{},
	"TradeAccept": TradeAccept{},
	"TradeReject": TradeReject{},
	"Escape":      Escape{},
	"Skip":        Skip{},
}

// MarshalAction encodes action per the same tagged-union convention as
// GameState.
func MarshalAction(action Action) ([]byte, error) {
	if _, ok := payloadlessActions[action.ActionName()]; ok {
		return json.Marshal(action.ActionName())
	}
	switch a := action.(type) {
	case FinishScavenge:
		return json.Marshal(map[string]FinishScavenge{"FinishScavenge": a})
	case Share:
		return json.Marshal(map[string]Share{"Share": a})
	case Trade:
		return json.Marshal(map[string]Trade{"Trade": a})
	case Steal:
		return json.Marshal(map[string]Steal{"Steal": a})
	case Scrap:
		return json.Marshal(map[string]wireScrap{"Scrap": toWireScrap(a)})
	case CheatGetCards:
		return json.Marshal(map[string]CheatGetCards{"CheatGetCards": a})
	default:
		return nil, fmt.Errorf("engine: unknown action %T", action)
	}
}

// wireScrap mirrors Scrap but carries PlayerCards as a slice, since JSON
// arrays don't announce their expected length the way a Go array does;
// UnmarshalAction is what enforces the WrongNumberOfCards rule.
type wireScrap struct {
	PlayerCards    []json.RawMessage `json:"PlayerCards"`
	ForDiscardCard json.RawMessage   `json:"ForDiscardCard"`
}

func toWireScrap(a Scrap) wireScrap {
	raw := make([]json.RawMessage, 4)
	for i, c := range a.PlayerCards {
		b, _ := json.Marshal(c)
		raw[i] = b
	}
	discard, _ := json.Marshal(a.ForDiscardCard)
	return wireScrap{PlayerCards: raw, ForDiscardCard: discard}
}

// UnmarshalAction decodes the tagged-union encoding produced by
// MarshalAction, i.e. a client's player_action request body.
func UnmarshalAction(data []byte) (Action, error) {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		if a, ok := payloadlessActions[bare]; ok {
			return a, nil
		}
		return nil, fmt.Errorf("engine: unknown bare action %q", bare)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("engine: action is neither a string nor an object: %w", err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("engine: action envelope must have exactly one key, got %d", len(envelope))
	}

	for variant, payload := range envelope {
		switch variant {
		case "FinishScavenge":
			var v FinishScavenge
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
			return v, nil
		case "Share":
			var v Share
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
			return v, nil
		case "Trade":
			var v Trade
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
			return v, nil
		case "Steal":
			var v Steal
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
			return v, nil
		case "Scrap":
			return unmarshalScrap(payload)
		case "CheatGetCards":
			var v CheatGetCards
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
			return v, nil
		default:
			return nil, fmt.Errorf("engine: unknown action variant %q", variant)
		}
	}
	panic("unreachable")
}

func unmarshalScrap(payload json.RawMessage) (Action, error) {
	var w wireScrap
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, err
	}
	if len(w.PlayerCards) != 4 {
		return nil, &ActionError{
			Code:    ErrWrongNumberOfCards,
			Message: fmt.Sprintf("Scrap.PlayerCards must have exactly 4 entries, got %d", len(w.PlayerCards)),
		}
	}
	var scrap Scrap
	for i, raw := range w.PlayerCards {
		if err := json.Unmarshal(raw, &scrap.PlayerCards[i]); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(w.ForDiscardCard, &scrap.ForDiscardCard); err != nil {
		return nil, err
	}
	return scrap, nil
}
