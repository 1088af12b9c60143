package cards

import (
	"encoding/json"
	"fmt"
)

// Suit represents a card suit.
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists all four suits in a stable order, used for deck construction
// and for walking the escape condition's "one of every suit" check.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// Rank represents a card rank.
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Ranks lists all thirteen ranks in a stable order, used for deck construction.
var Ranks = [13]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card is a value type: (Suit, Rank). Identity never matters, only value.
type Card struct {
	Suit Suit
	Rank Rank
}

// String returns the short human-readable form, e.g. "10♣".
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Equals reports whether two cards have the same suit and rank.
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

// FromString parses the shorthand produced by String, plus ASCII suit
// letters (s/h/d/c) for callers that can't type the suit glyphs.
func FromString(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}
	suitPart := string(runes[len(runes)-1])
	rankPart := string(runes[:len(runes)-1])

	var suit Suit
	switch suitPart {
	case "♠", "s", "S":
		suit = Spades
	case "♥", "h", "H":
		suit = Hearts
	case "♦", "d", "D":
		suit = Diamonds
	case "♣", "c", "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", suitPart)
	}

	var rank Rank
	switch rankPart {
	case "A":
		rank = Ace
	case "K":
		rank = King
	case "Q":
		rank = Queen
	case "J":
		rank = Jack
	case "10":
		rank = Ten
	case "9":
		rank = Nine
	case "8":
		rank = Eight
	case "7":
		rank = Seven
	case "6":
		rank = Six
	case "5":
		rank = Five
	case "4":
		rank = Four
	case "3":
		rank = Three
	case "2":
		rank = Two
	default:
		return Card{}, fmt.Errorf("invalid card rank: %q", rankPart)
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// MarshalJSON encodes a card as its shorthand string, e.g. "10♣".
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from its shorthand string.
func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
