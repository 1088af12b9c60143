package cards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck52HasAllDistinctCards(t *testing.T) {
	deck := NewDeck52()
	require.Len(t, deck, 52)

	seen := make(map[Card]bool, 52)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestShuffleIsDeterministicForAGivenSource(t *testing.T) {
	deck := NewDeck52()

	a := Shuffle(deck, rand.New(rand.NewSource(42)))
	b := Shuffle(deck, rand.New(rand.NewSource(42)))

	assert.Equal(t, a, b)
	assert.Len(t, a, 52)
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	deck := NewDeck52()
	original := make([]Card, len(deck))
	copy(original, deck)

	Shuffle(deck, rand.New(rand.NewSource(7)))

	assert.Equal(t, original, deck)
}

func TestStackPopTopAndPushTop(t *testing.T) {
	s := Stack{{Suit: Clubs, Rank: Two}, {Suit: Clubs, Rank: Three}}

	top, ok := s.PopTop()
	require.True(t, ok)
	assert.Equal(t, Card{Suit: Clubs, Rank: Two}, top)
	assert.Equal(t, 1, s.Len())

	s.PushTop(Card{Suit: Clubs, Rank: Four})
	top, ok = s.PeekTop()
	require.True(t, ok)
	assert.Equal(t, Card{Suit: Clubs, Rank: Four}, top)
}

func TestStackPopTopNOrderAndPanic(t *testing.T) {
	s := Stack{{Rank: Two}, {Rank: Three}, {Rank: Four}, {Rank: Five}}
	top3 := s.PopTopN(3)
	assert.Equal(t, []Card{{Rank: Two}, {Rank: Three}, {Rank: Four}}, top3)
	assert.Equal(t, 1, s.Len())

	assert.Panics(t, func() {
		s.PopTopN(5)
	})
}

func TestStackRemoveFirstAndContains(t *testing.T) {
	s := Stack{{Rank: Two}, {Rank: Three}, {Rank: Two}}
	assert.True(t, s.Contains(Card{Rank: Three}))

	ok := s.RemoveFirst(Card{Rank: Two})
	require.True(t, ok)
	assert.Equal(t, Stack{{Rank: Three}, {Rank: Two}}, s)

	ok = s.RemoveFirst(Card{Rank: King})
	assert.False(t, ok)
}

func TestStackCloneIsIndependent(t *testing.T) {
	s := Stack{{Rank: Two}}
	clone := s.Clone()
	clone[0] = Card{Rank: King}
	assert.Equal(t, Card{Rank: Two}, s[0])
}

func TestEmptyPop(t *testing.T) {
	var s Stack
	_, ok := s.PopTop()
	assert.False(t, ok)
	_, ok = s.PeekTop()
	assert.False(t, ok)
}
