package diagnostics

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/lazharichir/missingparts/cards"
	"github.com/lazharichir/missingparts/engine"
	"github.com/lazharichir/missingparts/lobby"
	"github.com/lazharichir/missingparts/session"
	"github.com/lazharichir/missingparts/store"
	"github.com/stretchr/testify/assert"
)

func sampleSnapshot() engine.Snapshot {
	return engine.Snapshot{
		Players: []engine.Player{
			engine.NewUnboundedPlayer(cards.Card{Suit: cards.Hearts, Rank: cards.Ace}, false),
			engine.NewUnboundedPlayer(cards.Card{Suit: cards.Spades, Rank: cards.Ace}, false),
		},
		Draw:    cards.Stack{{Suit: cards.Clubs, Rank: cards.Two}},
		Discard: cards.Stack{},
		State:   engine.WaitingForPlayerAction{Player: 0},
	}
}

func TestDumpGameIncludesGameID(t *testing.T) {
	s := store.New()
	id := s.CreateGame(sampleSnapshot())
	g, ok := s.Get(id)
	assert.True(t, ok)

	out := DumpGame(g)
	assert.True(t, strings.Contains(out, id))
}

func TestDumpStoreIncludesEveryGame(t *testing.T) {
	s := store.New()
	idA := s.CreateGame(sampleSnapshot())
	idB := s.CreateGame(sampleSnapshot())

	out := DumpStore(s)
	assert.True(t, strings.Contains(out, idA))
	assert.True(t, strings.Contains(out, idB))
}

func TestDumpLobbyRendersWaitingEntries(t *testing.T) {
	s := store.New()
	sessions := session.NewRegistry()
	l := lobby.New(rand.New(rand.NewSource(1)), lobby.DefaultConfig(), s, sessions)

	_, err := l.Join(3, 4)
	assert.NoError(t, err)

	out := DumpLobby(l)
	assert.True(t, strings.Contains(out, "Waiting"))
}
