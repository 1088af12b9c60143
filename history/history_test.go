package history

import (
	"testing"

	"github.com/lazharichir/missingparts/engine"
	"github.com/stretchr/testify/assert"
)

func TestAppendAndLoadPreservesOrder(t *testing.T) {
	s := NewInMemoryStore()

	s.Append("game-1", Entry{Actor: 0, Action: engine.Scavenge{}})
	s.Append("game-1", Entry{Actor: 0, Action: engine.FinishScavenge{}})
	s.Append("game-2", Entry{Actor: 1, Action: engine.Skip{}})

	gameOne := s.Load("game-1")
	if assert.Len(t, gameOne, 2) {
		assert.IsType(t, engine.Scavenge{}, gameOne[0].Action)
		assert.IsType(t, engine.FinishScavenge{}, gameOne[1].Action)
	}

	assert.Len(t, s.Load("game-2"), 1)
}

func TestLoadUnknownGameReturnsEmpty(t *testing.T) {
	s := NewInMemoryStore()
	assert.Empty(t, s.Load("nope"))
}

func TestLoadReturnsACopyNotTheLiveSlice(t *testing.T) {
	s := NewInMemoryStore()
	s.Append("game-1", Entry{Actor: 0, Action: engine.Skip{}})

	got := s.Load("game-1")
	got[0] = Entry{Actor: 9, Action: engine.Escape{}}

	fresh := s.Load("game-1")
	assert.Equal(t, 0, fresh[0].Actor)
}
