package api

import (
	"math/rand"
	"testing"

	"github.com/lazharichir/missingparts/engine"
	"github.com/lazharichir/missingparts/lobby"
	"github.com/lazharichir/missingparts/session"
	"github.com/lazharichir/missingparts/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI() *API {
	s := store.New()
	sessions := session.NewRegistry()
	l := lobby.New(rand.New(rand.NewSource(9)), lobby.DefaultConfig(), s, sessions)
	return New(l, s, sessions)
}

func matchTwoPlayers(t *testing.T, a *API) (lobby.JoinResult, lobby.JoinedGameDirectly) {
	t.Helper()
	first, err := a.JoinLobby(2, 2)
	require.NoError(t, err)
	second, err := a.JoinLobby(2, 2)
	require.NoError(t, err)
	direct, ok := second.(lobby.JoinedGameDirectly)
	require.True(t, ok)
	return first, direct
}

func TestJoinLobbyPropagatesInvalidSizeError(t *testing.T) {
	a := newTestAPI()
	_, err := a.JoinLobby(5, 2)
	assert.Error(t, err)
}

func TestPollLobbyAssignmentRequiresMatchingToken(t *testing.T) {
	a := newTestAPI()
	result, err := a.JoinLobby(3, 4)
	require.NoError(t, err)
	joined := result.(lobby.Joined)

	_, err = a.PollLobbyAssignment("wrong-token", joined.IDInLobby)
	assert.Equal(t, ErrBadToken, err)

	_, err = a.PollLobbyAssignment(joined.Token, joined.IDInLobby)
	assert.Equal(t, ErrNotMatchedYet, err)
}

func TestPollLobbyAssignmentSucceedsAfterMatch(t *testing.T) {
	a := newTestAPI()
	first, _ := matchTwoPlayers(t, a)
	joined := first.(lobby.Joined)

	assignment, err := a.PollLobbyAssignment(joined.Token, joined.IDInLobby)
	require.NoError(t, err)
	assert.NotEmpty(t, assignment.GameID)
}

func TestGetPrivateViewAuthorizesGameToken(t *testing.T) {
	a := newTestAPI()
	_, direct := matchTwoPlayers(t, a)

	_, err := a.GetPrivateView("wrong", direct.GameID, direct.PlayerIDInGame)
	assert.Equal(t, ErrBadToken, err)

	view, err := a.GetPrivateView(direct.Token, direct.GameID, direct.PlayerIDInGame)
	require.NoError(t, err)
	assert.NotZero(t, view.MissingPart)
}

func TestGetPrivateViewRejectsTokenForWrongResource(t *testing.T) {
	a := newTestAPI()
	first, direct := matchTwoPlayers(t, a)
	joined := first.(lobby.Joined)

	// joined's token was upgraded to a game session for a different seat.
	_, err := a.GetPrivateView(joined.Token, direct.GameID, direct.PlayerIDInGame)
	assert.Equal(t, ErrTokenNotForThisResource, err)
}

// TestFirstJoinerCanPlayTheirOwnSeat closes the gap where only the
// player whose own Join call closed the match (JoinedGameDirectly) was
// ever exercised against GetPrivateView/SubmitAction: the other matched
// player only ever saw a lobby.Joined token from their own earlier Join
// call, and that token must still work once matchmaking seats them.
func TestFirstJoinerCanPlayTheirOwnSeat(t *testing.T) {
	a := newTestAPI()
	first, direct := matchTwoPlayers(t, a)
	joined := first.(lobby.Joined)

	firstSeat := 1 - direct.PlayerIDInGame

	view, err := a.GetPrivateView(joined.Token, direct.GameID, firstSeat)
	require.NoError(t, err)
	assert.NotZero(t, view.MissingPart)

	require.NoError(t, a.SubmitAction(joined.Token, direct.GameID, firstSeat, engine.Skip{}))
}

func TestSubmitActionAndGetPublicView(t *testing.T) {
	a := newTestAPI()
	first, direct := matchTwoPlayers(t, a)
	joined := first.(lobby.Joined)

	// the first joiner holds seat 0, which has the opening turn.
	firstSeat := 1 - direct.PlayerIDInGame
	err := a.SubmitAction(joined.Token, direct.GameID, firstSeat, engine.Skip{})
	require.NoError(t, err)

	desc, err := a.GetPublicView(direct.GameID)
	require.NoError(t, err)
	_, ok := desc.State.(engine.WaitingForPlayerAction)
	assert.True(t, ok)
}

func TestGetPublicViewNoSuchGame(t *testing.T) {
	a := newTestAPI()
	_, err := a.GetPublicView("nope")
	assert.Equal(t, ErrNoSuchGame, err)
}

func TestSubmitActionRecordsHistoryOnlyOnSuccess(t *testing.T) {
	a := newTestAPI()
	first, direct := matchTwoPlayers(t, a)
	joined := first.(lobby.Joined)

	// the first joiner holds seat 0, which has the opening turn.
	firstSeat := 1 - direct.PlayerIDInGame
	err := a.SubmitAction(joined.Token, direct.GameID, firstSeat, engine.Steal{FromPlayer: direct.PlayerIDInGame})
	require.Error(t, err)
	assert.Empty(t, a.History.Load(direct.GameID))

	require.NoError(t, a.SubmitAction(joined.Token, direct.GameID, firstSeat, engine.Skip{}))
	entries := a.History.Load(direct.GameID)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, firstSeat, entries[0].Actor)
		assert.IsType(t, engine.Skip{}, entries[0].Action)
	}
}

func TestSubmitActionRuleViolationReturnsActionError(t *testing.T) {
	a := newTestAPI()
	_, direct := matchTwoPlayers(t, a)

	otherPlayer := 1 - direct.PlayerIDInGame
	err := a.SubmitAction(direct.Token, direct.GameID, direct.PlayerIDInGame, engine.Steal{
		FromPlayer: otherPlayer,
	})
	require.Error(t, err)
	_, ok := err.(*engine.ActionError)
	assert.True(t, ok)
}
