package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenIsUniqueAndURLSafe(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")
}

func TestRegisterLobbySessionAndAuthorize(t *testing.T) {
	r := NewRegistry()
	token, err := r.RegisterLobbySession(3)
	require.NoError(t, err)

	assert.True(t, r.AuthorizeLobby(token, 3))
	assert.False(t, r.AuthorizeLobby(token, 4))
	assert.False(t, r.AuthorizeLobby("bogus", 3))
}

func TestUpgradeToGameSessionReusesToken(t *testing.T) {
	r := NewRegistry()
	token, err := r.RegisterLobbySession(1)
	require.NoError(t, err)

	require.NoError(t, r.UpgradeToGameSession(token, "game-1", 0))

	assert.True(t, r.AuthorizeLobby(token, 1), "poll authorization survives the upgrade, per spec §3's token reuse")
	assert.True(t, r.AuthorizeGame(token, "game-1", 0))
}

func TestUpgradeUnknownTokenFails(t *testing.T) {
	r := NewRegistry()
	err := r.UpgradeToGameSession("bogus", "game-1", 0)
	assert.Error(t, err)
}

func TestRegisterGameSessionDirect(t *testing.T) {
	r := NewRegistry()
	token, err := r.RegisterGameSession("game-2", 1)
	require.NoError(t, err)
	assert.True(t, r.AuthorizeGame(token, "game-2", 1))
	assert.False(t, r.AuthorizeGame(token, "game-2", 0))
	assert.False(t, r.AuthorizeLobby(token, 0), "a directly-minted game session has no originating lobby id")
}
