package transport

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/lazharichir/missingparts/api"
	"github.com/lazharichir/missingparts/lobby"
	"github.com/lazharichir/missingparts/session"
	"github.com/lazharichir/missingparts/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	s := store.New()
	sessions := session.NewRegistry()
	l := lobby.New(rand.New(rand.NewSource(5)), lobby.DefaultConfig(), s, sessions)
	return NewServer(api.New(l, s, sessions))
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestJoinLobbyThenPollReturnsNotMatched(t *testing.T) {
	srv := newTestServer()

	rec := doJSON(t, srv, http.MethodPost, "/lobby", "", joinLobbyRequest{MinSize: 3, MaxSize: 4})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp joinLobbyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Matched)

	poll := doJSON(t, srv, http.MethodGet, "/lobby/players/"+itoa(resp.IDInLobby)+"/game", resp.Token, nil)
	assert.Equal(t, http.StatusNotFound, poll.Code)
}

func TestJoinLobbyMatchesDirectlyAndDescribesGame(t *testing.T) {
	srv := newTestServer()

	first := doJSON(t, srv, http.MethodPost, "/lobby", "", joinLobbyRequest{MinSize: 2, MaxSize: 2})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, srv, http.MethodPost, "/lobby", "", joinLobbyRequest{MinSize: 2, MaxSize: 2})
	require.Equal(t, http.StatusCreated, second.Code)

	var resp joinLobbyResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	require.True(t, resp.Matched)

	desc := doJSON(t, srv, http.MethodGet, "/games/"+resp.GameID, "", nil)
	assert.Equal(t, http.StatusOK, desc.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(desc.Body.Bytes(), &body))
	players, _ := body["players"].([]any)
	assert.Len(t, players, 2)
}

func TestSubmitActionRejectsBadToken(t *testing.T) {
	srv := newTestServer()
	doJSON(t, srv, http.MethodPost, "/lobby", "", joinLobbyRequest{MinSize: 2, MaxSize: 2})
	second := doJSON(t, srv, http.MethodPost, "/lobby", "", joinLobbyRequest{MinSize: 2, MaxSize: 2})

	var resp joinLobbyResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))

	rec := doJSON(t, srv, http.MethodPost,
		"/games/"+resp.GameID+"/players/"+itoa(resp.PlayerID)+"/moves",
		"not-a-real-token", json.RawMessage(`"Skip"`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitActionAppliesSkip(t *testing.T) {
	srv := newTestServer()
	first := doJSON(t, srv, http.MethodPost, "/lobby", "", joinLobbyRequest{MinSize: 2, MaxSize: 2})
	second := doJSON(t, srv, http.MethodPost, "/lobby", "", joinLobbyRequest{MinSize: 2, MaxSize: 2})

	var firstResp, resp joinLobbyResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))

	// the first joiner holds seat 0, which has the opening turn.
	rec := doJSON(t, srv, http.MethodPost,
		"/games/"+resp.GameID+"/players/"+itoa(1-resp.PlayerID)+"/moves",
		firstResp.Token, json.RawMessage(`"Skip"`))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
