package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, func() string { return "tok" })
}

func TestClient_CurrentRoom404IsAbsence(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rooms/user", r.URL.Path)
		http.Error(w, "no room", http.StatusNotFound)
	})

	room, err := api.CurrentRoom(context.Background())
	require.NoError(t, err, "404 on the current-room lookup is a valid empty result")
	assert.Nil(t, room)
}

func TestClient_CurrentRoomFound(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Room{JoinCode: "ab12cd", Name: "besties"})
	})

	room, err := api.CurrentRoom(context.Background())
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "ab12cd", room.JoinCode)
}

func TestClient_UnauthorizedMapsToSentinel(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := api.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestClient_ServerErrorCarriesStatusAndMessage(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "name_taken", "message": "room name already exists"})
	})

	_, err := api.CreateRoom(context.Background(), "besties")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "room name already exists", apiErr.Message)
}

func TestClient_NonJSONSuccessBodyIsError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>proxy error page</html>"))
	})

	_, err := api.Me(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Contains(t, apiErr.Message, "proxy error page")
}

func TestClient_SendsBearerTokenAndJSONBody(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req createRoomRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "besties", req.Name)

		_ = json.NewEncoder(w).Encode(Room{JoinCode: "ab12cd", Name: req.Name})
	})

	room, err := api.CreateRoom(context.Background(), "besties")
	require.NoError(t, err)
	assert.Equal(t, "ab12cd", room.JoinCode)
}

func TestClient_Login(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		var req credentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice", req.Username)
		_ = json.NewEncoder(w).Encode(loginResponse{AccessToken: "new-token"})
	})

	token, err := api.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
}

func TestClient_ShareFactPath(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shared-facts/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, api.ShareFact(context.Background(), 9))
}
