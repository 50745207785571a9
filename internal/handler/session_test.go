package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/spotlight-server/internal/result"
	"github.com/ugaemi/spotlight-server/internal/session"
	"github.com/ugaemi/spotlight-server/internal/ws"
)

// mockResultStore is an in-memory ResultStore for testing.
type mockResultStore struct {
	saved  []*result.Result
	topErr error
}

func (m *mockResultStore) Save(_ context.Context, res *result.Result) error {
	m.saved = append(m.saved, res)
	return nil
}

func (m *mockResultStore) Top(_ context.Context, limit int) ([]*result.Result, error) {
	if m.topErr != nil {
		return nil, m.topErr
	}
	if limit > len(m.saved) {
		limit = len(m.saved)
	}
	return m.saved[:limit], nil
}

func (m *mockResultStore) FindByID(_ context.Context, _ string) (*result.Result, error) {
	return nil, nil
}

func (m *mockResultStore) Close() error { return nil }

func setupRouter(st *mockResultStore) (*Router, *session.Manager, *ws.Client) {
	cfg := session.Config{TickInterval: time.Hour, Seed: 3}
	if st != nil {
		cfg.Store = st
	}
	sm := session.NewManager(cfg)
	client := &ws.Client{
		ID:   "test-client",
		Send: make(chan []byte, 256),
	}
	return NewRouter(sm), sm, client
}

func send(r *Router, client *ws.Client, msgType string, payload any) {
	data, _ := json.Marshal(payload)
	raw, _ := json.Marshal(ws.Message{Type: msgType, Data: data})
	r.HandleMessage(&ws.ClientMessage{Client: client, Data: raw})
}

func drain(client *ws.Client) []ws.Message {
	var msgs []ws.Message
	for {
		select {
		case data := <-client.Send:
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err == nil {
				msgs = append(msgs, msg)
			}
		default:
			return msgs
		}
	}
}

func lastOfType(msgs []ws.Message, msgType string) *ws.Message {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == msgType {
			return &msgs[i]
		}
	}
	return nil
}

func errorText(t *testing.T, msgs []ws.Message) string {
	t.Helper()
	m := lastOfType(msgs, ws.TypeError)
	require.NotNil(t, m, "expected an error message")
	var e ws.ErrorMessage
	require.NoError(t, json.Unmarshal(m.Data, &e))
	return e.Message
}

func TestHandleMessage_InvalidJSON(t *testing.T) {
	r, _, client := setupRouter(nil)
	r.HandleMessage(&ws.ClientMessage{Client: client, Data: []byte("{nope")})
	assert.Equal(t, "invalid message format", errorText(t, drain(client)))
}

func TestHandleMessage_UnknownType(t *testing.T) {
	r, _, client := setupRouter(nil)
	send(r, client, "dance", nil)
	assert.Equal(t, "unknown message type: dance", errorText(t, drain(client)))
}

func TestHandleStartSession(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		wantErr  string
	}{
		{"valid", "warden", ""},
		{"empty", "", "nickname is required"},
		{"too long", "abcdefghijklmnopq", "nickname is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, sm, client := setupRouter(nil)
			send(r, client, ws.TypeStartSession, startSessionRequest{Nickname: tt.nickname})
			msgs := drain(client)

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorText(t, msgs))
				assert.Equal(t, 0, sm.SessionCount())
				return
			}
			require.NotNil(t, lastOfType(msgs, ws.TypeSessionStarted))
			assert.Equal(t, 1, sm.SessionCount())
			r.HandleDisconnect(client)
		})
	}
}

func TestHandleStartSession_ReplacesRunningSession(t *testing.T) {
	r, sm, client := setupRouter(nil)
	send(r, client, ws.TypeStartSession, startSessionRequest{Nickname: "warden"})
	first, err := sm.FindByClient(client.ID)
	require.NoError(t, err)

	send(r, client, ws.TypeStartSession, startSessionRequest{Nickname: "warden"})
	second, err := sm.FindByClient(client.ID)
	require.NoError(t, err)
	defer r.HandleDisconnect(client)

	assert.NotSame(t, first, second)
	assert.True(t, first.Finished())
	assert.Equal(t, 1, sm.SessionCount())
}

func TestHandleToggleSpotlight(t *testing.T) {
	r, sm, client := setupRouter(nil)
	send(r, client, ws.TypeStartSession, startSessionRequest{Nickname: "warden"})
	defer r.HandleDisconnect(client)
	drain(client)

	send(r, client, ws.TypeToggleSpotlight, map[string]any{"index": 2, "on": true})
	ack := lastOfType(drain(client), ws.TypeToggleSpotlight)
	require.NotNil(t, ack)

	var resp toggleSpotlightResponse
	require.NoError(t, json.Unmarshal(ack.Data, &resp))
	assert.Equal(t, 2, resp.Index)
	assert.True(t, resp.On)
	assert.NotEmpty(t, resp.Notified, "a policeman should be notified when a light turns on")

	s, err := sm.FindByClient(client.ID)
	require.NoError(t, err)
	assert.True(t, s.Snapshot().Spotlights[2].Active)
}

func TestHandleToggleSpotlight_Errors(t *testing.T) {
	r, _, client := setupRouter(nil)

	send(r, client, ws.TypeToggleSpotlight, map[string]any{"index": 0, "on": true})
	assert.Equal(t, "no active session", errorText(t, drain(client)))

	send(r, client, ws.TypeStartSession, startSessionRequest{Nickname: "warden"})
	defer r.HandleDisconnect(client)
	drain(client)

	send(r, client, ws.TypeToggleSpotlight, map[string]any{"on": true})
	assert.Equal(t, "index is required", errorText(t, drain(client)))

	send(r, client, ws.TypeToggleSpotlight, map[string]any{"index": 42, "on": true})
	assert.Equal(t, "invalid spotlight index", errorText(t, drain(client)))
}

func TestHandlePauseResume(t *testing.T) {
	r, sm, client := setupRouter(nil)
	send(r, client, ws.TypeStartSession, startSessionRequest{Nickname: "warden"})
	defer r.HandleDisconnect(client)

	s, err := sm.FindByClient(client.ID)
	require.NoError(t, err)

	send(r, client, ws.TypePause, nil)
	assert.True(t, s.Snapshot().State.Paused)

	send(r, client, ws.TypeResume, nil)
	assert.False(t, s.Snapshot().State.Paused)
}

func TestHandleLeaveSession_SavesResult(t *testing.T) {
	st := &mockResultStore{}
	r, sm, client := setupRouter(st)
	send(r, client, ws.TypeStartSession, startSessionRequest{Nickname: "warden"})

	send(r, client, ws.TypeLeaveSession, nil)

	assert.Equal(t, 0, sm.SessionCount())
	require.Len(t, st.saved, 1)
	assert.Equal(t, "warden", st.saved[0].Nickname)
	assert.Equal(t, result.ReasonLeft, st.saved[0].Reason)
	assert.NotNil(t, lastOfType(drain(client), ws.TypeGameOver))
}

func TestHandleDisconnect_NoSession(t *testing.T) {
	r, sm, client := setupRouter(nil)
	r.HandleDisconnect(client)
	assert.Equal(t, 0, sm.SessionCount())
}

func TestHandleLeaderboard(t *testing.T) {
	st := &mockResultStore{saved: []*result.Result{
		{ID: "a", Nickname: "first", Score: 30},
		{ID: "b", Nickname: "second", Score: 20},
		{ID: "c", Nickname: "third", Score: 10},
	}}
	r, _, client := setupRouter(st)

	send(r, client, ws.TypeLeaderboard, leaderboardRequest{Limit: 2})
	m := lastOfType(drain(client), ws.TypeLeaderboard)
	require.NotNil(t, m)

	var resp leaderboardResponse
	require.NoError(t, json.Unmarshal(m.Data, &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "first", resp.Results[0].Nickname)
}

func TestHandleLeaderboard_Unavailable(t *testing.T) {
	r, _, client := setupRouter(nil)
	send(r, client, ws.TypeLeaderboard, nil)
	assert.Equal(t, "leaderboard unavailable", errorText(t, drain(client)))

	r, _, client = setupRouter(&mockResultStore{topErr: errors.New("db down")})
	send(r, client, ws.TypeLeaderboard, nil)
	assert.Equal(t, "leaderboard unavailable", errorText(t, drain(client)))
}
