package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ugaemi/spotlight-server/internal/game"
	"github.com/ugaemi/spotlight-server/internal/result"
	"github.com/ugaemi/spotlight-server/internal/session"
	"github.com/ugaemi/spotlight-server/internal/ws"
)

const (
	maxNicknameLength  = 16
	defaultLeaderboard = 10
	leaderboardTimeout = 3 * time.Second
)

// SessionHandler handles session and gameplay messages.
type SessionHandler struct {
	sm *session.Manager
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sm *session.Manager) *SessionHandler {
	return &SessionHandler{sm: sm}
}

type startSessionRequest struct {
	Nickname string `json:"nickname"`
}

// HandleStartSession starts a new session. A running session of the same
// client is ended first.
func (h *SessionHandler) HandleStartSession(client *ws.Client, msg ws.Message) {
	var req startSessionRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Nickname == "" {
		client.SendMessage(ws.NewErrorMessage("nickname is required"))
		return
	}
	if len([]rune(req.Nickname)) > maxNicknameLength {
		client.SendMessage(ws.NewErrorMessage("nickname is too long"))
		return
	}

	if s, err := h.sm.FindByClient(client.ID); err == nil {
		h.sm.RemoveSession(s.Code, result.ReasonLeft)
	}

	s := h.sm.CreateSession(req.Nickname, client)
	slog.Info("client started session", "client", client.ID, "nickname", req.Nickname, "session", s.Code)
}

type toggleSpotlightRequest struct {
	Index *int `json:"index"`
	On    bool `json:"on"`
}

type toggleSpotlightResponse struct {
	Index    int    `json:"index"`
	On       bool   `json:"on"`
	Notified string `json:"notified,omitempty"`
}

// HandleToggleSpotlight switches a spotlight on or off.
func (h *SessionHandler) HandleToggleSpotlight(client *ws.Client, msg ws.Message) {
	var req toggleSpotlightRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Index == nil {
		client.SendMessage(ws.NewErrorMessage("index is required"))
		return
	}

	s, ok := h.session(client)
	if !ok {
		return
	}

	notified, err := s.ToggleSpotlight(*req.Index, req.On)
	switch {
	case errors.Is(err, game.ErrInvalidSpotlight):
		client.SendMessage(ws.NewErrorMessage("invalid spotlight index"))
		return
	case errors.Is(err, session.ErrSessionFinished):
		client.SendMessage(ws.NewErrorMessage("session is over"))
		return
	case err != nil:
		slog.Error("toggle failed", "session", s.Code, "error", err)
		client.SendMessage(ws.NewErrorMessage("toggle failed"))
		return
	}

	resp, _ := ws.NewMessage(ws.TypeToggleSpotlight, toggleSpotlightResponse{
		Index:    *req.Index,
		On:       req.On,
		Notified: notified,
	})
	client.SendMessage(resp)
}

// HandlePause pauses the client's session.
func (h *SessionHandler) HandlePause(client *ws.Client, _ ws.Message) {
	if s, ok := h.session(client); ok {
		s.Pause()
		slog.Debug("session paused", "session", s.Code)
	}
}

// HandleResume resumes the client's session.
func (h *SessionHandler) HandleResume(client *ws.Client, _ ws.Message) {
	if s, ok := h.session(client); ok {
		s.Resume()
		slog.Debug("session resumed", "session", s.Code)
	}
}

// HandleLeaveSession ends the client's session.
func (h *SessionHandler) HandleLeaveSession(client *ws.Client, _ ws.Message) {
	s, ok := h.session(client)
	if !ok {
		return
	}
	h.sm.RemoveSession(s.Code, result.ReasonLeft)
	slog.Info("client left session", "client", client.ID, "session", s.Code)
}

type leaderboardRequest struct {
	Limit int `json:"limit"`
}

type leaderboardResponse struct {
	Results []*result.Result `json:"results"`
}

// HandleLeaderboard returns the best stored results.
func (h *SessionHandler) HandleLeaderboard(client *ws.Client, msg ws.Message) {
	results := h.sm.Results()
	if results == nil {
		client.SendMessage(ws.NewErrorMessage("leaderboard unavailable"))
		return
	}

	req := leaderboardRequest{Limit: defaultLeaderboard}
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid leaderboard request"))
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), leaderboardTimeout)
	defer cancel()

	top, err := results.Top(ctx, req.Limit)
	if err != nil {
		slog.Error("failed to load leaderboard", "error", err)
		client.SendMessage(ws.NewErrorMessage("leaderboard unavailable"))
		return
	}
	if top == nil {
		top = []*result.Result{}
	}

	resp, _ := ws.NewMessage(ws.TypeLeaderboard, leaderboardResponse{Results: top})
	client.SendMessage(resp)
}

// HandleDisconnect ends the session of a disconnected client.
func (h *SessionHandler) HandleDisconnect(client *ws.Client) {
	s, err := h.sm.FindByClient(client.ID)
	if err != nil {
		return
	}
	h.sm.RemoveSession(s.Code, result.ReasonLeft)
	slog.Info("client disconnected from session", "client", client.ID, "session", s.Code)
}

func (h *SessionHandler) session(client *ws.Client) (*session.Session, bool) {
	s, err := h.sm.FindByClient(client.ID)
	if err != nil {
		client.SendMessage(ws.NewErrorMessage("no active session"))
		return nil, false
	}
	return s, true
}
