package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/spotlight-server/internal/session"
	"github.com/ugaemi/spotlight-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	sessions *SessionHandler
}

// NewRouter creates a new message router.
func NewRouter(sm *session.Manager) *Router {
	return &Router{
		sessions: NewSessionHandler(sm),
	}
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Session control
	case ws.TypeStartSession:
		r.sessions.HandleStartSession(cm.Client, msg)
	case ws.TypeLeaveSession:
		r.sessions.HandleLeaveSession(cm.Client, msg)
	case ws.TypePause:
		r.sessions.HandlePause(cm.Client, msg)
	case ws.TypeResume:
		r.sessions.HandleResume(cm.Client, msg)

	// Gameplay
	case ws.TypeToggleSpotlight:
		r.sessions.HandleToggleSpotlight(cm.Client, msg)

	case ws.TypeLeaderboard:
		r.sessions.HandleLeaderboard(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.sessions.HandleDisconnect(client)
}
