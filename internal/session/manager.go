package session

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/ugaemi/spotlight-server/internal/game"
	"github.com/ugaemi/spotlight-server/internal/result"
	"github.com/ugaemi/spotlight-server/internal/store"
	"github.com/ugaemi/spotlight-server/internal/ws"
)

const saveTimeout = 5 * time.Second

// Config controls how the manager builds sessions.
type Config struct {
	// TickInterval is the wall-clock and simulated step of every session.
	TickInterval time.Duration
	// Seed fixes the randomness of sessions. Zero seeds from the clock.
	Seed int64
	// Store receives finished results. Nil disables persistence.
	Store store.ResultStore
}

// Manager manages all active sessions.
type Manager struct {
	cfg      Config
	sessions map[string]*Session // code -> session
	byClient map[string]*Session // client ID -> session
	codes    *rand.Rand
	created  int64
	mu       sync.RWMutex
}

// NewManager creates a new session manager.
func NewManager(cfg Config) *Manager {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = game.TickInterval
	}
	codeSeed := cfg.Seed
	if codeSeed == 0 {
		codeSeed = time.Now().UnixNano()
	}
	return &Manager{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		byClient: make(map[string]*Session),
		codes:    rand.New(rand.NewSource(codeSeed)),
	}
}

// CreateSession creates a session for client and starts it. A client runs at
// most one session at a time.
func (m *Manager) CreateSession(nickname string, client *ws.Client) *Session {
	m.mu.Lock()

	code := GenerateCode(m.codes, func(c string) bool {
		_, ok := m.sessions[c]
		return ok
	})
	m.created++
	sim := game.NewSimulation(rand.New(rand.NewSource(m.seed())))
	s := NewSession(code, nickname, client, sim, m.cfg.TickInterval)
	s.OnFinish(m.handleFinish)

	m.sessions[code] = s
	m.byClient[client.ID] = s
	m.mu.Unlock()

	slog.Info("session created", "session", code, "client", client.ID)
	s.SendStarted()
	s.Start()
	return s
}

// seed returns the seed of the next session. Caller must hold m.mu.
func (m *Manager) seed() int64 {
	if m.cfg.Seed == 0 {
		return time.Now().UnixNano()
	}
	return m.cfg.Seed + m.created
}

// GetSession returns a session by its code.
func (m *Manager) GetSession(code string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[code]
}

// FindByClient finds the session controlled by a client.
func (m *Manager) FindByClient(clientID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byClient[clientID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// RemoveSession stops and forgets a session.
func (m *Manager) RemoveSession(code string, reason result.Reason) {
	m.mu.Lock()
	s, ok := m.sessions[code]
	if ok {
		m.forget(s)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	// The loop may be finishing and calling back into the manager, so the
	// lock must be released before waiting on it.
	s.Stop(reason)
	slog.Info("session removed", "session", code)
}

// SessionCount returns the number of active sessions.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Results returns the configured store, or nil.
func (m *Manager) Results() store.ResultStore {
	return m.cfg.Store
}

// handleFinish drops a finished session and saves its result.
func (m *Manager) handleFinish(s *Session, res *result.Result) {
	m.mu.Lock()
	if m.sessions[s.Code] == s {
		m.forget(s)
	}
	m.mu.Unlock()

	if m.cfg.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.cfg.Store.Save(ctx, res); err != nil {
		slog.Error("failed to save result", "session", s.Code, "error", err)
		return
	}
	slog.Debug("result saved", "session", s.Code, "result", res.ID)
}

// forget removes s from both indexes. Caller must hold m.mu.
func (m *Manager) forget(s *Session) {
	delete(m.sessions, s.Code)
	if m.byClient[s.client.ID] == s {
		delete(m.byClient, s.client.ID)
	}
}
