package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ugaemi/spotlight-server/internal/game"
	"github.com/ugaemi/spotlight-server/internal/result"
	"github.com/ugaemi/spotlight-server/internal/ws"
)

// ErrSessionNotFound is returned when a client has no running session.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionFinished is returned when a finished session receives input.
var ErrSessionFinished = errors.New("session finished")

// Session runs one simulation for one controlling client.
type Session struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`

	client   *ws.Client
	sim      *game.Simulation
	interval time.Duration

	// onFinish is called once with the final result.
	onFinish func(s *Session, res *result.Result)

	// Loop control
	stopCh     chan struct{}
	done       chan struct{}
	started    bool
	stopOnce   sync.Once
	finishOnce sync.Once
	finished   bool

	mu sync.Mutex
}

// NewSession creates a session around sim. interval is both the wall-clock
// tick period and the simulated step.
func NewSession(code, nickname string, client *ws.Client, sim *game.Simulation, interval time.Duration) *Session {
	if interval <= 0 {
		interval = game.TickInterval
	}
	return &Session{
		Code:     code,
		Nickname: nickname,
		client:   client,
		sim:      sim,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Client returns the controlling client.
func (s *Session) Client() *ws.Client {
	return s.client
}

// OnFinish registers the callback run once when the session ends.
// Must be called before Start.
func (s *Session) OnFinish(fn func(s *Session, res *result.Result)) {
	s.onFinish = fn
}

// Start launches the tick loop.
func (s *Session) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	slog.Info("session started", "session", s.Code, "nickname", s.Nickname)
	go s.loop()
}

// Stop ends the session early. It waits for the loop to exit so no message
// is sent to the client afterwards.
func (s *Session) Stop(reason result.Reason) {
	s.stopOnce.Do(func() { close(s.stopCh) })

	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.done
	}
	s.finish(reason)
}

// ToggleSpotlight switches a spotlight between ticks. It returns the id of
// the notified policeman, or "" when nobody was notified.
func (s *Session) ToggleSpotlight(index int, on bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished || !s.sim.State.Playing {
		return "", ErrSessionFinished
	}
	return s.sim.ToggleSpotlight(index, on)
}

// Pause freezes the match clock.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.Pause()
}

// Resume restarts the match clock.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.Resume()
}

// Snapshot returns a copy of the current yard.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Snapshot()
}

// Finished reports whether the session has ended.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

type sessionStartedMessage struct {
	Code     string        `json:"code"`
	Nickname string        `json:"nickname"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type gameOverMessage struct {
	Reason result.Reason  `json:"reason"`
	Result *result.Result `json:"result"`
}

// SendStarted tells the client the session exists and what the yard looks like.
func (s *Session) SendStarted() {
	msg, err := ws.NewMessage(ws.TypeSessionStarted, sessionStartedMessage{
		Code:     s.Code,
		Nickname: s.Nickname,
		Snapshot: s.Snapshot(),
	})
	if err != nil {
		slog.Error("failed to build session_started", "session", s.Code, "error", err)
		return
	}
	s.client.SendMessage(msg)
}

// loop runs the tick loop at the session interval.
func (s *Session) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if over := s.step(); over {
				s.finish(result.ReasonGameOver)
				return
			}
		}
	}
}

// step advances the simulation once and sends the outcome. It reports
// whether the match is over.
func (s *Session) step() bool {
	s.mu.Lock()
	events := s.sim.Tick(s.interval)
	snap := s.sim.Snapshot()
	over := !s.sim.State.Playing
	s.mu.Unlock()

	for _, e := range events {
		if e.Kind == game.EventLevelUp {
			slog.Info("level up", "session", s.Code, "level", e.Level)
		}
		msg, err := ws.NewMessage(ws.TypeEvent, e)
		if err != nil {
			slog.Error("failed to build event", "session", s.Code, "error", err)
			continue
		}
		s.client.SendMessage(msg)
	}

	msg, err := ws.NewMessage(ws.TypeSnapshot, snap)
	if err != nil {
		slog.Error("failed to build snapshot", "session", s.Code, "error", err)
		return over
	}
	s.client.SendMessage(msg)
	return over
}

// finish sends game_over and hands the result to onFinish, once.
func (s *Session) finish(reason result.Reason) {
	s.finishOnce.Do(func() {
		s.mu.Lock()
		s.finished = true
		res := result.FromState(s.Nickname, s.Code, s.sim.State, s.sim.Elapsed(), reason)
		s.mu.Unlock()

		msg, err := ws.NewMessage(ws.TypeGameOver, gameOverMessage{Reason: reason, Result: res})
		if err == nil {
			s.client.SendMessage(msg)
		}

		slog.Info("session ended", "session", s.Code, "reason", reason, "score", res.Score, "level", res.Level)

		if s.onFinish != nil {
			s.onFinish(s, res)
		}
	})
}
