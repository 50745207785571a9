package result

import (
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/spotlight-server/internal/game"
)

// Reason records why a session ended.
type Reason string

const (
	ReasonGameOver Reason = "game_over"
	ReasonLeft     Reason = "left"
)

// Result is the outcome of one finished session. Only the outcome is kept,
// never the simulation state.
type Result struct {
	ID            string        `json:"id"`
	Nickname      string        `json:"nickname"`
	SessionCode   string        `json:"session_code"`
	Score         int           `json:"score"`
	Level         int           `json:"level"`
	Delivered     int           `json:"delivered"`
	CaughtByLight int           `json:"caught_by_light"`
	Lost          int           `json:"lost"`
	Reason        Reason        `json:"reason"`
	Duration      time.Duration `json:"-"`
	FinishedAt    time.Time     `json:"finished_at"`
}

// FromState builds a Result from the final counters of a match.
func FromState(nickname, code string, state game.GameState, elapsed time.Duration, reason Reason) *Result {
	return &Result{
		ID:            uuid.New().String(),
		Nickname:      nickname,
		SessionCode:   code,
		Score:         state.Score,
		Level:         state.Level,
		Delivered:     state.Delivered,
		CaughtByLight: state.Caught,
		Lost:          state.Lost,
		Reason:        reason,
		Duration:      elapsed,
		FinishedAt:    time.Now(),
	}
}
