package game

import "encoding/json"

type EventKind int

const (
	EventInmateCaughtByLight EventKind = iota
	EventInmateLostAtExit
	EventInmateCapturedByPoliceman
	EventInmatesDelivered
	EventSpotlightsForcedOff
	EventLevelUp
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventInmateCaughtByLight:
		return "inmate_caught_by_light"
	case EventInmateLostAtExit:
		return "inmate_lost_at_exit"
	case EventInmateCapturedByPoliceman:
		return "inmate_captured_by_policeman"
	case EventInmatesDelivered:
		return "inmates_delivered"
	case EventSpotlightsForcedOff:
		return "spotlights_forced_off"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes EventKind as a string.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Event is a discrete outcome of a tick. Score, Lives and Level carry the
// counters after the event was applied so a HUD can update from the event alone.
type Event struct {
	Kind        EventKind `json:"kind"`
	InmateID    string    `json:"inmate_id,omitempty"`
	PolicemanID string    `json:"policeman_id,omitempty"`
	Count       int       `json:"count,omitempty"`
	Position    Vec2      `json:"position"`
	Score       int       `json:"score"`
	Lives       int       `json:"lives"`
	Level       int       `json:"level"`
}
