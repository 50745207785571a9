package game

import "encoding/json"

type InmateState int

const (
	InmateWandering InmateState = iota
	InmateFrozen
	InmateCaptured
)

func (s InmateState) String() string {
	switch s {
	case InmateWandering:
		return "wandering"
	case InmateFrozen:
		return "frozen"
	case InmateCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes InmateState as a string.
func (s InmateState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type BehaviorKind int

const (
	BehaviorPatrol BehaviorKind = iota
	BehaviorVisionChase
	BehaviorFlashlightChase
	BehaviorSpotlightAttention
	BehaviorReturningToDropOff
)

func (k BehaviorKind) String() string {
	switch k {
	case BehaviorPatrol:
		return "patrol"
	case BehaviorVisionChase:
		return "vision_chase"
	case BehaviorFlashlightChase:
		return "flashlight_chase"
	case BehaviorSpotlightAttention:
		return "spotlight_attention"
	case BehaviorReturningToDropOff:
		return "returning_to_drop_off"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes BehaviorKind as a string.
func (k BehaviorKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// SpeedMultiplier returns the factor applied to base speed for this behavior.
func (k BehaviorKind) SpeedMultiplier() float64 {
	switch k {
	case BehaviorVisionChase:
		return VisionChaseSpeed
	case BehaviorFlashlightChase:
		return FlashlightChaseSpeed
	case BehaviorSpotlightAttention:
		return AttentionSpeed
	case BehaviorReturningToDropOff:
		return ReturnToDropOffSpeed
	default:
		return PatrolSpeed
	}
}

// GameState holds the aggregate counters of a match.
type GameState struct {
	Score     int  `json:"score"`
	Lives     int  `json:"lives"`
	Level     int  `json:"level"`
	Delivered int  `json:"delivered"`
	Caught    int  `json:"caught_by_light"`
	Lost      int  `json:"lost"`
	Playing   bool `json:"is_playing"`
	Paused    bool `json:"is_paused"`
}

// NewGameState returns the state at the start of a match.
func NewGameState() GameState {
	return GameState{
		Lives:   StartingLives,
		Level:   1,
		Playing: true,
	}
}

// LevelForScore returns the level reached at the given score.
func LevelForScore(score int) int {
	return 1 + score/LevelScoreStep
}
