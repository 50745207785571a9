package game

import "time"

// Behavior is the outcome of one arbitration. InmateID is set for the chase
// kinds and Remaining for spotlight attention.
type Behavior struct {
	Kind      BehaviorKind  `json:"kind"`
	Target    Vec2          `json:"target"`
	InmateID  string        `json:"inmate_id,omitempty"`
	Remaining time.Duration `json:"-"`
}

// Arbitrate picks a behavior by strict priority. It keeps no memory between
// ticks: the same perception always yields the same behavior.
//
//  1. capacity gate (return to drop-off)
//  2. vision chase
//  3. flashlight chase
//  4. spotlight attention
//  5. patrol
func Arbitrate(p Perception) Behavior {
	switch {
	case p.AtCapacity:
		return Behavior{Kind: BehaviorReturningToDropOff, Target: DropOffZone}
	case p.Vision != nil:
		return Behavior{Kind: BehaviorVisionChase, Target: p.Vision.Position, InmateID: p.Vision.InmateID}
	case p.Flashlight != nil:
		return Behavior{Kind: BehaviorFlashlightChase, Target: p.Flashlight.Position, InmateID: p.Flashlight.InmateID}
	case p.Notice != nil && p.Notice.Remaining > 0:
		return Behavior{Kind: BehaviorSpotlightAttention, Target: p.Notice.Position, Remaining: p.Notice.Remaining}
	default:
		return Behavior{Kind: BehaviorPatrol, Target: p.PatrolTarget}
	}
}

// IsChase reports whether the behavior follows an inmate.
func (b Behavior) IsChase() bool {
	return b.Kind == BehaviorVisionChase || b.Kind == BehaviorFlashlightChase
}
