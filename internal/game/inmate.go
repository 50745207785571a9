package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// wanderSwing bounds the vertical drift of a single wander leg.
const wanderSwing = 120.0

// Inmate is an escaping agent. Whether it is captured is decided by the
// policemen holding it, not by the inmate itself.
type Inmate struct {
	ID       string
	Position Vec2
	Target   Vec2

	frozen bool
	// frozenFor only grows while the inmate stays lit without interruption.
	frozenFor time.Duration
}

// NewInmate spawns an inmate at the entry point with a fresh wander target.
func NewInmate(rng *rand.Rand) *Inmate {
	in := &Inmate{
		ID:       uuid.New().String(),
		Position: Vec2{X: EntryX, Y: EntryY},
	}
	in.Target = nextWanderTarget(in.Position, rng)
	return in
}

// Update advances a free inmate by one tick. A lit inmate freezes in place and
// accumulates freeze time; an unlit one resets the accumulator and keeps walking.
func (in *Inmate) Update(lit bool, dt time.Duration, rng *rand.Rand) {
	if lit {
		in.frozen = true
		in.frozenFor += dt
		return
	}

	in.frozen = false
	in.frozenFor = 0

	in.Position = MoveTowards(in.Position, in.Target, InmateSpeed*dt.Seconds())
	if Distance(in.Position, in.Target) <= ArrivalThreshold {
		in.Target = nextWanderTarget(in.Position, rng)
	}
}

// Frozen reports whether a spotlight held the inmate on the last update.
func (in *Inmate) Frozen() bool {
	return in.frozen
}

// FrozenFor returns how long the inmate has been continuously frozen.
func (in *Inmate) FrozenFor() time.Duration {
	return in.frozenFor
}

// CanBeCaught reports whether the light has held the inmate long enough.
func (in *Inmate) CanBeCaught() bool {
	return in.frozen && in.frozenFor >= CatchFreezeDuration
}

// HasReachedExit reports whether the inmate got past the exit line.
func (in *Inmate) HasReachedExit() bool {
	return in.Position.X >= ExitX
}

// Unfreeze clears the freeze state, used when the inmate is taken into custody.
func (in *Inmate) Unfreeze() {
	in.frozen = false
	in.frozenFor = 0
}

// Opacity returns the display opacity for an inmate in the given state.
// It is for rendering only.
func Opacity(s InmateState) float64 {
	if s == InmateWandering {
		return OpacityDimmed
	}
	return OpacityLit
}

// nextWanderTarget picks the next leg of the escape, always moving toward the exit.
func nextWanderTarget(from Vec2, rng *rand.Rand) Vec2 {
	step := WanderStepMin + rng.Float64()*(WanderStepMax-WanderStepMin)
	swing := (rng.Float64()*2 - 1) * wanderSwing
	return Vec2{
		X: from.X + step,
		Y: clamp(from.Y+swing, InmateRadius, YardHeight-InmateRadius),
	}
}
