package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Policeman patrols the yard, chases inmates it perceives and walks captured
// inmates to the drop-off zone.
type Policeman struct {
	ID       string
	Position Vec2
	Heading  float64
	Speed    float64

	// Captured holds the ids of inmates in custody, in follow order.
	Captured []string

	// Behavior mirrors the last arbitration. It is recomputed every tick.
	Behavior Behavior

	patrolTarget Vec2
	patrolTimer  Countdown
	attention    Countdown
	noticeAt     Vec2
}

// NewPoliceman creates a policeman at pos with a random patrol target.
func NewPoliceman(pos Vec2, rng *rand.Rand) *Policeman {
	p := &Policeman{
		ID:       uuid.New().String(),
		Position: pos,
		Speed:    PolicemanSpeed,
	}
	p.rerollPatrol(rng)
	p.Behavior = Behavior{Kind: BehaviorPatrol, Target: p.patrolTarget}
	return p
}

// AtCapacity reports whether the policeman must head to the drop-off zone.
func (p *Policeman) AtCapacity() bool {
	return len(p.Captured) >= MaxCapacity
}

// CaptureCount returns the number of inmates in custody.
func (p *Policeman) CaptureCount() int {
	return len(p.Captured)
}

// Holds reports whether the inmate with id is in this policeman's custody.
func (p *Policeman) Holds(id string) bool {
	for _, c := range p.Captured {
		if c == id {
			return true
		}
	}
	return false
}

// Notify hands the policeman a spotlight notification. It is dropped when the
// policeman is at capacity.
func (p *Policeman) Notify(pos Vec2) bool {
	if p.AtCapacity() {
		return false
	}
	p.noticeAt = pos
	p.attention.Reset(AttentionDuration)
	return true
}

// PatrolTarget returns the current patrol destination.
func (p *Policeman) PatrolTarget() Vec2 {
	return p.patrolTarget
}

// Perceive builds the perception for this tick. The capacity gate comes first,
// so a full policeman never looks for new targets.
func (p *Policeman) Perceive(candidates []Candidate) Perception {
	per := Perception{PatrolTarget: p.patrolTarget}
	if p.AtCapacity() {
		per.AtCapacity = true
		return per
	}

	if s, ok := NearestInCone(p.Position, p.Heading, candidates, VisionRange, VisionAngle, true); ok {
		per.Vision = &s
	} else if s, ok := NearestInCone(p.Position, p.Heading, candidates, FlashlightRange, FlashlightAngle, false); ok {
		per.Flashlight = &s
	}

	if !p.attention.Expired() {
		per.Notice = &Notice{Position: p.noticeAt, Remaining: p.attention.Remaining()}
	}
	return per
}

// Step runs one tick: timers, perception, arbitration and movement.
func (p *Policeman) Step(candidates []Candidate, dt time.Duration, rng *rand.Rand) Behavior {
	p.attention.Tick(dt)
	p.patrolTimer.Tick(dt)

	b := Arbitrate(p.Perceive(candidates))
	switch {
	case b.IsChase():
		// A notification that got promoted to a chase is spent.
		p.attention.Stop()
	case b.Kind == BehaviorReturningToDropOff:
		p.attention.Stop()
	}
	p.Behavior = b

	p.moveTowards(b.Target, p.Speed*b.Kind.SpeedMultiplier()*dt.Seconds())

	if b.Kind == BehaviorPatrol && (p.patrolTimer.Expired() || Distance(p.Position, p.patrolTarget) <= ArrivalThreshold) {
		p.rerollPatrol(rng)
	}
	return b
}

func (p *Policeman) moveTowards(target Vec2, maxDelta float64) {
	to := target.Sub(p.Position)
	if to.Len() > 0 {
		p.Heading = to.Angle()
	}
	p.Position = ClampPosition(MoveTowards(p.Position, target, maxDelta), PolicemanRadius)
}

// InCaptureRange checks whether the bodies of the policeman and the inmate touch.
func (p *Policeman) InCaptureRange(in *Inmate) bool {
	return Distance(p.Position, in.Position) < PolicemanRadius+InmateRadius
}

// TryCapture takes the inmate into custody if it is touching and there is room.
// The caller must only pass inmates nobody holds yet.
func (p *Policeman) TryCapture(in *Inmate) bool {
	if p.AtCapacity() || !p.InCaptureRange(in) {
		return false
	}
	p.Captured = append(p.Captured, in.ID)
	in.Unfreeze()

	if p.Behavior.InmateID == in.ID {
		if p.AtCapacity() {
			p.Behavior = Behavior{Kind: BehaviorReturningToDropOff, Target: DropOffZone}
		} else {
			p.Behavior = Behavior{Kind: BehaviorPatrol, Target: p.patrolTarget}
		}
	}
	return true
}

// LeadFollowers lines the captured inmates up behind the policeman, each one
// FollowDistance behind the previous link.
func (p *Policeman) LeadFollowers(lookup func(id string) *Inmate) {
	prev := p.Position
	back := Vec2{X: -math.Cos(p.Heading), Y: -math.Sin(p.Heading)}
	for _, id := range p.Captured {
		in := lookup(id)
		if in == nil {
			continue
		}
		dir := in.Position.Sub(prev)
		d := dir.Len()
		if d == 0 {
			dir, d = back, 1
		}
		in.Position = prev.Add(dir.Scale(FollowDistance / d))
		prev = in.Position
	}
}

// TryDropOff releases every captured inmate once a returning policeman reaches
// the drop-off zone. It returns the delivered inmate ids.
func (p *Policeman) TryDropOff() []string {
	if !p.AtCapacity() {
		return nil
	}
	if Distance(p.Position, DropOffZone) >= DropOffThreshold {
		return nil
	}
	delivered := p.Captured
	p.Captured = nil
	p.Behavior = Behavior{Kind: BehaviorPatrol, Target: p.patrolTarget}
	return delivered
}

func (p *Policeman) rerollPatrol(rng *rand.Rand) {
	p.patrolTarget = RandomPointIn(PatrolBounds, rng)
	span := PatrolIntervalMax - PatrolIntervalMin
	p.patrolTimer.Reset(PatrolIntervalMin + time.Duration(rng.Int63n(int64(span)+1)))
}
