package game

import "time"

// Candidate is a free (not captured) inmate as seen by a policeman.
type Candidate struct {
	ID       string
	Position Vec2
	Frozen   bool
}

// Sighting is the inmate picked out of a perception cone.
type Sighting struct {
	InmateID string
	Position Vec2
	Distance float64
}

// Notice is a pending spotlight notification routed to a policeman.
type Notice struct {
	Position  Vec2
	Remaining time.Duration
}

// Perception is everything a policeman knows when choosing a behavior.
// When AtCapacity is set the cones are not evaluated and Vision/Flashlight stay nil.
type Perception struct {
	AtCapacity   bool
	Vision       *Sighting
	Flashlight   *Sighting
	Notice       *Notice
	PatrolTarget Vec2
}

// NearestInCone returns the closest candidate inside the cone. With frozenOnly
// set, inmates that are not frozen are ignored.
func NearestInCone(origin Vec2, heading float64, candidates []Candidate, rng, width float64, frozenOnly bool) (Sighting, bool) {
	var best Sighting
	found := false
	for _, c := range candidates {
		if frozenOnly && !c.Frozen {
			continue
		}
		if !InCone(origin, heading, c.Position, rng, width) {
			continue
		}
		d := Distance(origin, c.Position)
		if !found || d < best.Distance {
			best = Sighting{InmateID: c.ID, Position: c.Position, Distance: d}
			found = true
		}
	}
	return best, found
}
