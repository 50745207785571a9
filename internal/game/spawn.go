package game

import (
	"math/rand"
	"time"
)

// MinRosterDistance is the minimum distance between policemen at session start.
const MinRosterDistance = 150.0

// RandomPointIn returns a uniformly random point inside r.
func RandomPointIn(r Rect, rng *rand.Rand) Vec2 {
	return Vec2{
		X: r.Min.X + rng.Float64()*(r.Max.X-r.Min.X),
		Y: r.Min.Y + rng.Float64()*(r.Max.Y-r.Min.Y),
	}
}

// GenerateRosterPositions picks n starting positions inside the patrol bounds,
// keeping MinRosterDistance between them where possible.
func GenerateRosterPositions(n int, rng *rand.Rand) []Vec2 {
	placed := make([]Vec2, 0, n)
	for i := 0; i < n; i++ {
		placed = append(placed, generatePosition(PatrolBounds, placed, rng))
	}
	return placed
}

// generatePosition finds a random position within bounds that respects
// MinRosterDistance from all existing positions. Falls back to a random
// position after maxAttempts.
func generatePosition(bounds Rect, existing []Vec2, rng *rand.Rand) Vec2 {
	const maxAttempts = 100
	for i := 0; i < maxAttempts; i++ {
		p := RandomPointIn(bounds, rng)
		if isFarEnough(p, existing) {
			return p
		}
	}
	return RandomPointIn(bounds, rng)
}

// isFarEnough checks if p is at least MinRosterDistance from all existing positions.
func isFarEnough(p Vec2, existing []Vec2) bool {
	for _, e := range existing {
		if Distance(p, e) < MinRosterDistance {
			return false
		}
	}
	return true
}

// Spawner releases inmates at the entry point. The interval between spawns
// shrinks after every spawn until it reaches MinSpawnInterval.
type Spawner struct {
	interval time.Duration
	timer    Countdown
}

// NewSpawner returns a spawner whose first inmate appears after one full interval.
func NewSpawner() *Spawner {
	return &Spawner{
		interval: InitialSpawnInterval,
		timer:    NewCountdown(InitialSpawnInterval),
	}
}

// Tick advances the spawn timer and reports whether an inmate is due.
func (s *Spawner) Tick(dt time.Duration) bool {
	s.timer.Tick(dt)
	if !s.timer.Expired() {
		return false
	}
	s.interval = time.Duration(float64(s.interval) * SpawnDecay)
	if s.interval < MinSpawnInterval {
		s.interval = MinSpawnInterval
	}
	s.timer.Reset(s.interval)
	return true
}

// Interval returns the current time between spawns.
func (s *Spawner) Interval() time.Duration {
	return s.interval
}
