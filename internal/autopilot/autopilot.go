// Package autopilot plays the spotlight controls for headless runs.
package autopilot

import (
	"github.com/ugaemi/spotlight-server/internal/game"
)

const (
	DefaultReserve   = 20.0
	DefaultMaxActive = 2
)

// Toggle is one spotlight switch.
type Toggle struct {
	Index int
	On    bool
}

// Pilot lights the spotlight holding the inmate closest to the exit while the
// battery is above Reserve percent, and switches off lights nobody stands in.
type Pilot struct {
	Reserve   float64
	MaxActive int
}

// New creates a Pilot with the default reserve and light cap.
func New() *Pilot {
	return &Pilot{Reserve: DefaultReserve, MaxActive: DefaultMaxActive}
}

// Decide returns the toggles to apply for snap. Switch-offs come first.
func (p *Pilot) Decide(snap game.Snapshot) []Toggle {
	var toggles []Toggle

	free := make([]game.InmateView, 0, len(snap.Inmates))
	for _, in := range snap.Inmates {
		if in.State != game.InmateCaptured {
			free = append(free, in)
		}
	}

	active := 0
	for _, l := range snap.Spotlights {
		if !l.Active {
			continue
		}
		if !anyInside(l, free) {
			toggles = append(toggles, Toggle{Index: l.Index, On: false})
			continue
		}
		active++
	}

	if snap.Battery <= p.Reserve || active >= p.MaxActive {
		return toggles
	}

	// Inmates nearest the exit first.
	best, bestX := -1, 0.0
	for _, in := range free {
		for _, l := range snap.Spotlights {
			if l.Active || game.Distance(l.Position, in.Position) > l.Radius {
				continue
			}
			if best < 0 || in.Position.X > bestX {
				best, bestX = l.Index, in.Position.X
			}
		}
	}
	if best >= 0 {
		toggles = append(toggles, Toggle{Index: best, On: true})
	}
	return toggles
}

// Drive decides on the current state of sim and applies the toggles. It
// returns how many were applied.
func (p *Pilot) Drive(sim *game.Simulation) int {
	applied := 0
	for _, t := range p.Decide(sim.Snapshot()) {
		if _, err := sim.ToggleSpotlight(t.Index, t.On); err == nil {
			applied++
		}
	}
	return applied
}

func anyInside(l game.SpotlightView, inmates []game.InmateView) bool {
	for _, in := range inmates {
		if game.Distance(l.Position, in.Position) <= l.Radius {
			return true
		}
	}
	return false
}
