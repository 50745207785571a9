package game

// Snapshot is a read-only copy of the whole yard, enough to redraw the scene.
type Snapshot struct {
	Tick       int64           `json:"tick"`
	Elapsed    float64         `json:"elapsed"`
	State      GameState       `json:"state"`
	Battery    float64         `json:"battery"`
	Spotlights []SpotlightView `json:"spotlights"`
	Inmates    []InmateView    `json:"inmates"`
	Policemen  []PolicemanView `json:"policemen"`
	DropOff    Vec2            `json:"drop_off"`
}

type SpotlightView struct {
	Index    int     `json:"index"`
	Position Vec2    `json:"position"`
	Radius   float64 `json:"radius"`
	Active   bool    `json:"active"`
}

type InmateView struct {
	ID        string      `json:"id"`
	Position  Vec2        `json:"position"`
	State     InmateState `json:"state"`
	Opacity   float64     `json:"opacity"`
	FrozenFor float64     `json:"frozen_for"`
}

type PolicemanView struct {
	ID       string       `json:"id"`
	Position Vec2         `json:"position"`
	Heading  float64      `json:"heading"`
	Behavior BehaviorKind `json:"behavior"`
	Target   Vec2         `json:"target"`
	Captured int          `json:"captured"`
}

// Snapshot copies the current state. It does not mutate the simulation.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       s.ticks,
		Elapsed:    s.elapsed.Seconds(),
		State:      s.State,
		Battery:    s.Battery.Percentage(),
		Spotlights: make([]SpotlightView, 0, len(s.Spotlights)),
		Inmates:    make([]InmateView, 0, len(s.inmates)),
		Policemen:  make([]PolicemanView, 0, len(s.Policemen)),
		DropOff:    DropOffZone,
	}
	for i, l := range s.Spotlights {
		snap.Spotlights = append(snap.Spotlights, SpotlightView{
			Index:    i,
			Position: l.Position,
			Radius:   l.Radius,
			Active:   l.Active,
		})
	}
	held := s.heldSet()
	for _, in := range s.inmates {
		state := inmateState(in, held[in.ID])
		snap.Inmates = append(snap.Inmates, InmateView{
			ID:        in.ID,
			Position:  in.Position,
			State:     state,
			Opacity:   Opacity(state),
			FrozenFor: in.FrozenFor().Seconds(),
		})
	}
	for _, p := range s.Policemen {
		snap.Policemen = append(snap.Policemen, PolicemanView{
			ID:       p.ID,
			Position: p.Position,
			Heading:  p.Heading,
			Behavior: p.Behavior.Kind,
			Target:   p.Behavior.Target,
			Captured: p.CaptureCount(),
		})
	}
	return snap
}
