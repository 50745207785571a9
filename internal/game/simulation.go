package game

import (
	"errors"
	"math/rand"
	"time"
)

// ErrInvalidSpotlight is returned when a toggle names a spotlight that does not exist.
var ErrInvalidSpotlight = errors.New("invalid spotlight index")

// Simulation advances every agent once per tick in a fixed order and owns the
// match counters and the battery. It is not safe for concurrent use.
type Simulation struct {
	State      GameState
	Battery    *Battery
	Spotlights []*Spotlight
	Policemen  []*Policeman

	inmates []*Inmate
	byID    map[string]*Inmate

	router  *NotificationRouter
	spawner *Spawner
	rng     *rand.Rand

	ticks   int64
	elapsed time.Duration
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithSpotlights replaces the default spotlight layout.
func WithSpotlights(lights []*Spotlight) Option {
	return func(s *Simulation) { s.Spotlights = lights }
}

// WithPolicemen replaces the generated roster.
func WithPolicemen(roster []*Policeman) Option {
	return func(s *Simulation) { s.Policemen = roster }
}

// WithoutSpawning disables the entry spawner. Inmates can still be added with AddInmate.
func WithoutSpawning() Option {
	return func(s *Simulation) { s.spawner = nil }
}

// NewSimulation creates a session with a full battery, the default spotlight
// layout and DefaultPolicemanPool policemen. All randomness comes from rng.
func NewSimulation(rng *rand.Rand, opts ...Option) *Simulation {
	s := &Simulation{
		State:   NewGameState(),
		Battery: NewBattery(),
		byID:    make(map[string]*Inmate),
		spawner: NewSpawner(),
		rng:     rng,
	}
	s.Spotlights = DefaultSpotlights()
	for _, pos := range GenerateRosterPositions(DefaultPolicemanPool, rng) {
		s.Policemen = append(s.Policemen, NewPoliceman(pos, rng))
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = NewNotificationRouter(s.Policemen)
	return s
}

// AddInmate puts an inmate into the yard.
func (s *Simulation) AddInmate(in *Inmate) {
	s.inmates = append(s.inmates, in)
	s.byID[in.ID] = in
}

// Inmate returns the inmate with id, or nil once it has left the yard.
func (s *Simulation) Inmate(id string) *Inmate {
	return s.byID[id]
}

// Inmates returns the inmates currently in the yard, in spawn order.
func (s *Simulation) Inmates() []*Inmate {
	out := make([]*Inmate, len(s.inmates))
	copy(out, s.inmates)
	return out
}

// CaptorOf returns the id of the policeman holding the inmate, or "".
func (s *Simulation) CaptorOf(inmateID string) string {
	for _, p := range s.Policemen {
		if p.Holds(inmateID) {
			return p.ID
		}
	}
	return ""
}

// InmateState derives the state of an inmate from custody and freeze.
func (s *Simulation) InmateState(in *Inmate) InmateState {
	return inmateState(in, s.CaptorOf(in.ID) != "")
}

func inmateState(in *Inmate, held bool) InmateState {
	switch {
	case held:
		return InmateCaptured
	case in.Frozen():
		return InmateFrozen
	default:
		return InmateWandering
	}
}

// ToggleSpotlight switches the spotlight at index. Turning a light on while the
// battery is depleted is a no-op. When a light goes from off to on the nearest
// eligible policeman is notified; its id is returned.
func (s *Simulation) ToggleSpotlight(index int, on bool) (string, error) {
	if index < 0 || index >= len(s.Spotlights) {
		return "", ErrInvalidSpotlight
	}
	light := s.Spotlights[index]
	if !light.SetActive(on, s.Battery.IsDepleted()) {
		return "", nil
	}
	return s.router.NotifySpotlightActivated(light.Position), nil
}

// Pause stops ticks from advancing the match.
func (s *Simulation) Pause() {
	s.State.Paused = true
}

// Resume lets ticks advance the match again.
func (s *Simulation) Resume() {
	s.State.Paused = false
}

// Ticks returns the number of ticks that advanced the match.
func (s *Simulation) Ticks() int64 {
	return s.ticks
}

// Elapsed returns the simulated match time.
func (s *Simulation) Elapsed() time.Duration {
	return s.elapsed
}

// Tick advances the match by dt and returns what happened. Paused or finished
// matches do not change.
func (s *Simulation) Tick(dt time.Duration) []Event {
	if !s.State.Playing || s.State.Paused {
		return nil
	}
	s.ticks++
	s.elapsed += dt

	var events []Event

	// Battery first, so an empty battery cannot leave anyone frozen this tick.
	s.Battery.Update(ActiveCount(s.Spotlights), s.State.Delivered, dt)
	if s.Battery.IsDepleted() {
		forced := 0
		for _, l := range s.Spotlights {
			if l.Active {
				l.Active = false
				forced++
			}
		}
		if forced > 0 {
			events = append(events, s.event(Event{Kind: EventSpotlightsForcedOff, Count: forced}))
		}
	}

	if s.spawner != nil && s.spawner.Tick(dt) {
		s.AddInmate(NewInmate(s.rng))
	}

	held := s.heldSet()

	for _, in := range s.Inmates() {
		if held[in.ID] {
			continue
		}
		in.Update(Lit(s.Spotlights, in.Position), dt, s.rng)
		switch {
		case in.HasReachedExit():
			s.removeInmate(in.ID)
			s.State.Lives--
			s.State.Lost++
			events = append(events, s.event(Event{Kind: EventInmateLostAtExit, InmateID: in.ID, Position: in.Position}))
		case in.CanBeCaught():
			s.removeInmate(in.ID)
			s.State.Score += ScorePerLightCatch
			s.State.Caught++
			events = append(events, s.event(Event{Kind: EventInmateCaughtByLight, InmateID: in.ID, Position: in.Position}))
		}
	}

	for _, p := range s.Policemen {
		p.Step(s.candidates(held), dt, s.rng)

		for _, in := range s.inmates {
			if held[in.ID] {
				continue
			}
			if p.TryCapture(in) {
				held[in.ID] = true
				events = append(events, s.event(Event{
					Kind:        EventInmateCapturedByPoliceman,
					InmateID:    in.ID,
					PolicemanID: p.ID,
					Position:    in.Position,
				}))
			}
		}

		p.LeadFollowers(s.Inmate)

		if delivered := p.TryDropOff(); len(delivered) > 0 {
			for _, id := range delivered {
				s.removeInmate(id)
				delete(held, id)
			}
			s.State.Delivered += len(delivered)
			s.State.Score += len(delivered) * ScorePerDelivery
			events = append(events, s.event(Event{
				Kind:        EventInmatesDelivered,
				PolicemanID: p.ID,
				Count:       len(delivered),
				Position:    p.Position,
			}))
		}
	}

	if lvl := LevelForScore(s.State.Score); lvl > s.State.Level {
		s.State.Level = lvl
		events = append(events, s.event(Event{Kind: EventLevelUp}))
	}

	if s.State.Lives <= 0 {
		s.State.Lives = 0
		s.State.Playing = false
		events = append(events, s.event(Event{Kind: EventGameOver}))
	}

	return events
}

// event stamps e with the current counters.
func (s *Simulation) event(e Event) Event {
	e.Score = s.State.Score
	e.Lives = s.State.Lives
	e.Level = s.State.Level
	return e
}

func (s *Simulation) heldSet() map[string]bool {
	held := make(map[string]bool)
	for _, p := range s.Policemen {
		for _, id := range p.Captured {
			held[id] = true
		}
	}
	return held
}

// candidates lists the inmates nobody holds, as policemen perceive them.
func (s *Simulation) candidates(held map[string]bool) []Candidate {
	out := make([]Candidate, 0, len(s.inmates))
	for _, in := range s.inmates {
		if held[in.ID] {
			continue
		}
		out = append(out, Candidate{ID: in.ID, Position: in.Position, Frozen: in.Frozen()})
	}
	return out
}

func (s *Simulation) removeInmate(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, in := range s.inmates {
		if in.ID == id {
			s.inmates = append(s.inmates[:i], s.inmates[i+1:]...)
			return
		}
	}
}
