package game

// Spotlight is a stationary illumination zone.
type Spotlight struct {
	Position Vec2    `json:"position"`
	Radius   float64 `json:"radius"`
	Active   bool    `json:"active"`
}

// NewSpotlight creates an inactive spotlight at pos.
func NewSpotlight(pos Vec2, radius float64) *Spotlight {
	return &Spotlight{Position: pos, Radius: radius}
}

// SetActive switches the light. Turning on is refused while the battery is
// depleted. Returns true only when the light went from off to on.
func (s *Spotlight) SetActive(on, batteryDepleted bool) bool {
	if on && batteryDepleted {
		return false
	}
	turnedOn := on && !s.Active
	s.Active = on
	return turnedOn
}

// Contains checks if p is within the spotlight's radius.
func (s *Spotlight) Contains(p Vec2) bool {
	return Distance(s.Position, p) <= s.Radius
}

// Lit reports whether any active spotlight contains p.
func Lit(spotlights []*Spotlight, p Vec2) bool {
	for _, s := range spotlights {
		if s.Active && s.Contains(p) {
			return true
		}
	}
	return false
}

// ActiveCount returns the number of lights that are on.
func ActiveCount(spotlights []*Spotlight) int {
	n := 0
	for _, s := range spotlights {
		if s.Active {
			n++
		}
	}
	return n
}

// DefaultSpotlights returns the standard yard layout: two rows of four lights
// spread along the escape route.
func DefaultSpotlights() []*Spotlight {
	var lights []*Spotlight
	for _, y := range []float64{YardHeight * 0.3, YardHeight * 0.7} {
		for i := 0; i < 4; i++ {
			x := YardWidth * (0.2 + 0.2*float64(i))
			lights = append(lights, NewSpotlight(Vec2{X: x, Y: y}, SpotlightRadius))
		}
	}
	return lights
}
