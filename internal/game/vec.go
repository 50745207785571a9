package game

import "math"

// Vec2 is a position or direction on the yard.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Y) }

// Angle returns the direction of a in radians.
func (a Vec2) Angle() float64 { return math.Atan2(a.Y, a.X) }

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// MoveTowards moves current toward target by at most maxDelta, never overshooting.
func MoveTowards(current, target Vec2, maxDelta float64) Vec2 {
	toTarget := target.Sub(current)
	d := toTarget.Len()
	if d <= maxDelta || d == 0 {
		return target
	}
	return current.Add(toTarget.Scale(maxDelta / d))
}

// NormalizeAngle wraps an angle into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// InCone reports whether point lies within rng of origin and within half of the
// cone width on either side of heading.
func InCone(origin Vec2, heading float64, point Vec2, rng, width float64) bool {
	d := Distance(origin, point)
	if d > rng {
		return false
	}
	if d == 0 {
		return true
	}
	off := NormalizeAngle(point.Sub(origin).Angle() - heading)
	return math.Abs(off) <= width/2
}

// Rect is an axis-aligned region.
type Rect struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClampPosition clamps a position within the yard, accounting for body radius.
func ClampPosition(p Vec2, radius float64) Vec2 {
	p.X = clamp(p.X, radius, YardWidth-radius)
	p.Y = clamp(p.Y, radius, YardHeight-radius)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
