package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec2
		expected float64
	}{
		{"same point", Vec2{0, 0}, Vec2{0, 0}, 0},
		{"horizontal", Vec2{0, 0}, Vec2{3, 0}, 3},
		{"vertical", Vec2{0, 0}, Vec2{0, 4}, 4},
		{"diagonal 3-4-5", Vec2{0, 0}, Vec2{3, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.a, tt.b), 0.001)
		})
	}
}

func TestMoveTowards(t *testing.T) {
	t.Run("partial step", func(t *testing.T) {
		got := MoveTowards(Vec2{0, 0}, Vec2{10, 0}, 4)
		assert.InDelta(t, 4.0, got.X, 0.001)
		assert.InDelta(t, 0.0, got.Y, 0.001)
	})

	t.Run("does not overshoot", func(t *testing.T) {
		got := MoveTowards(Vec2{0, 0}, Vec2{3, 4}, 10)
		assert.Equal(t, Vec2{3, 4}, got)
	})

	t.Run("already there", func(t *testing.T) {
		got := MoveTowards(Vec2{5, 5}, Vec2{5, 5}, 1)
		assert.Equal(t, Vec2{5, 5}, got)
	})
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0.0, NormalizeAngle(2*math.Pi), 0.0001)
	assert.InDelta(t, -math.Pi/2, NormalizeAngle(3*math.Pi/2), 0.0001)
	assert.InDelta(t, math.Pi/2, NormalizeAngle(-3*math.Pi/2), 0.0001)
	assert.InDelta(t, math.Pi, NormalizeAngle(-math.Pi), 0.0001)
}

func TestInCone(t *testing.T) {
	origin := Vec2{100, 100}

	tests := []struct {
		name     string
		heading  float64
		point    Vec2
		expected bool
	}{
		{"straight ahead", 0, Vec2{200, 100}, true},
		{"behind", 0, Vec2{0, 100}, false},
		{"too far", 0, Vec2{100 + VisionRange + 1, 100}, false},
		{"at range boundary", 0, Vec2{100 + VisionRange, 100}, true},
		{"inside half angle", 0, Vec2{200, 150}, true},  // ~26.6 degrees
		{"outside half angle", 0, Vec2{150, 200}, false}, // ~63.4 degrees
		{"heading wraps around pi", math.Pi, Vec2{0, 110}, true},
		{"same position", 0, origin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InCone(origin, tt.heading, tt.point, VisionRange, VisionAngle))
		})
	}
}

func TestClampPosition(t *testing.T) {
	tests := []struct {
		name     string
		in       Vec2
		expected Vec2
	}{
		{"inside", Vec2{500, 500}, Vec2{500, 500}},
		{"left of yard", Vec2{-10, 500}, Vec2{PolicemanRadius, 500}},
		{"below yard", Vec2{500, YardHeight + 30}, Vec2{500, YardHeight - PolicemanRadius}},
		{"corner", Vec2{YardWidth + 5, -5}, Vec2{YardWidth - PolicemanRadius, PolicemanRadius}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampPosition(tt.in, PolicemanRadius))
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Min: Vec2{0, 0}, Max: Vec2{10, 10}}
	assert.True(t, r.Contains(Vec2{5, 5}))
	assert.True(t, r.Contains(Vec2{10, 10}))
	assert.False(t, r.Contains(Vec2{11, 5}))
	assert.False(t, r.Contains(Vec2{5, -1}))
}
