package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArbitrate_Priority(t *testing.T) {
	vision := &Sighting{InmateID: "v", Position: Vec2{10, 0}}
	flashlight := &Sighting{InmateID: "f", Position: Vec2{5, 0}}
	notice := &Notice{Position: Vec2{0, 50}, Remaining: time.Second}
	patrol := Vec2{100, 100}

	tests := []struct {
		name       string
		perception Perception
		wantKind   BehaviorKind
		wantTarget Vec2
		wantInmate string
	}{
		{
			name:       "capacity gate dominates everything",
			perception: Perception{AtCapacity: true, Vision: vision, Flashlight: flashlight, Notice: notice, PatrolTarget: patrol},
			wantKind:   BehaviorReturningToDropOff,
			wantTarget: DropOffZone,
		},
		{
			name:       "vision over flashlight and notice",
			perception: Perception{Vision: vision, Flashlight: flashlight, Notice: notice, PatrolTarget: patrol},
			wantKind:   BehaviorVisionChase,
			wantTarget: vision.Position,
			wantInmate: "v",
		},
		{
			name:       "flashlight over notice",
			perception: Perception{Flashlight: flashlight, Notice: notice, PatrolTarget: patrol},
			wantKind:   BehaviorFlashlightChase,
			wantTarget: flashlight.Position,
			wantInmate: "f",
		},
		{
			name:       "notice over patrol",
			perception: Perception{Notice: notice, PatrolTarget: patrol},
			wantKind:   BehaviorSpotlightAttention,
			wantTarget: notice.Position,
		},
		{
			name:       "expired notice falls through to patrol",
			perception: Perception{Notice: &Notice{Position: Vec2{0, 50}}, PatrolTarget: patrol},
			wantKind:   BehaviorPatrol,
			wantTarget: patrol,
		},
		{
			name:       "patrol by default",
			perception: Perception{PatrolTarget: patrol},
			wantKind:   BehaviorPatrol,
			wantTarget: patrol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Arbitrate(tt.perception)
			assert.Equal(t, tt.wantKind, b.Kind)
			assert.Equal(t, tt.wantTarget, b.Target)
			assert.Equal(t, tt.wantInmate, b.InmateID)
		})
	}
}

func TestArbitrate_IsStateless(t *testing.T) {
	per := Perception{Flashlight: &Sighting{InmateID: "f"}, PatrolTarget: Vec2{1, 1}}
	assert.Equal(t, Arbitrate(per), Arbitrate(per))
}

func TestBehaviorKind_SpeedMultiplier(t *testing.T) {
	assert.Equal(t, 2.0, BehaviorVisionChase.SpeedMultiplier())
	assert.Equal(t, 1.5, BehaviorFlashlightChase.SpeedMultiplier())
	assert.Equal(t, 0.3, BehaviorSpotlightAttention.SpeedMultiplier())
	assert.Equal(t, 1.0, BehaviorPatrol.SpeedMultiplier())
	assert.Equal(t, 1.0, BehaviorReturningToDropOff.SpeedMultiplier())
}
