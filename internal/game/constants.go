package game

import (
	"math"
	"time"
)

// Yard dimensions (pixels)
const (
	YardWidth  = 1200.0
	YardHeight = 800.0
)

// Inmate entry and exit. Inmates enter off-track on the left and escape on the right.
const (
	EntryX = -20.0
	EntryY = YardHeight / 2
	ExitX  = YardWidth - 40.0
)

// Agent bodies
const (
	InmateRadius    = 10.0
	PolicemanRadius = 12.0
)

// Battery
const (
	BatteryMax               = 100.0
	BaseChargeRate           = 4.0  // units per second with every light off
	PerDeliveryBonus         = 0.25 // extra charge per second for each delivered inmate
	SingleDrain              = 10.0 // units per second for one light
	MultiSpotlightMultiplier = 1.5  // drain grows by this many single drains for each additional light
)

// Spotlights
const (
	SpotlightRadius = 50.0
)

// Inmate movement and capture by light
const (
	InmateSpeed         = 40.0 // pixels per second
	WanderStepMin       = 60.0
	WanderStepMax       = 180.0
	CatchFreezeDuration = 2 * time.Second // continuous
	ArrivalThreshold    = 4.0
)

// Inmate opacity (display only)
const (
	OpacityLit    = 1.0
	OpacityDimmed = 0.35
)

// Spawning
const (
	InitialSpawnInterval = 4 * time.Second
	MinSpawnInterval     = 1 * time.Second
	SpawnDecay           = 0.95 // interval multiplier applied after every spawn
)

// Policeman
const (
	PolicemanSpeed       = 60.0 // pixels per second
	VisionRange          = 220.0
	VisionAngle          = math.Pi / 2 // full cone width
	FlashlightRange      = 120.0
	FlashlightAngle      = math.Pi / 6
	MaxCapacity          = 10
	FollowDistance       = 18.0
	DropOffThreshold     = 10.0
	AttentionDuration    = 3 * time.Second
	PatrolIntervalMin    = 2 * time.Second
	PatrolIntervalMax    = 5 * time.Second
	DefaultPolicemanPool = 3
)

// Speed multipliers per behavior
const (
	VisionChaseSpeed     = 2.0
	FlashlightChaseSpeed = 1.5
	AttentionSpeed       = 0.3
	PatrolSpeed          = 1.0
	ReturnToDropOffSpeed = 1.0
)

// Patrol bounds keep policemen inside the yard and away from the entry gate.
var PatrolBounds = Rect{Min: Vec2{X: 150, Y: 60}, Max: Vec2{X: YardWidth - 150, Y: YardHeight - 60}}

// DropOffZone is where policemen deliver captured inmates.
var DropOffZone = Vec2{X: YardWidth / 2, Y: 30}

// Game state
const (
	StartingLives      = 3
	ScorePerLightCatch = 1
	ScorePerDelivery   = 1
	LevelScoreStep     = 10
)

// Game timing
const (
	TickRate     = 20 // ticks per second
	TickInterval = time.Second / TickRate
)
