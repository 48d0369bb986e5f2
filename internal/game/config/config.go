// Package config centralizes all tunable game parameters.
package config

import "time"

// Tick periods for the three simulation activities.
const (
	ClockTick  = 100 * time.Millisecond // Game clock, milestones, effect expiry
	MotionTick = 16 * time.Millisecond  // ~60 Hz motion integration
)

// Spawning and difficulty
const (
	InitialSpawnInterval = 2000 * time.Millisecond
	MinSpawnInterval     = 800 * time.Millisecond
	SpawnIntervalStep    = 100 * time.Millisecond // Subtracted per level
	InitialMaxTargets    = 8
	MaxTargetsCap        = 12
	LevelsPerExtraTarget = 3
	PointsPerLevel       = 100
	FieldPadding         = 50.0 // Spawn keeps this far from the edges (px)
)

// Effects
const (
	DoubleScoreDuration = 10 * time.Second
	SlowDownDuration    = 15 * time.Second
	DoubleScoreFactor   = 2
	SlowDownFactor      = 0.5
)

// Item milestones: one item every N total hits.
const (
	DoubleScoreEvery = 3
	ClearAllEvery    = 10
	SlowDownEvery    = 5
)

// Targets fade during the last part of their lifetime.
const FadeRatio = 0.7

// Persistence
const DefaultSaveKey = "targetHunterGameData"

// Terminal presentation. One cell covers CellWidth x CellHeight field pixels;
// half-block rendering gives two square sub-pixels per cell.
const (
	CellWidth  = 10.0
	CellHeight = 20.0
	HUDRows    = 2 // Stats and inventory lines above the field

	MaxTermWidth  = 200 // Larger terminals get a centered, bordered field
	MaxTermHeight = 60

	FrameRate = 30
	FrameTick = time.Second / FrameRate
)

// Popup lifetimes (real time)
const (
	ScorePopupDuration   = 1000 * time.Millisecond
	MissPopupDuration    = 500 * time.Millisecond
	MessagePopupDuration = 2000 * time.Millisecond
	FadeBlinkPeriod      = 150 * time.Millisecond
)

// Remote sessions
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
	ShutdownGracePeriod      = 10 * time.Second
)
