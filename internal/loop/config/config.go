// Package config centralizes all tunable game parameters.
package config

import "time"

// World resolution - the simulation runs in these logical units.
// Front ends scale to their output surface.
const (
	ScreenWidth  = 1920
	ScreenHeight = 1080
)

// Falling objects
const (
	StarProbability = 0.75 // Chance that a spawned object is a star
	FallSpeed       = 5.0  // Units per tick, independent of frame delta
	MaxRotation     = 0.05 // Rotation speed is drawn from [-MaxRotation, MaxRotation)
	StarSize        = 48.0
	AsteroidSize    = 72.0
)

// Player
const (
	InitialLives       = 3
	PlayerStep         = 10.0  // Units per tick
	LaneHalfWidth      = 300.0 // Lane is centred on screen
	PlayerWidth        = 96.0
	PlayerHeight       = 72.0
	PlayerBottomMargin = 150.0
)

// Spawning ramp: the interval decays linearly from max to min over the ramp duration.
const (
	SpawnMaxInterval  = 100 * time.Millisecond
	SpawnMinInterval  = 1 * time.Millisecond
	SpawnRampDuration = 6000 * time.Millisecond
)

// Menu background
const (
	MenuStarCount      = 100
	MenuAnimationSpeed = 1.0
	MenuStarMinSpeed   = 0.1
	MenuStarMaxSpeed   = 0.6
)

// Inactivity (SSH sessions only)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Terminal render area is clamped to this size and centred.
const (
	MaxTermWidth  = 192
	MaxTermHeight = 54
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // How long clients see the shutdown notice
)

// HUD
const (
	PromptBlinkMillis = 600
)
