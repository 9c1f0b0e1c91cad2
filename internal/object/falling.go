package object

import (
	"math"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/physics"
)

// Kind is the type of a falling object.
type Kind int

const (
	KindStar     Kind = iota // Caught for points
	KindAsteroid             // Costs a life on contact
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindAsteroid:
		return "asteroid"
	default:
		return "unknown"
	}
}

// Size returns the sprite width and height for the kind.
func (k Kind) Size() (w, h float64) {
	if k == KindAsteroid {
		return config.AsteroidSize, config.AsteroidSize
	}
	return config.StarSize, config.StarSize
}

// RandomKind picks a star with probability config.StarProbability, otherwise an asteroid.
func RandomKind(rng Rand) Kind {
	if rng.Float64() < config.StarProbability {
		return KindStar
	}
	return KindAsteroid
}

// FallingEntity is a star or asteroid dropping from the top of the screen.
type FallingEntity struct {
	Kind          Kind
	X, Y          float64 // Position (center)
	Width, Height float64
	Rotation      float64 // Radians, grows without wrapping
	RotationSpeed float64 // Radians per tick
}

// NewFallingEntity creates an entity of the given kind just above the visible
// area at horizontal position x.
func NewFallingEntity(kind Kind, x float64, rng Rand) *FallingEntity {
	w, h := kind.Size()
	return &FallingEntity{
		Kind:          kind,
		X:             x,
		Y:             -h,
		Width:         w,
		Height:        h,
		Rotation:      rng.Float64() * 2 * math.Pi,
		RotationSpeed: (rng.Float64() - 0.5) * 2 * config.MaxRotation,
	}
}

// Advance moves the entity down by one tick of fall and spins it.
func (e *FallingEntity) Advance() {
	e.Y += config.FallSpeed
	e.Rotation += e.RotationSpeed
}

// OffScreen reports whether the entity has fallen past the bottom of a screen
// of the given height.
func (e *FallingEntity) OffScreen(screenHeight float64) bool {
	return e.Y > screenHeight+e.Height
}

// Bounds returns the collision rectangle.
func (e *FallingEntity) Bounds() physics.Rect {
	return physics.RectAround(e.X, e.Y, e.Width, e.Height)
}
