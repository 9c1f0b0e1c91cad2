package object

import (
	"github.com/tomz197/starfall/internal/loop/config"
)

// wrapMargin is how far past the left edge a background star drifts before it
// reappears on the right.
const wrapMargin = 10.0

// BackgroundStar is a decorative point drifting across the menu screen.
type BackgroundStar struct {
	X, Y       float64
	Speed      float64 // Units per frame
	Brightness float64 // 0..1, proportional to speed
}

// Starfield is the animated menu background.
type Starfield struct {
	Stars  []BackgroundStar
	screen Screen
	rng    Rand
}

// NewStarfield scatters count stars over the screen.
func NewStarfield(screen Screen, count int, rng Rand) *Starfield {
	if rng == nil {
		rng = DefaultRand()
	}
	f := &Starfield{
		Stars:  make([]BackgroundStar, count),
		screen: screen,
		rng:    rng,
	}
	span := config.MenuStarMaxSpeed - config.MenuStarMinSpeed
	for i := range f.Stars {
		speed := rng.Float64()*span + config.MenuStarMinSpeed
		f.Stars[i] = BackgroundStar{
			X:          rng.Float64() * screen.Width,
			Y:          rng.Float64() * screen.Height,
			Speed:      speed,
			Brightness: speed / config.MenuStarMaxSpeed,
		}
	}
	return f
}

// Update drifts every star left; stars past the left edge wrap to the right
// at a new random height.
func (f *Starfield) Update() {
	for i := range f.Stars {
		s := &f.Stars[i]
		s.X -= config.MenuAnimationSpeed * s.Speed
		if s.X < -wrapMargin {
			s.X = f.screen.Width + wrapMargin
			s.Y = f.rng.Float64() * f.screen.Height
		}
	}
}
