package object

import (
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/physics"
)

// Player is the ship at the bottom of the screen. It only moves horizontally,
// inside a fixed-width lane centred on the screen.
type Player struct {
	X, Y          float64 // Position (center); Y is fixed after placement
	Width, Height float64
	Lane          Range   // Allowed horizontal extent of the ship's bounds
	Step          float64 // Units moved per tick
	Color         ShipColor
}

// NewPlayer places a ship centred horizontally near the bottom of the screen.
func NewPlayer(screen Screen) *Player {
	return &Player{
		X:      screen.CenterX,
		Y:      screen.Height - config.PlayerHeight/2 - config.PlayerBottomMargin,
		Width:  config.PlayerWidth,
		Height: config.PlayerHeight,
		Lane: Range{
			Left:  screen.CenterX - config.LaneHalfWidth,
			Right: screen.CenterX + config.LaneHalfWidth,
		},
		Step: config.PlayerStep,
	}
}

// Move applies one tick of movement intent. Left is checked first, then
// right; each step is taken only if the resulting bounds stay in the lane.
// Holding both directions applies both steps when both fit.
func (p *Player) Move(intent Intent) {
	if intent.Left {
		if p.X-p.Step-p.Width/2 >= p.Lane.Left {
			p.X -= p.Step
		}
	}

	if intent.Right {
		if p.X+p.Step+p.Width/2 <= p.Lane.Right {
			p.X += p.Step
		}
	}
}

// Bounds returns the collision rectangle.
func (p *Player) Bounds() physics.Rect {
	return physics.RectAround(p.X, p.Y, p.Width, p.Height)
}
