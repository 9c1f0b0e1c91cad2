package loop

import (
	"math"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/object"
)

// Star outline: alternating outer and inner radius, as a fraction of half the size.
const (
	starPoints      = 5
	starInnerRadius = 0.45
)

// Asteroid outline radii, as a fraction of half the size, walked around the rock.
var asteroidRadii = [...]float64{1, 0.82, 0.95, 0.78, 1, 0.86, 0.92, 0.8}

// shipPalette maps ship choices to canvas colours.
var shipPalette = map[object.ShipColor]draw.Color{
	object.ShipBlue:   draw.ColorBlue,
	object.ShipGreen:  draw.ColorGreen,
	object.ShipRed:    draw.ColorRed,
	object.ShipPurple: draw.ColorPurple,
}

func shipColor(c object.ShipColor) draw.Color {
	if col, ok := shipPalette[c]; ok {
		return col
	}
	return draw.ColorBlue
}

// starfieldColor maps brightness in 0..1 onto the 24-step xterm grey ramp.
func starfieldColor(brightness float64) draw.Color {
	brightness = math.Max(0, math.Min(1, brightness))
	return draw.Color(232 + int(math.Round(brightness*23)))
}

// drawStarfield plots the menu background stars.
func drawStarfield(canvas *draw.Canvas, field *object.Starfield) {
	for _, s := range field.Stars {
		canvas.SetFloat(s.X, s.Y, starfieldColor(s.Brightness))
	}
}

// drawLane marks the edges of the strip the player is confined to.
func drawLane(canvas *draw.Canvas, lane object.Range, height float64) {
	for _, x := range []float64{lane.Left, lane.Right} {
		canvas.DrawLine(draw.Point{X: x, Y: 0}, draw.Point{X: x, Y: height}, draw.ColorLaneGuide)
	}
}

// drawEntity draws a falling star or asteroid rotated around its centre.
func drawEntity(canvas *draw.Canvas, e *object.FallingEntity) {
	switch e.Kind {
	case object.KindStar:
		n := starPoints * 2
		points := canvas.BorrowPoints(n)
		for i := range n {
			r := e.Width / 2
			if i%2 == 1 {
				r *= starInnerRadius
			}
			angle := e.Rotation + float64(i)*math.Pi/starPoints - math.Pi/2
			points[i] = draw.Point{X: e.X + r*math.Cos(angle), Y: e.Y + r*math.Sin(angle)}
		}
		canvas.DrawPolygon(points, true, draw.ColorYellow)
	case object.KindAsteroid:
		n := len(asteroidRadii)
		points := canvas.BorrowPoints(n)
		for i, k := range asteroidRadii {
			r := k * e.Width / 2
			angle := e.Rotation + float64(i)*2*math.Pi/float64(n)
			points[i] = draw.Point{X: e.X + r*math.Cos(angle), Y: e.Y + r*math.Sin(angle)}
		}
		canvas.DrawPolygon(points, true, draw.ColorAsteroid)
	}
}

// drawShip draws a ship pointing up with its centre at (x, y).
func drawShip(canvas *draw.Canvas, x, y, w, h float64, color draw.Color) {
	points := canvas.BorrowPoints(4)
	points[0] = draw.Point{X: x, Y: y - h/2}
	points[1] = draw.Point{X: x + w/2, Y: y + h/2}
	points[2] = draw.Point{X: x, Y: y + h/4}
	points[3] = draw.Point{X: x - w/2, Y: y + h/2}
	canvas.DrawPolygon(points, true, color)
}

// drawPlayer draws the player's ship in its chosen colour.
func drawPlayer(canvas *draw.Canvas, p *object.Player) {
	drawShip(canvas, p.X, p.Y, p.Width, p.Height, shipColor(p.Color))
}
