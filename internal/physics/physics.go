// Package physics provides collision detection and bounds utilities.
package physics

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectAround returns the rectangle of size w×h centred on (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Intersects reports whether two rectangles overlap.
// The test uses open intervals, so rectangles that only share an edge do not intersect.
func Intersects(a, b Rect) bool {
	return a.X+a.Width > b.X &&
		a.X < b.X+b.Width &&
		a.Y+a.Height > b.Y &&
		a.Y < b.Y+b.Height
}
