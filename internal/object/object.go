// Package object holds the plain data records of the simulation: falling
// objects, the player ship, score bookkeeping and the spawn schedule.
// Nothing here knows how it is drawn.
package object

import (
	"fmt"
	"math/rand"
	"strings"
)

// Rand is the source of randomness used when spawning objects.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// globalRand forwards to the math/rand package-level source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand returns a Rand backed by the math/rand package-level source.
func DefaultRand() Rand {
	return globalRand{}
}

// Screen represents the logical world dimensions.
type Screen struct {
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64
}

// NewScreen creates a screen of the given size.
func NewScreen(width, height float64) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Range is a horizontal interval [Left, Right).
type Range struct {
	Left, Right float64
}

// Width returns the length of the interval.
func (r Range) Width() float64 {
	return r.Right - r.Left
}

// Intent is the movement the player asked for during one tick.
type Intent struct {
	Left  bool
	Right bool
}

// ShipColor identifies one of the selectable player ships.
type ShipColor int

const (
	ShipBlue ShipColor = iota
	ShipGreen
	ShipRed
	ShipPurple
)

// ShipColors lists the ships in menu order.
var ShipColors = []ShipColor{ShipBlue, ShipGreen, ShipRed, ShipPurple}

func (c ShipColor) String() string {
	switch c {
	case ShipBlue:
		return "blue"
	case ShipGreen:
		return "green"
	case ShipRed:
		return "red"
	case ShipPurple:
		return "purple"
	default:
		return fmt.Sprintf("ShipColor(%d)", int(c))
	}
}

// ParseShipColor returns the ship named s. Unknown names fall back to blue,
// matching the menu default, and report ok=false.
func ParseShipColor(s string) (c ShipColor, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blue":
		return ShipBlue, true
	case "green":
		return ShipGreen, true
	case "red":
		return ShipRed, true
	case "purple":
		return ShipPurple, true
	default:
		return ShipBlue, false
	}
}
