package physics

import "testing"

func TestIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 5, 5}, true},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 5, 5}, false},
		{"share right edge", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"share bottom edge", Rect{0, 0, 10, 10}, Rect{0, 10, 10, 10}, false},
		{"share corner", Rect{0, 0, 10, 10}, Rect{10, 10, 10, 10}, false},
		{"overlap x only", Rect{0, 0, 10, 10}, Rect{5, 30, 10, 10}, false},
		{"overlap y only", Rect{0, 0, 10, 10}, Rect{30, 5, 10, 10}, false},
		{"negative coords", Rect{-20, -20, 15, 15}, Rect{-10, -10, 15, 15}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.a, tt.b); got != tt.want {
				t.Errorf("Intersects(a, b) = %v, want %v", got, tt.want)
			}
			if got := Intersects(tt.b, tt.a); got != tt.want {
				t.Errorf("Intersects(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersectsSymmetricGrid(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 10, Height: 6}
	for x := -15.0; x <= 15; x += 2.5 {
		for y := -10.0; y <= 10; y += 2 {
			other := Rect{X: x, Y: y, Width: 5, Height: 4}
			if Intersects(base, other) != Intersects(other, base) {
				t.Fatalf("asymmetric result for %+v", other)
			}
		}
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(100, 50, 20, 10)
	if r.Left() != 90 || r.Right() != 110 || r.Top() != 45 || r.Bottom() != 55 {
		t.Fatalf("RectAround(100, 50, 20, 10) = %+v", r)
	}
}
