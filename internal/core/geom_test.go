package core

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		p        Position
		n        int
		expected bool
	}{
		{"origin", Pos(0, 0), 5, true},
		{"far corner", Pos(4, 4), 5, true},
		{"x past edge", Pos(5, 0), 5, false},
		{"y past edge", Pos(0, 5), 5, false},
		{"negative x", Pos(-1, 2), 5, false},
		{"negative y", Pos(2, -1), 5, false},
		{"single cell board", Pos(0, 0), 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValid(tc.p, tc.n); got != tc.expected {
				t.Errorf("IsValid(%v, %d) = %v, expected %v", tc.p, tc.n, got, tc.expected)
			}
		})
	}
}

func TestManhattan(t *testing.T) {
	tests := []struct {
		a, b     Position
		expected int
	}{
		{Pos(0, 0), Pos(0, 0), 0},
		{Pos(0, 0), Pos(3, 4), 7},
		{Pos(3, 4), Pos(0, 0), 7},
		{Pos(5, 5), Pos(8, 5), 3},
		{Pos(2, 7), Pos(6, 1), 10},
	}

	for _, tc := range tests {
		if got := Manhattan(tc.a, tc.b); got != tc.expected {
			t.Errorf("Manhattan(%v, %v) = %d, expected %d", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Pos(2, 3), Pos(2, 3)) {
		t.Error("Equal should hold for identical positions")
	}
	if Equal(Pos(2, 3), Pos(3, 2)) {
		t.Error("Equal should not hold for swapped coordinates")
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		o := d.Opposite()
		if !d.IsOpposite(o) {
			t.Errorf("%v should be opposite of %v", d, o)
		}
		if o.Opposite() != d {
			t.Errorf("Opposite is not an involution for %v", d)
		}
		dx, dy := d.Vector()
		ox, oy := o.Vector()
		if dx != -ox || dy != -oy {
			t.Errorf("vectors of %v and %v are not negations", d, o)
		}
	}
}

func TestDirectionBetween(t *testing.T) {
	from := Pos(4, 4)
	for _, d := range Directions {
		got, ok := DirectionBetween(from, d.Step(from))
		if !ok || got != d {
			t.Errorf("DirectionBetween step %v = (%v, %v)", d, got, ok)
		}
	}

	if _, ok := DirectionBetween(from, Pos(6, 4)); ok {
		t.Error("two-cell jump should not be a direction")
	}
	if _, ok := DirectionBetween(from, from); ok {
		t.Error("zero step should not be a direction")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClampAbs(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp returned unexpected values")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned unexpected values")
	}
}
