package core

import (
	"math"
	"testing"
)

func box(x, y, w, h float64) Box {
	return Box{Pos: V(x, y), W: w, H: h}
}

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        box(0, 0, 10, 10),
			b:        box(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        box(0, 0, 10, 10),
			b:        box(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        box(0, 0, 10, 10),
			b:        box(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        box(0, 0, 10, 10),
			b:        box(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        box(0, 0, 10, 10),
			b:        box(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained box",
			a:        box(0, 0, 20, 20),
			b:        box(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        box(0, 0, 10, 10),
			b:        box(9.5, 9.5, 10, 10),
			expected: true,
		},
		{
			name:     "zero-size box inside another",
			a:        box(0, 0, 20, 20),
			b:        box(5, 5, 0, 0),
			expected: false,
		},
		{
			name:     "zero-width box",
			a:        box(0, 0, 20, 20),
			b:        box(5, 5, 0, 10),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Overlaps(tc.b)
			if result != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", result, tc.expected)
			}
			resultReverse := tc.b.Overlaps(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestBoxOverlapsSymmetryGrid(t *testing.T) {
	// Sweep one box across another in half-unit steps.
	a := box(10, 10, 20, 20)
	for x := -5.0; x <= 45; x += 0.5 {
		for y := -5.0; y <= 45; y += 0.5 {
			b := box(x, y, 7, 3)
			if a.Overlaps(b) != b.Overlaps(a) {
				t.Fatalf("asymmetric overlap at (%v, %v)", x, y)
			}
		}
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
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestVecOps(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, expected (4, 2)", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, expected (2, 6)", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale() = %v, expected (6, 8)", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len() = %v, expected 5", got)
	}
	if got := a.Ortho(); got != V(4, -3) {
		t.Errorf("Ortho() = %v, expected (4, -3)", got)
	}
	if a.Add(Zero) != a {
		t.Error("adding Zero should return the same vector")
	}
	// Operands are values; nothing above may have changed them.
	if a != V(3, 4) || b != V(1, -2) {
		t.Error("vector operations must not modify their operands")
	}
}

func TestVecIsFinite(t *testing.T) {
	if !V(1, 2).IsFinite() {
		t.Error("(1, 2) should be finite")
	}
	if V(math.NaN(), 0).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if V(0, math.Inf(-1)).IsFinite() {
		t.Error("-Inf component should not be finite")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestParseAction(t *testing.T) {
	for a := ActionNone; a <= ActionQuit; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("Jump"); ok {
		t.Error("ParseAction should reject unknown names")
	}
}
