// Package core provides fundamental types and utilities shared by the engine
// and the terminal platform. It has no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

// Rect is an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Box is a float axis-aligned bounding box in canvas units.
type Box struct {
	Pos  Vec
	W, H float64
}

// Empty reports whether the box has no area. Empty boxes never overlap.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Overlaps is the standard AABB test:
//
//	a.y < b.y+b.h && a.x+a.w > b.x && a.x < b.x+b.w && a.h+a.y > b.y
//
// Touching edges do not overlap. The test is symmetric for boxes with
// non-negative size.
func (b Box) Overlaps(o Box) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	return b.Pos.Y < o.Pos.Y+o.H &&
		b.Pos.X+b.W > o.Pos.X &&
		b.Pos.X < o.Pos.X+o.W &&
		b.H+b.Pos.Y > o.Pos.Y
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
