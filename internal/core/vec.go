package core

import "math"

// Vec is an immutable 2D vector in canvas units.
// All operations return new values.
type Vec struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec{}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o, defined as v + o*-1.
func (v Vec) Sub(o Vec) Vec {
	return v.Add(o.Scale(-1))
}

// Scale multiplies both components by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Len returns the euclidean length.
func (v Vec) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Ortho returns the vector rotated a quarter turn: (y, -x).
func (v Vec) Ortho() Vec {
	return Vec{X: v.Y, Y: -v.X}
}

// IsFinite reports whether both components are finite numbers.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
