package world

import "github.com/vovakirdan/tui-frogger/internal/core"

// Advance moves an entity one tick along its velocity, signed by its
// direction, and wraps the result around the canvas.
func Advance(e Entity) Entity {
	var next core.Vec
	if e.Direction >= 0 {
		next = e.Position.Add(e.Velocity)
	} else {
		next = e.Position.Sub(e.Velocity)
	}
	e.Position = Wrap(next, e)
	return e
}

// Wrap maps pos back onto the canvas torus. Each axis is handled on its
// own: an entity fully past the leading edge re-enters from the far side.
func Wrap(pos core.Vec, e Entity) core.Vec {
	return core.V(wrapAxis(pos.X, e.Size.W), wrapAxis(pos.Y, e.Size.H))
}

func wrapAxis(v, extent float64) float64 {
	switch {
	case v+extent < 0:
		return v + CanvasSize
	case v > CanvasSize:
		return v - CanvasSize
	default:
		return v
	}
}

// intensify speeds an entity up and reverses it. Stationary entities keep
// direction 0.
func intensify(e Entity) Entity {
	e.Velocity = e.Velocity.Add(core.V(intensifyStep, 0))
	e.Direction = -e.Direction
	return e
}

const intensifyStep = 0.10
