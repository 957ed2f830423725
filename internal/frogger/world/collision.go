package world

import "github.com/vovakirdan/tui-frogger/internal/core"

// Outcome is the result of testing the player against every lane once.
// Hit slices keep collection order, so "last hit" is well defined.
type Outcome struct {
	SlotHits   []Entity
	LogHits    []Entity
	FishHits   []Entity
	TurtleHits []Entity
	CarHit     bool
	TruckHit   bool
	WaterHit   bool
}

// Supported reports whether the player rests on something that keeps it
// out of the water.
func (o Outcome) Supported() bool {
	return len(o.LogHits) > 0 || len(o.TurtleHits) > 0 || len(o.SlotHits) > 0 || len(o.FishHits) > 0
}

// Deadly reports whether the outcome ends the run.
func (o Outcome) Deadly() bool {
	return o.CarHit || o.TruckHit || o.WaterHit
}

// Classify tests the player against every collection of w. The safe zone is
// never consulted: standing on it is always safe.
func Classify(w World) Outcome {
	p := w.Player.Box()
	o := Outcome{
		SlotHits:   hits(p, w.LandingSlots),
		LogHits:    hits(p, w.Logs),
		FishHits:   hits(p, w.Fish),
		TurtleHits: hits(p, w.Turtles),
		CarHit:     anyHit(p, w.Cars),
		TruckHit:   anyHit(p, w.Trucks),
	}
	o.WaterHit = anyHit(p, w.Water) && !o.Supported()
	return o
}

func hits(p core.Box, es []Entity) []Entity {
	var out []Entity
	for _, e := range es {
		if p.Overlaps(e.Box()) {
			out = append(out, e)
		}
	}
	return out
}

func anyHit(p core.Box, es []Entity) bool {
	for _, e := range es {
		if p.Overlaps(e.Box()) {
			return true
		}
	}
	return false
}

func last(es []Entity) Entity {
	return es[len(es)-1]
}

// Resolution scoring.
const (
	slotPoints = 50
	wavePoints = 500
)

// resolve applies a tick's collision outcome and returns the next snapshot.
// The rules run in a fixed order; game over is only ever set here, never
// cleared.
func resolve(w World, o Outcome) World {
	next := w
	slotHit := len(o.SlotHits) > 0

	next.GameOver = w.GameOver || o.Deadly()

	// The player rides whatever it is standing on.
	switch {
	case len(o.LogHits) > 0:
		carrier := last(o.LogHits)
		next.Player.Velocity, next.Player.Direction = carrier.Velocity, carrier.Direction
	case len(o.FishHits) > 0:
		carrier := last(o.FishHits)
		next.Player.Velocity, next.Player.Direction = carrier.Velocity, carrier.Direction
	default:
		next.Player.Velocity, next.Player.Direction = core.Zero, Still
	}

	if slotHit {
		next.Player.Position = SpawnPoint
		next.Score += slotPoints
		next.Level++
		next.CapturedSlots = appendUnique(w.CapturedSlots, last(o.SlotHits))
		next.LandingSlots = without(w.LandingSlots, o.SlotHits)
		next.DespawnedTurtles = w.MarkedTurtles
		next.MarkedTurtles = nil
		next.Turtles = without(w.Turtles, w.MarkedTurtles)
	} else {
		next.DespawnedTurtles = nil
		if len(o.TurtleHits) > 0 {
			next.MarkedTurtles = appendUnique(w.MarkedTurtles, last(o.TurtleHits))
		}
	}

	if len(w.CapturedSlots) >= DropZoneCount || len(next.CapturedSlots) >= DropZoneCount {
		next.Score += wavePoints
		next.Waves++
		next.LandingSlots = LandingSlotTemplates()
		next.Turtles = TurtleTemplates()
		next.CapturedSlots = nil
		next.Cars = mapEntities(next.Cars, intensify)
		next.Trucks = mapEntities(next.Trucks, intensify)
		next.Logs = mapEntities(next.Logs, intensify)
		next.Fish = mapEntities(next.Fish, intensify)
		return next
	}

	if FishHidden(next.ElapsedTime) {
		next.Fish = mapEntities(next.Fish, hideEntity)
	} else {
		next.Fish = mapEntities(next.Fish, showFish)
	}
	return next
}

func hideEntity(e Entity) Entity {
	e.Size = Size{}
	return e
}

func showFish(e Entity) Entity {
	e.Size = FishSize
	return e
}
