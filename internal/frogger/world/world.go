// Package world is the deterministic Frogger engine: the immutable world
// snapshot, the entity factory, motion, collision resolution and the event
// reducer. It performs no I/O and never logs.
package world

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvariant is wrapped by every error returned from World.Check.
var ErrInvariant = errors.New("invariant violated")

// Fish blink cadence, in engine time units.
const (
	blinkCycle    = 1000.0
	blinkWindow   = 200.0
	warningOffset = 700.0
)

// World is one complete frame of the game. It is never modified in place:
// every transition builds a new World, and slices are shared between
// snapshots only when they did not change.
type World struct {
	ElapsedTime float64
	Score       int
	HighScore   int
	Level       int
	Waves       int
	GameOver    bool

	Player Entity

	Cars         []Entity
	Trucks       []Entity
	Logs         []Entity
	Fish         []Entity
	Water        []Entity
	SafeZone     []Entity
	LandingSlots []Entity
	Turtles      []Entity

	// Progress sets: insertion ordered, unique by id.
	CapturedSlots    []Entity
	MarkedTurtles    []Entity
	DespawnedTurtles []Entity
}

// WavesCleared returns how many waves have cleared this run.
func (w World) WavesCleared() int {
	return w.Waves
}

// FishHidden reports whether fish are in their blink window at time t.
// The window covers the first 200 units of every 1000-unit cycle after the
// first one.
func FishHidden(t float64) bool {
	return t >= blinkCycle && math.Mod(t, blinkCycle) <= blinkWindow
}

// FishWarning reports whether the "fish about to vanish" hint is due.
func FishWarning(t float64) bool {
	return math.Mod(t, blinkCycle) >= warningOffset
}

// Check verifies the snapshot invariants. A non-nil result is a logic
// defect in the engine, never a gameplay condition.
func (w World) Check() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("world: %w: "+format, append([]any{ErrInvariant}, args...)...))
	}

	if n := len(w.CapturedSlots); n > DropZoneCount {
		fail("%d captured slots exceeds %d", n, DropZoneCount)
	}
	if n := len(w.LandingSlots); n > DropZoneCount {
		fail("%d landing slots exceeds %d", n, DropZoneCount)
	}
	if w.Score < 0 || w.HighScore < 0 {
		fail("negative score %d/%d", w.Score, w.HighScore)
	}
	if w.Level < 1 {
		fail("level %d below 1", w.Level)
	}
	if w.Waves < 0 {
		fail("negative wave count %d", w.Waves)
	}
	if w.Player.Kind != KindPlayer {
		fail("player has kind %s", w.Player.Kind)
	}
	if !validDirection(w.Player.Direction) {
		fail("player direction %d", w.Player.Direction)
	}

	sets := []struct {
		name string
		kind Kind
		es   []Entity
	}{
		{"cars", KindCar, w.Cars},
		{"trucks", KindTruck, w.Trucks},
		{"logs", KindLog, w.Logs},
		{"fish", KindFish, w.Fish},
		{"water", KindWater, w.Water},
		{"safe zone", KindSafeZone, w.SafeZone},
		{"landing slots", KindLandingSlot, w.LandingSlots},
		{"turtles", KindTurtle, w.Turtles},
		{"captured slots", KindLandingSlot, w.CapturedSlots},
		{"marked turtles", KindTurtle, w.MarkedTurtles},
		{"despawned turtles", KindTurtle, w.DespawnedTurtles},
	}
	for _, s := range sets {
		seen := make(map[string]bool, len(s.es))
		for _, e := range s.es {
			if e.Kind != s.kind {
				fail("%s holds %s of kind %s", s.name, e.ID, e.Kind)
			}
			if seen[e.ID] {
				fail("%s holds duplicate id %s", s.name, e.ID)
			}
			if !validDirection(e.Direction) {
				fail("%s direction %d", e.ID, e.Direction)
			}
			seen[e.ID] = true
		}
	}

	return errors.Join(errs...)
}

func validDirection(d int) bool {
	return d == Left || d == Still || d == Right
}
