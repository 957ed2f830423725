package world

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-frogger/internal/core"
)

// Canvas and population constants.
const (
	CanvasSize    = 600.0
	DropZoneCount = 5

	carCount    = 12
	truckCount  = 6
	logCount    = 6
	fishCount   = 3
	turtleCount = 10
	waterCount  = 7
	safeCount   = 1

	startTime = 0.0
)

// SpawnPoint is where the player starts and returns to after landing.
var SpawnPoint = core.V(CanvasSize/2, CanvasSize-60)

// Lane placements, indexed by row (i / 3 for the three-per-lane kinds).
var (
	carLanes   = []float64{470, 430, 350, 280}
	truckLanes = []float64{500, 310}
	logLanes   = []float64{200, 80}
	waterRows  = []float64{0, 40, 80, 120, 160, 200, 570}
	slotXs     = []float64{20, 140, 260, 380, 500}
)

// Templates are built once. NewWorld and wave clears copy from them.
var (
	playerTemplate = Entity{
		ID:       KindPlayer.String() + "0",
		Kind:     KindPlayer,
		Position: SpawnPoint,
		Size:     Size{W: 20, H: 20},
		Visual:   Visual{Fill: "#008000", Rounded: true},
	}

	carTemplates = build(KindCar, carCount, func(i int) Entity {
		return Entity{
			Position:  core.V(laneX(i, 150), carLanes[i/3]),
			Size:      Size{W: CanvasSize / 15, H: CanvasSize / 25},
			Velocity:  core.V(1, 0),
			Direction: Right,
			Visual:    Visual{Fill: "#808080"},
		}
	})

	truckTemplates = build(KindTruck, truckCount, func(i int) Entity {
		return Entity{
			Position:  core.V(laneX(i, 200), truckLanes[i/3]),
			Size:      Size{W: CanvasSize / 10, H: CanvasSize / 20},
			Velocity:  core.V(0.5, 0),
			Direction: Left,
			Visual:    Visual{Fill: "#ffffff"},
		}
	})

	logTemplates = build(KindLog, logCount, func(i int) Entity {
		dir := Right
		if (i/3)%2 == 0 {
			dir = Left
		}
		return Entity{
			Position:  core.V(laneX(i, 200), logLanes[i/3]),
			Size:      Size{W: CanvasSize / 7, H: CanvasSize / 15},
			Velocity:  core.V(0.75, 0),
			Direction: dir,
			Visual:    Visual{Fill: "#654321"},
		}
	})

	fishTemplates = build(KindFish, fishCount, func(i int) Entity {
		return Entity{
			Position:  core.V(laneX(i, 200), 160),
			Size:      Size{W: CanvasSize / 9, H: CanvasSize / 15},
			Velocity:  core.V(0.5, 0),
			Direction: Left,
			Visual:    Visual{Fill: "#789491"},
		}
	})

	turtleTemplates = build(KindTurtle, turtleCount, func(i int) Entity {
		return Entity{
			Position: core.V(float64(i)*60, 120),
			Size:     Size{W: CanvasSize / 12, H: CanvasSize / 15},
			Visual:   Visual{Fill: "#0d4502", Rounded: true},
		}
	})

	waterTemplates = build(KindWater, waterCount, func(i int) Entity {
		return Entity{
			Position: core.V(0, waterRows[i]),
			Size:     Size{W: CanvasSize, H: 40},
			Visual:   Visual{Fill: "#196dbd"},
		}
	})

	safeTemplates = build(KindSafeZone, safeCount, func(int) Entity {
		return Entity{
			Position: core.V(0, 240),
			Size:     Size{W: CanvasSize, H: 40},
			Visual:   Visual{Fill: "#800080"},
		}
	})

	slotTemplates = build(KindLandingSlot, DropZoneCount, func(i int) Entity {
		return Entity{
			Position: core.V(slotXs[i], 35),
			Size:     Size{W: 40, H: 40},
			Visual:   Visual{Fill: "#f005c9", Rounded: true},
		}
	})
)

// FishSize is the canonical size fish are restored to after a blink.
var FishSize = fishTemplates[0].Size

// laneX staggers entities three to a lane. Lower lanes are shifted further
// right so neighbouring lanes do not line up.
func laneX(i int, spacing float64) float64 {
	return float64(i%3)*spacing + 200/float64(1+i/3)
}

// build creates n entities of one kind with ids kind+index.
// Panics if the ids are not unique, like registering a duplicate game.
func build(kind Kind, n int, fn func(i int) Entity) []Entity {
	out := make([]Entity, n)
	seen := make(map[string]bool, n)
	for i := range n {
		e := fn(i)
		e.ID = fmt.Sprintf("%s%d", kind, i)
		e.Kind = kind
		e.CreatedAt = startTime
		if seen[e.ID] {
			panic(fmt.Sprintf("world: duplicate entity id %q", e.ID))
		}
		seen[e.ID] = true
		out[i] = e
	}
	return out
}

// NewWorld returns the initial snapshot of a fresh game.
func NewWorld() World {
	return World{
		Level:        1,
		Player:       playerTemplate,
		Cars:         slices.Clone(carTemplates),
		Trucks:       slices.Clone(truckTemplates),
		Logs:         slices.Clone(logTemplates),
		Fish:         slices.Clone(fishTemplates),
		Water:        slices.Clone(waterTemplates),
		SafeZone:     slices.Clone(safeTemplates),
		LandingSlots: slices.Clone(slotTemplates),
		Turtles:      slices.Clone(turtleTemplates),
	}
}

// LandingSlotTemplates returns a fresh copy of the landing slot templates.
func LandingSlotTemplates() []Entity { return slices.Clone(slotTemplates) }

// TurtleTemplates returns a fresh copy of the turtle templates.
func TurtleTemplates() []Entity { return slices.Clone(turtleTemplates) }
