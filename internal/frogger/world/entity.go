package world

import (
	"fmt"

	"github.com/vovakirdan/tui-frogger/internal/core"
)

// Kind identifies what an entity is. It decides which collection the entity
// lives in and how the collision engine treats it.
type Kind int

const (
	KindPlayer Kind = iota
	KindCar
	KindTruck
	KindLog
	KindFish
	KindTurtle
	KindWater
	KindSafeZone
	KindLandingSlot
)

// String returns the id prefix used for entities of this kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindCar:
		return "car"
	case KindTruck:
		return "truck"
	case KindLog:
		return "log"
	case KindFish:
		return "fish"
	case KindTurtle:
		return "turtle"
	case KindWater:
		return "water"
	case KindSafeZone:
		return "safe"
	case KindLandingSlot:
		return "slot"
	default:
		return "unknown"
	}
}

// Direction signs an entity's velocity when it moves.
const (
	Left  = -1 // also up on the Y axis
	Still = 0
	Right = 1 // also down on the Y axis
)

// Size is the extent of an entity in canvas units. A zero size hides the
// entity from both collision and rendering.
type Size struct {
	W, H float64
}

// Visual carries render hints. The engine never reads them.
type Visual struct {
	Fill    string // CSS-style hex colour
	Rounded bool
}

// Entity is one simulated object. Entities are values: every change
// produces a new Entity and old snapshots keep theirs.
type Entity struct {
	ID        string
	Kind      Kind
	Position  core.Vec // top-left corner
	Size      Size
	Velocity  core.Vec // magnitude only, Direction gives the sign
	Direction int
	Visual    Visual
	CreatedAt float64
}

// Box returns the entity's bounding box.
func (e Entity) Box() core.Box {
	return core.Box{Pos: e.Position, W: e.Size.W, H: e.Size.H}
}

// Hidden reports whether the entity currently has no area.
func (e Entity) Hidden() bool {
	return e.Box().Empty()
}

func (e Entity) String() string {
	return fmt.Sprintf("%s@(%.2f,%.2f)", e.ID, e.Position.X, e.Position.Y)
}

// contains reports whether set holds an entity with the given id.
// Unknown ids are simply not present.
func contains(set []Entity, id string) bool {
	for _, e := range set {
		if e.ID == id {
			return true
		}
	}
	return false
}

// without returns the entities of all whose id is not in drop.
func without(all, drop []Entity) []Entity {
	if len(drop) == 0 {
		return all
	}
	out := make([]Entity, 0, len(all))
	for _, e := range all {
		if !contains(drop, e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// appendUnique returns set with e appended unless an entity with the same
// id is already there. The input slice is never written to.
func appendUnique(set []Entity, e Entity) []Entity {
	if contains(set, e.ID) {
		return set
	}
	out := make([]Entity, len(set), len(set)+1)
	copy(out, set)
	return append(out, e)
}

// mapEntities applies fn to every entity and returns the new slice.
func mapEntities(es []Entity, fn func(Entity) Entity) []Entity {
	if es == nil {
		return nil
	}
	out := make([]Entity, len(es))
	for i, e := range es {
		out[i] = fn(e)
	}
	return out
}
