package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-frogger/internal/core"
)

// ErrInvalidEvent is returned by ValidateEvent for events the reducer must
// never see.
var ErrInvalidEvent = errors.New("invalid event")

// Event is an input to the reducer. The set is closed: Move, Score, Reset
// and Tick are the only implementations.
type Event interface {
	event()
}

// Move shifts the player by Delta canvas units.
type Move struct {
	Delta core.Vec
}

func (Move) event() {}

// Score adds Amount to the current score.
type Score struct {
	Amount int
}

func (Score) event() {}

// Reset starts a fresh game, carrying the high score over.
type Reset struct{}

func (Reset) event() {}

// Tick advances the simulation; Elapsed becomes the new elapsed time.
type Tick struct {
	Elapsed float64
}

func (Tick) event() {}

// ValidateEvent rejects malformed events before they reach Reduce.
func ValidateEvent(ev Event) error {
	switch e := ev.(type) {
	case Move:
		if !e.Delta.IsFinite() {
			return fmt.Errorf("world: move delta %v: %w", e.Delta, ErrInvalidEvent)
		}
	case Score:
		if e.Amount < 0 {
			return fmt.Errorf("world: negative score %d: %w", e.Amount, ErrInvalidEvent)
		}
	case Reset:
	case Tick:
		if math.IsNaN(e.Elapsed) || math.IsInf(e.Elapsed, 0) || e.Elapsed < 0 {
			return fmt.Errorf("world: tick elapsed %v: %w", e.Elapsed, ErrInvalidEvent)
		}
	case nil:
		return fmt.Errorf("world: nil event: %w", ErrInvalidEvent)
	default:
		return fmt.Errorf("world: unknown event %T: %w", ev, ErrInvalidEvent)
	}
	return nil
}
