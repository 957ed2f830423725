// Package source produces the ordered event stream the engine folds.
//
// A Source is a single producer: a scripted replay, the periodic clock, or
// key input from the terminal. Merge combines producers into one stream
// while keeping each producer's own order. Nothing in this package touches
// world state; Fold is the only place events meet an engine.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

// Source is a producer of engine events.
type Source interface {
	// Events starts the producer and returns its stream. The channel is
	// closed when the producer is exhausted or ctx is done. Events must be
	// called at most once.
	Events(ctx context.Context) <-chan world.Event

	// Err reports why the stream ended. It is only meaningful after the
	// channel returned by Events has been closed; nil means the producer
	// ran to completion.
	Err() error
}

// Fold drains src into eng in arrival order. It returns the last snapshot
// and the number of events applied. A rejected event stops the fold.
// Cancellation of ctx is a normal way to stop and is not reported.
func Fold(ctx context.Context, eng *world.Engine, src Source) (world.World, int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := 0
	for ev := range src.Events(ctx) {
		if _, err := eng.Apply(ev); err != nil {
			return eng.Snapshot(), n, fmt.Errorf("source: event %d: %w", n, err)
		}
		n++
	}

	if err := src.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return eng.Snapshot(), n, fmt.Errorf("source: %w", err)
	}
	return eng.Snapshot(), n, nil
}

// send delivers ev unless ctx ends first.
func send(ctx context.Context, out chan<- world.Event, ev world.Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
