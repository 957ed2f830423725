package source

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

// DefaultInterval is the clock period used by the game.
const DefaultInterval = 10 * time.Millisecond

// Clock emits Tick(1), Tick(2), ... once per interval. The counter only
// advances when a tick is delivered, so a slow consumer sees fewer ticks
// per second but never a gap in the sequence.
type Clock struct {
	interval time.Duration
	limit    uint64
	err      error
}

// NewClock returns a clock with the given period. Non-positive periods
// fall back to DefaultInterval.
func NewClock(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Clock{interval: interval}
}

// WithLimit makes the clock stop after n ticks. Zero means unbounded.
func (c *Clock) WithLimit(n uint64) *Clock {
	c.limit = n
	return c
}

func (c *Clock) Events(ctx context.Context) <-chan world.Event {
	out := make(chan world.Event)
	go func() {
		defer close(out)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for n := uint64(1); c.limit == 0 || n <= c.limit; n++ {
			select {
			case <-ctx.Done():
				c.err = ctx.Err()
				return
			case <-ticker.C:
			}
			if !send(ctx, out, world.Tick{Elapsed: float64(n)}) {
				c.err = ctx.Err()
				return
			}
		}
	}()
	return out
}

func (c *Clock) Err() error { return c.err }
