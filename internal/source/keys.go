package source

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-frogger/internal/core"
	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

// Input defaults.
const (
	DefaultStep         = 10.0
	DefaultRepeatWindow = 60 * time.Millisecond
	DefaultRepeatDelay  = 500 * time.Millisecond
)

// Translate maps a player action to the events it produces. Vertical hops
// also score one point. Actions that do not affect the game map to nothing.
func Translate(a core.Action, step float64) []world.Event {
	switch a {
	case core.ActionUp:
		return []world.Event{world.Move{Delta: core.V(0, -step)}, world.Score{Amount: 1}}
	case core.ActionDown:
		return []world.Event{world.Move{Delta: core.V(0, step)}, world.Score{Amount: 1}}
	case core.ActionLeft:
		return []world.Event{world.Move{Delta: core.V(-step, 0)}}
	case core.ActionRight:
		return []world.Event{world.Move{Delta: core.V(step, 0)}}
	case core.ActionReset:
		return []world.Event{world.Reset{}}
	default:
		return nil
	}
}

// Keys turns key presses into events. Terminals report a held key as one
// press, a pause of up to the repeat delay, then a stream of repeats spaced
// less than the repeat window apart. Keys accepts the first press and drops
// the rest of the hold; the hold ends once the stream pauses for longer
// than the window.
type Keys struct {
	step   float64
	window time.Duration
	delay  time.Duration
	logger *log.Logger
	now    func() time.Time

	in        chan core.Action
	closed    chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	last    core.Action
	lastAt  time.Time
	holding bool
	stopped bool

	err error
}

// NewKeys returns an input source. A nil logger discards output.
func NewKeys(step float64, window, delay time.Duration, logger *log.Logger) *Keys {
	if step <= 0 {
		step = DefaultStep
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Keys{
		step:   step,
		window: max(window, 0),
		delay:  max(delay, 0),
		logger: logger,
		now:    time.Now,
		in:     make(chan core.Action, 64),
		closed: make(chan struct{}),
	}
}

// Press submits an action. It reports whether the press was accepted: it
// is dropped if it is a repeat, maps to no event, the input buffer is
// full, or the source has stopped. An accepted press is always delivered
// unless the stream's context is cancelled.
func (k *Keys) Press(a core.Action) bool {
	if len(Translate(a, k.step)) == 0 {
		return false
	}

	select {
	case <-k.closed:
		return false
	default:
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.stopped {
		return false
	}
	now := k.now()
	if k.repeat(a, now) {
		k.logger.Debug("repeat suppressed", "action", a)
		return false
	}

	// Press never blocks: callers usually drain the events themselves.
	select {
	case k.in <- a:
		k.last, k.lastAt, k.holding = a, now, false
		return true
	default:
		k.logger.Warn("input buffer full, press dropped", "action", a)
		return false
	}
}

// repeat reports whether a belongs to the hold of the previous press and,
// if so, extends the hold. Callers hold k.mu.
func (k *Keys) repeat(a core.Action, now time.Time) bool {
	if a != k.last {
		return false
	}
	gap := now.Sub(k.lastAt)
	if gap < k.window || (!k.holding && gap <= k.delay) {
		k.lastAt, k.holding = now, true
		return true
	}
	return false
}

// Close ends the stream once the presses already accepted are delivered.
func (k *Keys) Close() {
	k.closeOnce.Do(func() { close(k.closed) })
}

func (k *Keys) Events(ctx context.Context) <-chan world.Event {
	out := make(chan world.Event)
	go func() {
		defer close(out)
		defer k.stop()

		for {
			select {
			case <-ctx.Done():
				k.err = ctx.Err()
				return
			case a := <-k.in:
				if !k.emit(ctx, out, a) {
					return
				}
			case <-k.closed:
				for {
					a, ok := k.drain()
					if !ok {
						return
					}
					if !k.emit(ctx, out, a) {
						return
					}
				}
			}
		}
	}()
	return out
}

// drain takes the next buffered press. Once the buffer is empty it stops
// the source under the same lock, so no later Press can slip in unseen.
func (k *Keys) drain() (core.Action, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	select {
	case a := <-k.in:
		return a, true
	default:
		k.stopped = true
		return core.ActionNone, false
	}
}

func (k *Keys) stop() {
	k.mu.Lock()
	k.stopped = true
	k.mu.Unlock()
}

func (k *Keys) emit(ctx context.Context, out chan<- world.Event, a core.Action) bool {
	for _, ev := range Translate(a, k.step) {
		if !send(ctx, out, ev) {
			k.err = ctx.Err()
			return false
		}
	}
	k.logger.Debug("key", "action", a)
	return true
}

func (k *Keys) Err() error { return k.err }
