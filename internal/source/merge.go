package source

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

type merged struct {
	sources []Source
	err     error
}

// Merge fans several sources into one. Each source's events keep their
// relative order; how sources interleave is decided by arrival. The merged
// stream ends when every source has ended, or as soon as one fails.
func Merge(sources ...Source) Source {
	return &merged{sources: sources}
}

func (m *merged) Events(ctx context.Context) <-chan world.Event {
	out := make(chan world.Event)
	g, gctx := errgroup.WithContext(ctx)

	for _, src := range m.sources {
		g.Go(func() error {
			ch := src.Events(gctx)
			for ev := range ch {
				if !send(gctx, out, ev) {
					// Let the producer observe cancellation and close.
					for range ch {
					}
					return gctx.Err()
				}
			}
			return src.Err()
		})
	}

	go func() {
		m.err = g.Wait()
		close(out)
	}()
	return out
}

func (m *merged) Err() error { return m.err }
