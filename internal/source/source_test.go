package source

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-frogger/internal/core"
	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

func collect(t *testing.T, src Source) []world.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out []world.Event
	for ev := range src.Events(ctx) {
		out = append(out, ev)
	}
	require.NoError(t, src.Err())
	return out
}

func TestScriptEmitsInOrder(t *testing.T) {
	events := []world.Event{
		world.Move{Delta: core.V(0, -10)},
		world.Score{Amount: 1},
		world.Tick{Elapsed: 1},
		world.Reset{},
	}
	s := NewScript(events...)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, events, collect(t, s))
}

func TestScriptCancelled(t *testing.T) {
	s := NewScript(world.Tick{Elapsed: 1}, world.Tick{Elapsed: 2})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for range s.Events(ctx) {
	}
	assert.ErrorIs(t, s.Err(), context.Canceled)
}

func TestFoldIsDeterministic(t *testing.T) {
	script := func() *Script {
		var evs []world.Event
		for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft} {
			evs = append(evs, Translate(a, DefaultStep)...)
		}
		for i := 1; i <= 300; i++ {
			evs = append(evs, world.Tick{Elapsed: float64(i)})
		}
		return NewScript(evs...)
	}

	a, n, err := Fold(context.Background(), world.NewEngine(), script())
	require.NoError(t, err)
	b, m, err := Fold(context.Background(), world.NewEngine(), script())
	require.NoError(t, err)

	assert.Equal(t, 305, n)
	assert.Equal(t, n, m)
	assert.Equal(t, a, b)
	assert.Equal(t, 2, a.Score)
	assert.Equal(t, 300.0, a.ElapsedTime)
}

func TestFoldStopsOnInvalidEvent(t *testing.T) {
	eng := world.NewEngine()
	s := NewScript(world.Score{Amount: 2}, world.Tick{Elapsed: -5}, world.Score{Amount: 2})

	w, n, err := Fold(context.Background(), eng, s)
	require.ErrorIs(t, err, world.ErrInvalidEvent)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, w.Score)
}

func TestFoldNotifiesSubscribers(t *testing.T) {
	eng := world.NewEngine()
	var scores []int
	eng.Subscribe(func(w world.World) { scores = append(scores, w.Score) })

	_, _, err := Fold(context.Background(), eng, NewScript(world.Score{Amount: 1}, world.Score{Amount: 2}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, scores)
}

func TestClockCountsFromOne(t *testing.T) {
	c := NewClock(time.Millisecond).WithLimit(5)

	got := collect(t, c)
	require.Len(t, got, 5)
	for i, ev := range got {
		assert.Equal(t, world.Tick{Elapsed: float64(i + 1)}, ev)
	}
}

func TestClockStopsOnCancel(t *testing.T) {
	c := NewClock(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	ch := c.Events(ctx)
	<-ch
	cancel()
	for range ch {
	}
	assert.ErrorIs(t, c.Err(), context.Canceled)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		action   core.Action
		expected []world.Event
	}{
		{core.ActionUp, []world.Event{world.Move{Delta: core.V(0, -10)}, world.Score{Amount: 1}}},
		{core.ActionDown, []world.Event{world.Move{Delta: core.V(0, 10)}, world.Score{Amount: 1}}},
		{core.ActionLeft, []world.Event{world.Move{Delta: core.V(-10, 0)}}},
		{core.ActionRight, []world.Event{world.Move{Delta: core.V(10, 0)}}},
		{core.ActionReset, []world.Event{world.Reset{}}},
		{core.ActionHelp, nil},
		{core.ActionQuit, nil},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, Translate(tc.action, 10))
		})
	}
}

func TestKeysSuppressRepeats(t *testing.T) {
	k := NewKeys(10, 60*time.Millisecond, 500*time.Millisecond, nil)
	base := time.Unix(0, 0)
	now := base
	k.now = func() time.Time { return now }

	assert.True(t, k.Press(core.ActionUp))
	now = base.Add(30 * time.Millisecond)
	assert.False(t, k.Press(core.ActionUp), "held key repeat")
	assert.True(t, k.Press(core.ActionLeft), "a different key is not a repeat")
	now = base.Add(40 * time.Millisecond)
	assert.True(t, k.Press(core.ActionUp), "only the same action counts as a repeat")
	now = base.Add(300 * time.Millisecond)
	assert.False(t, k.Press(core.ActionUp), "first auto-repeat after the delay")
	now = base.Add(1500 * time.Millisecond)
	assert.True(t, k.Press(core.ActionUp), "a fresh press after the hold ends")
	assert.False(t, k.Press(core.ActionHelp), "help does not reach the engine")
	k.Close()

	got := collect(t, k)
	expected := []world.Event{
		world.Move{Delta: core.V(0, -10)}, world.Score{Amount: 1},
		world.Move{Delta: core.V(-10, 0)},
		world.Move{Delta: core.V(0, -10)}, world.Score{Amount: 1},
		world.Move{Delta: core.V(0, -10)}, world.Score{Amount: 1},
	}
	assert.Equal(t, expected, got)
	assert.False(t, k.Press(core.ActionDown), "closed source rejects presses")
}

func TestKeysHeldKeyIsOnePress(t *testing.T) {
	k := NewKeys(10, DefaultRepeatWindow, DefaultRepeatDelay, nil)
	base := time.Unix(0, 0)
	now := base
	k.now = func() time.Time { return now }

	accepted := 0
	if k.Press(core.ActionUp) {
		accepted++
	}
	for at := 500 * time.Millisecond; at <= 1500*time.Millisecond; at += 30 * time.Millisecond {
		now = base.Add(at)
		if k.Press(core.ActionUp) {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted, "one physical press held for 1.5s")

	now = base.Add(2 * time.Second)
	assert.True(t, k.Press(core.ActionUp), "releasing and pressing again is a new press")
	k.Close()

	got := collect(t, k)
	assert.Equal(t, []world.Event{
		world.Move{Delta: core.V(0, -10)}, world.Score{Amount: 1},
		world.Move{Delta: core.V(0, -10)}, world.Score{Amount: 1},
	}, got)
}

func TestKeysAcceptedPressesAreDelivered(t *testing.T) {
	for range 50 {
		k := NewKeys(10, 0, 0, nil)
		ch := k.Events(context.Background())

		var accepted atomic.Int64
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				if k.Press(core.ActionLeft) {
					accepted.Add(1)
				}
			}
		}()
		k.Close()

		delivered := 0
		for range ch {
			delivered++
		}
		wg.Wait()

		require.NoError(t, k.Err())
		require.Equal(t, int(accepted.Load()), delivered)
		assert.False(t, k.Press(core.ActionLeft), "a drained source rejects presses")
	}
}

func TestMergeKeepsPerSourceOrder(t *testing.T) {
	var a, b []world.Event
	for i := 1; i <= 50; i++ {
		a = append(a, world.Tick{Elapsed: float64(i)})
		b = append(b, world.Score{Amount: i})
	}

	got := collect(t, Merge(NewScript(a...), NewScript(b...)))
	require.Len(t, got, 100)

	var ticks, scores []world.Event
	for _, ev := range got {
		switch ev.(type) {
		case world.Tick:
			ticks = append(ticks, ev)
		case world.Score:
			scores = append(scores, ev)
		}
	}
	assert.Equal(t, a, ticks)
	assert.Equal(t, b, scores)
}

func TestMergeClockAndKeys(t *testing.T) {
	keys := NewKeys(10, 0, 0, nil)
	require.True(t, keys.Press(core.ActionRight))
	keys.Close()

	eng := world.NewEngine()
	w, n, err := Fold(context.Background(), eng, Merge(NewClock(time.Millisecond).WithLimit(3), keys))
	require.NoError(t, err)

	assert.Equal(t, 4, n)
	assert.Equal(t, 3.0, w.ElapsedTime)
	assert.Equal(t, world.SpawnPoint.Add(core.V(10, 0)), w.Player.Position)
}

func TestMergeCancel(t *testing.T) {
	m := Merge(NewClock(time.Millisecond), NewClock(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	ch := m.Events(ctx)
	<-ch
	cancel()
	for range ch {
	}
	assert.ErrorIs(t, m.Err(), context.Canceled)

	_, _, err := Fold(ctx, world.NewEngine(), Merge(NewClock(time.Millisecond)))
	assert.NoError(t, err, "cancellation is a normal stop")
}

func TestParseScript(t *testing.T) {
	data := []byte(`
name: demo
player: alice
steps:
  - press: Up
  - ticks: 3
  - move: [-10, 0]
  - tick: 10
  - score: 5
  - ticks: 1
  - reset: true
`)
	s, err := ParseScript(data, 10)
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	assert.Equal(t, "alice", s.Player)
	assert.Equal(t, []world.Event{
		world.Move{Delta: core.V(0, -10)}, world.Score{Amount: 1},
		world.Tick{Elapsed: 1}, world.Tick{Elapsed: 2}, world.Tick{Elapsed: 3},
		world.Move{Delta: core.V(-10, 0)},
		world.Tick{Elapsed: 10},
		world.Score{Amount: 5},
		world.Tick{Elapsed: 11},
		world.Reset{},
	}, s.events)
}

func TestParseScriptErrors(t *testing.T) {
	tests := map[string]string{
		"empty":         "steps: []",
		"two actions":   "steps:\n  - score: 1\n    reset: true",
		"bad move":      "steps:\n  - move: [1]",
		"unknown press": "steps:\n  - press: Jump",
		"no effect":     "steps:\n  - press: Help",
		"tick back":     "steps:\n  - ticks: 5\n  - tick: 2",
		"negative":      "steps:\n  - score: -3",
		"not yaml":      "steps: [",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScript([]byte(data), 10)
			assert.ErrorIs(t, err, ErrScriptInvalid)
		})
	}
}

func TestLoadScriptNamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - press: Down\n"), 0o644))

	s, err := LoadScript(path, 10)
	require.NoError(t, err)
	assert.Equal(t, "hop", s.Name)
	assert.Equal(t, 2, s.Len())

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"), 10)
	assert.Error(t, err)
}
