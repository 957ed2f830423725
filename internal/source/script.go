package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-frogger/internal/core"
	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

// ErrScriptInvalid is wrapped by every script parsing error.
var ErrScriptInvalid = errors.New("invalid script")

// Script is a finite, fixed sequence of events. Replaying the same script
// into a fresh engine always ends in the same snapshot.
type Script struct {
	Name   string
	Player string

	events []world.Event
	err    error
}

// NewScript returns a script that emits events in order.
func NewScript(events ...world.Event) *Script {
	return &Script{events: events}
}

// Len returns the number of events in the script.
func (s *Script) Len() int {
	return len(s.events)
}

func (s *Script) Events(ctx context.Context) <-chan world.Event {
	out := make(chan world.Event)
	go func() {
		defer close(out)
		for _, ev := range s.events {
			if !send(ctx, out, ev) {
				s.err = ctx.Err()
				return
			}
		}
	}()
	return out
}

func (s *Script) Err() error { return s.err }

// scriptFile is the on-disk replay format:
//
//	name: first wave
//	player: alice
//	steps:
//	  - press: Up
//	  - ticks: 100
//	  - move: [-10, 0]
//	  - tick: 250
//	  - score: 5
//	  - reset: true
type scriptFile struct {
	Name   string       `yaml:"name"`
	Player string       `yaml:"player"`
	Steps  []scriptStep `yaml:"steps"`
}

// scriptStep holds exactly one of its fields.
type scriptStep struct {
	Move  []float64 `yaml:"move"`
	Score *int      `yaml:"score"`
	Reset bool      `yaml:"reset"`
	Tick  *float64  `yaml:"tick"`
	Ticks int       `yaml:"ticks"`
	Press string    `yaml:"press"`
}

// LoadScript reads a replay script from path. step is the Move magnitude
// used for press steps.
func LoadScript(path string, step float64) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: cannot read script %s: %w", path, err)
	}
	s, err := ParseScript(data, step)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseScript decodes a replay script. Ticks keep a running counter:
// "ticks: n" continues from the last tick, "tick: t" jumps to t.
func ParseScript(data []byte, step float64) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("source: %w: %w", ErrScriptInvalid, err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("source: %w: no steps", ErrScriptInvalid)
	}

	s := &Script{Name: f.Name, Player: f.Player}
	var clock float64
	for i, st := range f.Steps {
		events, err := st.events(step, &clock)
		if err != nil {
			return nil, fmt.Errorf("source: %w: step %d: %w", ErrScriptInvalid, i+1, err)
		}
		for _, ev := range events {
			if err := world.ValidateEvent(ev); err != nil {
				return nil, fmt.Errorf("source: %w: step %d: %w", ErrScriptInvalid, i+1, err)
			}
		}
		s.events = append(s.events, events...)
	}
	return s, nil
}

func (st scriptStep) events(step float64, clock *float64) ([]world.Event, error) {
	set := 0
	for _, present := range []bool{st.Move != nil, st.Score != nil, st.Reset, st.Tick != nil, st.Ticks != 0, st.Press != ""} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("want exactly one action, got %d", set)
	}

	switch {
	case st.Move != nil:
		if len(st.Move) != 2 {
			return nil, fmt.Errorf("move needs [dx, dy], got %v", st.Move)
		}
		return []world.Event{world.Move{Delta: core.V(st.Move[0], st.Move[1])}}, nil
	case st.Score != nil:
		return []world.Event{world.Score{Amount: *st.Score}}, nil
	case st.Reset:
		return []world.Event{world.Reset{}}, nil
	case st.Tick != nil:
		if *st.Tick < *clock {
			return nil, fmt.Errorf("tick %v goes back from %v", *st.Tick, *clock)
		}
		*clock = *st.Tick
		return []world.Event{world.Tick{Elapsed: *clock}}, nil
	case st.Ticks < 0:
		return nil, fmt.Errorf("negative tick count %d", st.Ticks)
	case st.Ticks > 0:
		out := make([]world.Event, st.Ticks)
		for i := range out {
			*clock++
			out[i] = world.Tick{Elapsed: *clock}
		}
		return out, nil
	default:
		a, ok := core.ParseAction(st.Press)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", st.Press)
		}
		events := Translate(a, step)
		if len(events) == 0 {
			return nil, fmt.Errorf("action %s has no game effect", a)
		}
		return events, nil
	}
}
