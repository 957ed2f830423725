// Package tui provides the Bubble Tea integration for the frogger engine.
// It runs the live event source, folds it into an engine and draws snapshots.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

// EventMsg carries one event from the live source into the update loop.
type EventMsg struct {
	Event world.Event
}

// SourceDoneMsg reports that the live source closed.
type SourceDoneMsg struct{}

// waitForEvent returns a command that blocks on the next source event.
// The model re-issues it after every EventMsg, so events are folded one at
// a time in source order.
func waitForEvent(ch <-chan world.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return SourceDoneMsg{}
		}
		return EventMsg{Event: ev}
	}
}
