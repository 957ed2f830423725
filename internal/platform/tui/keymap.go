package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-frogger/internal/core"
)

// GameKeyMap defines key bindings for play.
// Implements help.KeyMap for the help bar.
type GameKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Reset  key.Binding
	Scores key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultGameKeyMap returns the standard bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("↑/w", "hop up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("↓/s", "hop down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("←/a", "hop left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("→/d", "hop right"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new run"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scoreboard"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Reset, k.Help, k.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Reset, k.Scores, k.Help, k.Quit},
	}
}

// MapKey translates a key message to a player action.
// Keys without a binding map to ActionNone.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}
