package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-frogger/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameKeyMapMapKey(t *testing.T) {
	km := DefaultGameKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"w", runeKey("w"), core.ActionUp},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"s", runeKey("s"), core.ActionDown},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"a", runeKey("a"), core.ActionLeft},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"d", runeKey("d"), core.ActionRight},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"r", runeKey("r"), core.ActionReset},
		{"?", runeKey("?"), core.ActionHelp},
		{"q", runeKey("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"space is unbound", runeKey(" "), core.ActionNone},
		{"x is unbound", runeKey("x"), core.ActionNone},
		{"tab is not a game action", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestGameKeyMapHelp(t *testing.T) {
	km := DefaultGameKeyMap()

	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp should list bindings")
	}
	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total != 8 {
		t.Errorf("FullHelp lists %d bindings, expected 8", total)
	}
}
