package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-frogger/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleCache keeps one lipgloss style per colour pair seen on screen.
// A cache belongs to a single model and is not shared across goroutines.
type styleCache map[colorPair]lipgloss.Style

func (c styleCache) style(p colorPair) lipgloss.Style {
	if st, ok := c[p]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if p.fg != core.ColorDefault {
		st = st.Foreground(lipgloss.Color(p.fg))
	}
	if p.bg != core.ColorDefault {
		st = st.Background(lipgloss.Color(p.bg))
	}
	c[p] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, styleCache{})
}

func renderScreen(s *core.Screen, styles styleCache) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := colorPair{cell.Fg, cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Fg, cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
