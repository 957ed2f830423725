package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-frogger/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the stats sidebar
	sidebarWidth       = 22 // Width of stats sidebar
	defaultRunLimit    = 10
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Filter  key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "all / mine"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run ledger screen.
type ScoreboardModel struct {
	store       *storage.Store
	player      string
	limit       int
	mineOnly    bool // show only the current player's runs
	runs        []storage.Run
	stats       storage.Stats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard over store for player.
func NewScoreboardModel(store *storage.Store, player string, limit, width, height int) ScoreboardModel {
	if limit <= 0 {
		limit = defaultRunLimit
	}

	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		store:       store,
		player:      player,
		limit:       limit,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = newRunTable(m.tableWidth(), max(height-8, 3))
	m.load()
	return m
}

func (m ScoreboardModel) tableWidth() int {
	w := m.width - 4 // Margins
	if m.showSidebar {
		w -= sidebarWidth + 3 // Sidebar + border + gap
	}
	return w
}

// runColumns sizes the table columns for the given total width.
func runColumns(width int) []table.Column {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 6},
		{Title: "Waves", Width: 6},
		{Title: "Ended", Width: 10},
		{Title: "Date", Width: 12},
	}
	fixed := 0
	for _, c := range columns[:6] {
		fixed += c.Width
	}
	if spare := width - fixed - 12 - 2*len(columns); spare > 0 {
		columns[1].Width += min(spare, 12)
	}
	return columns
}

func newRunTable(width, height int) table.Model {
	t := table.New(
		table.WithColumns(runColumns(width)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func runRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Player,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Waves),
			r.EndedBy,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// load reads runs and stats from the ledger.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.loadErr = nil, storage.Stats{}, nil
	if m.store != nil {
		if m.mineOnly {
			m.runs, m.loadErr = m.store.PlayerRuns(m.player)
			if len(m.runs) > m.limit {
				m.runs = m.runs[:m.limit]
			}
		} else {
			m.runs, m.loadErr = m.store.TopRuns(m.limit)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats()
		}
	}

	m.table.SetRows(runRows(m.runs))
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.mineOnly = !m.mineOnly
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = newRunTable(m.tableWidth(), max(m.height-8, 3))
		m.table.SetRows(runRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "SESSION SCOREBOARD"
	if m.mineOnly {
		title = fmt.Sprintf("RUNS - %s", m.player)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(m.renderStatsLine())
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableRendered))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders ledger totals next to the table.
func (m ScoreboardModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Session\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Runs:    %d\n", m.stats.Runs)
	fmt.Fprintf(&sb, "Best:    %d\n", m.stats.Best)
	fmt.Fprintf(&sb, "Waves:   %d\n", m.stats.TotalWaves)
	fmt.Fprintf(&sb, "Average: %.1f", m.stats.AverageScore)

	return sidebarStyle.Render(sb.String())
}

// renderStatsLine is the narrow-layout replacement for the sidebar.
func (m ScoreboardModel) renderStatsLine() string {
	line := fmt.Sprintf("runs %d  best %d  waves %d  avg %.1f",
		m.stats.Runs, m.stats.Best, m.stats.TotalWaves, m.stats.AverageScore)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(centerText(line, m.width))
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read the run ledger:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nFinish a run to get on the board!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the game.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
