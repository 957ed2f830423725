package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-frogger/internal/storage"
)

// SessionModel is the top-level model for local and SSH play. It shows
// the game and, on demand, the scoreboard. The game keeps running while
// the scoreboard is open.
type SessionModel struct {
	opts       ModelOptions
	game       Model
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session and starts its game.
func NewSessionModel(opts ModelOptions) SessionModel {
	return SessionModel{
		opts: opts,
		game: NewModel(opts),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Screen.ScreenW = msg.Width
		m.opts.Screen.ScreenH = msg.Height
		if m.scoreboard != nil {
			m.updateScoreboard(msg)
		}
		return m.updateGame(msg)

	case tea.KeyMsg:
		if m.scoreboard != nil {
			return m.updateScoreboard(msg)
		}
		if key.Matches(msg, m.game.keyMap.Scores) {
			sb := NewScoreboardModel(m.opts.Store, m.opts.Player, m.opts.Config.Scoreboard.Limit,
				m.opts.Screen.ScreenW, m.opts.Screen.ScreenH)
			m.scoreboard = &sb
			return m, nil
		}
	}

	return m.updateGame(msg)
}

// updateGame forwards msg to the game model.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if game, ok := newModel.(Model); ok {
		m.game = game
	}
	if m.game.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

// updateScoreboard forwards msg to the open scoreboard.
func (m *SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.game = m.game.finish(storage.EndQuit)
		m.quitting = true
		return *m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.scoreboard = nil
		return *m, nil
	}
	return *m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}
	return m.game.View()
}

// Stop ends the game's event source.
func (m SessionModel) Stop() {
	m.game.Stop()
}
