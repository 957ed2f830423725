package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-frogger/internal/config"
	"github.com/vovakirdan/tui-frogger/internal/core"
	"github.com/vovakirdan/tui-frogger/internal/frogger/view"
	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
	"github.com/vovakirdan/tui-frogger/internal/source"
	"github.com/vovakirdan/tui-frogger/internal/storage"
)

// ModelOptions configures a game model.
type ModelOptions struct {
	Config config.FroggerConfig
	Store  *storage.Store // optional run ledger
	Player string
	Logger *log.Logger
	Screen core.RuntimeConfig
}

// Model is the Bubble Tea model for one frogger game. It owns a live
// event source (clock plus keyboard) and folds every event into its engine.
type Model struct {
	engine *world.Engine
	keys   *source.Keys
	src    source.Source
	events <-chan world.Event
	cancel context.CancelFunc

	screen *core.Screen
	styles styleCache
	width  int
	height int
	opts   view.Options

	store  *storage.Store
	player string
	logger *log.Logger

	keyMap GameKeyMap
	help   help.Model

	runSaved bool // the current run is already in the ledger
	quitting bool
}

// NewModel creates a game model and starts its event source.
// Call Stop when the model is no longer used.
func NewModel(opts ModelOptions) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Screen.ScreenW <= 0 || opts.Screen.ScreenH <= 0 {
		opts.Screen = core.DefaultConfig()
	}

	cfg := opts.Config
	keys := source.NewKeys(cfg.Controls.Step, cfg.RepeatWindow(), cfg.RepeatDelay(), logger)
	src := source.Merge(source.NewClock(cfg.Interval()), keys)

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		engine: world.NewEngine(),
		keys:   keys,
		src:    src,
		events: src.Events(ctx),
		cancel: cancel,
		screen: core.NewScreen(opts.Screen.ScreenW, opts.Screen.ScreenH),
		styles: styleCache{},
		width:  opts.Screen.ScreenW,
		height: opts.Screen.ScreenH,
		opts:   view.Options{FishWarning: cfg.HUD.FishWarning},
		store:  opts.Store,
		player: opts.Player,
		logger: logger,
		keyMap: DefaultGameKeyMap(),
		help:   help.New(),
	}
}

// Init starts draining the event source.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case EventMsg:
		return m.handleEvent(msg.Event)

	case SourceDoneMsg:
		if err := m.src.Err(); err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Error("event source stopped", "error", err)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keyMap.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m = m.finish(storage.EndQuit)
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	default:
		m.keys.Press(action)
	}
	return m, nil
}

// handleEvent folds one event into the engine and records finished runs.
func (m Model) handleEvent(ev world.Event) (tea.Model, tea.Cmd) {
	prev := m.engine.Snapshot()
	next, err := m.engine.Apply(ev)
	if err != nil {
		m.logger.Warn("event rejected", "event", fmt.Sprintf("%#v", ev), "error", err)
		return m, waitForEvent(m.events)
	}

	switch {
	case isReset(ev):
		if !m.runSaved && played(prev) {
			m.record(prev, storage.EndReset)
		}
		m.runSaved = false
	case next.GameOver && !prev.GameOver:
		m.record(next, storage.EndGameOver)
		m.runSaved = true
	case next.Level > prev.Level:
		m.logger.Debug("slot captured", "player", m.player, "level", next.Level, "score", next.Score)
	}

	return m, waitForEvent(m.events)
}

// finish records the run in progress, if any, and stops the source.
func (m Model) finish(endedBy string) Model {
	if w := m.engine.Snapshot(); !m.runSaved && played(w) {
		m.record(w, endedBy)
		m.runSaved = true
	}
	m.Stop()
	m.quitting = true
	return m
}

// record saves a run to the ledger on a best-effort basis.
func (m Model) record(w world.World, endedBy string) {
	m.logger.Info("run finished",
		"player", m.player,
		"score", w.Score,
		"level", w.Level,
		"ended_by", endedBy,
	)
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(storage.RunFromWorld(m.player, w, endedBy))
}

// Stop ends the event source. It is safe to call more than once.
func (m Model) Stop() {
	m.keys.Close()
	m.cancel()
}

// Snapshot returns the engine's current world.
func (m Model) Snapshot() world.World {
	return m.engine.Snapshot()
}

// IsQuitting returns true if the user asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// saveScreenshot saves the current frame as plain text.
func (m Model) saveScreenshot() {
	frame := view.Frame(m.engine.Snapshot(), m.width, m.height, m.opts)

	dir := filepath.Join(config.Dir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("frogger_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(frame.String()), 0o600)
}

// View renders the latest snapshot with the help bar below it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keyMap)
	m.screen.Resize(m.width, max(m.height-lipgloss.Height(helpView), 0))
	view.Render(m.screen, m.engine.Snapshot(), m.opts)

	return renderScreen(m.screen, m.styles) + "\n" + helpView
}

func isReset(ev world.Event) bool {
	_, ok := ev.(world.Reset)
	return ok
}

// played reports whether a run has anything worth recording.
func played(w world.World) bool {
	return w.ElapsedTime > 0 || w.Score > 0
}

// Run starts a local game and blocks until the player quits.
func Run(opts ModelOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Stop()
	}
	return err
}
