package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-frogger/internal/core"
	"github.com/vovakirdan/tui-frogger/internal/platform/tui"
	"github.com/vovakirdan/tui-frogger/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in the terminal.

Controls:
  W/Up, S/Down  - Hop up/down (one point per hop)
  A/Left, D/Right - Hop left/right
  R             - Start a new run (keeps the high score)
  Tab           - Session scoreboard
  ?             - Toggle help
  Ctrl+S        - Save a text screenshot to ~/.frogger/screenshots
  Q/Ctrl+C      - Quit

Runs are recorded in a scoreboard that lasts until the program exits.

Examples:
  frogger play
  frogger play --player alice
  frogger play --log-file frogger.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name on the scoreboard")
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Get terminal size early so the first frame fits
	screen := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		screen.ScreenW = w
		screen.ScreenH = h
	}

	// The alternate screen owns stderr while playing.
	logger := newLogger("frogger", io.Discard)

	store, err := storage.OpenMemory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run ledger: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.ModelOptions{
		Config: cfg,
		Store:  store,
		Player: flagPlayer,
		Logger: logger,
		Screen: screen,
	})

	if store != nil {
		if stats, statsErr := store.Stats(); statsErr == nil && stats.Runs > 0 {
			fmt.Printf("Runs: %d  Best: %d  Waves cleared: %d\n", stats.Runs, stats.Best, stats.TotalWaves)
		}
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
