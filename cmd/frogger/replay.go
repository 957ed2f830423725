package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-frogger/internal/frogger/view"
	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
	"github.com/vovakirdan/tui-frogger/internal/platform/tui"
	"github.com/vovakirdan/tui-frogger/internal/source"
	"github.com/vovakirdan/tui-frogger/internal/storage"
)

var (
	flagRender       bool
	flagRenderWidth  int
	flagRenderHeight int
	flagReplayPlayer string
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>...",
	Short: "Replay event scripts headlessly",
	Long: `Fold each script into a fresh game and print the result.

A script is a YAML list of steps, each one of:
  move: [dx, dy]   - move the player
  score: n         - add points
  reset: true      - start a new run
  tick: t          - advance the clock to time t
  ticks: n         - advance the clock n units
  press: Up        - a key press (Up, Down, Left, Right, Reset)

Replaying a script always produces the same result. Every run is added to
a scoreboard that is printed at the end.

Examples:
  frogger replay cmd/frogger/testdata/splash.yaml
  frogger replay a.yaml b.yaml --render
  frogger replay run.yaml --player bob --width 100 --height 40`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagRender, "render", false, "Print the final frame of each run")
	replayCmd.Flags().IntVar(&flagRenderWidth, "width", 60, "Frame width for --render")
	replayCmd.Flags().IntVar(&flagRenderHeight, "height", 31, "Frame height for --render")
	replayCmd.Flags().StringVar(&flagReplayPlayer, "player", "", "Player name (default: script player or file name)")
}

func runReplay(_ *cobra.Command, args []string) error {
	logger := newLogger("frogger-replay", os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := storage.OpenMemory()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, path := range args {
		if err := replayOne(ctx, logger, store, path); err != nil {
			return err
		}
	}

	return printScoreboard(store)
}

func replayOne(ctx context.Context, logger *log.Logger, store *storage.Store, path string) error {
	script, err := source.LoadScript(path, cfg.Controls.Step)
	if err != nil {
		return err
	}

	player := flagReplayPlayer
	switch {
	case player != "":
	case script.Player != "":
		player = script.Player
	default:
		player = script.Name
	}

	eng := world.NewEngine()
	level, over := 1, false
	eng.Subscribe(func(w world.World) {
		if w.Level != level {
			logger.Debug("level", "script", script.Name, "level", w.Level, "score", w.Score)
			level = w.Level
		}
		if w.GameOver && !over {
			logger.Debug("game over", "script", script.Name, "time", w.ElapsedTime)
		}
		over = w.GameOver
	})

	final, n, err := source.Fold(ctx, eng, script)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	endedBy := storage.EndReplay
	if final.GameOver {
		endedBy = storage.EndGameOver
	}
	run, err := store.SaveRun(storage.RunFromWorld(player, final, endedBy))
	if err != nil {
		return err
	}
	logger.Info("replayed", "script", script.Name, "events", n, "run", run.ID)

	fmt.Printf("%s: %d events, score %d, high score %d, level %d, waves %d, time %.0f",
		script.Name, n, final.Score, final.HighScore, final.Level, final.WavesCleared(), final.ElapsedTime)
	if final.GameOver {
		fmt.Print(", game over")
	}
	fmt.Println()

	if flagRender {
		frame := view.Frame(final, flagRenderWidth, flagRenderHeight, view.Options{FishWarning: cfg.HUD.FishWarning})
		fmt.Println(tui.RenderScreen(frame))
		fmt.Println()
	}
	return nil
}

func printScoreboard(store *storage.Store) error {
	runs, err := store.TopRuns(cfg.Scoreboard.Limit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Scoreboard")
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Waves", "Ended")
	fmt.Printf("  %-4s  %-16s  %-6s  %-5s  %-5s  %s\n", "----", "------", "-----", "-----", "-----", "-----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %-6d  %-5d  %-5d  %s\n", i+1, r.Player, r.Score, r.Level, r.Waves, r.EndedBy)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	best, err := store.HighScore()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f\n", stats.Runs, best, stats.AverageScore)
	return nil
}
