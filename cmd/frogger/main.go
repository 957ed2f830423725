// frogger is a deterministic Frogger-style arcade game for the terminal.
//
// Usage:
//
//	frogger play                  - Play a game locally
//	frogger serve                 - Start SSH server for remote play
//	frogger replay <script.yaml>  - Replay recorded event scripts headlessly
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.frogger/configs/frogger.yaml)
//	--log-level <lvl>   - debug, info, warn or error (overrides log.level)
//	--log-file <path>   - Append logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-frogger/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// Loaded by the root command before any subcommand runs.
var (
	cfg     config.FroggerConfig
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "frogger",
	Short: "Frogger - hop across the road and the river in your terminal",
	Long: `Frogger is a deterministic arcade engine with a terminal front end.

Available commands:
  play     - Play a game locally
  serve    - Start SSH server for remote play
  replay   - Replay event scripts and print their results

Examples:
  frogger play
  frogger serve --port 2222
  frogger replay cmd/frogger/testdata/splash.yaml --render`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}
	if _, err := loaded.LogLevel(); err != nil {
		return err
	}
	cfg = loaded

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
	}
	return nil
}

// newLogger builds a logger at the configured level. Without --log-file
// output goes to fallback.
func newLogger(prefix string, fallback io.Writer) *log.Logger {
	var out io.Writer = fallback
	if logFile != nil {
		out = logFile
	}
	level, _ := cfg.LogLevel() // Validated in loadConfig
	return log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}
