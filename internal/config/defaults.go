package config

import (
	_ "embed"
)

//go:embed defaults/frogger.yaml
var defaultFroggerYAML []byte

// DefaultFroggerConfig returns the built-in configuration.
func DefaultFroggerConfig() FroggerConfig {
	return FroggerConfig{
		Clock: ClockConfig{
			IntervalMs: 10,
		},
		Controls: ControlsConfig{
			Step:           10,
			RepeatWindowMs: 60,
			RepeatDelayMs:  500,
		},
		HUD: HUDConfig{
			FishWarning: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Scoreboard: ScoreboardConfig{
			Limit: 10,
		},
	}
}
