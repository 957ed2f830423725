// Package config provides YAML-based configuration loading for the game,
// the terminal front end and the SSH server.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// FroggerConfig contains all runtime configuration.
type FroggerConfig struct {
	Clock      ClockConfig      `yaml:"clock"`
	Controls   ControlsConfig   `yaml:"controls"`
	HUD        HUDConfig        `yaml:"hud"`
	Log        LogConfig        `yaml:"log"`
	Scoreboard ScoreboardConfig `yaml:"scoreboard"`
}

// ClockConfig defines the tick producer.
type ClockConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ControlsConfig defines how key presses become moves.
type ControlsConfig struct {
	Step           float64 `yaml:"step"`
	RepeatWindowMs int     `yaml:"repeat_window_ms"`
	RepeatDelayMs  int     `yaml:"repeat_delay_ms"`
}

// HUDConfig toggles optional heads-up display elements.
type HUDConfig struct {
	FishWarning bool `yaml:"fish_warning"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ScoreboardConfig defines the run scoreboard.
type ScoreboardConfig struct {
	Limit int `yaml:"limit"`
}

// Interval returns the clock period.
func (c FroggerConfig) Interval() time.Duration {
	return time.Duration(c.Clock.IntervalMs) * time.Millisecond
}

// RepeatWindow returns the held-key suppression window.
func (c FroggerConfig) RepeatWindow() time.Duration {
	return time.Duration(c.Controls.RepeatWindowMs) * time.Millisecond
}

// RepeatDelay returns how long after a press the terminal may start
// auto-repeating it.
func (c FroggerConfig) RepeatDelay() time.Duration {
	return time.Duration(c.Controls.RepeatDelayMs) * time.Millisecond
}

// LogLevel parses the configured log level.
func (c FroggerConfig) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}

// Validate reports every setting that cannot be used.
func (c FroggerConfig) Validate() error {
	var errs []error
	if c.Clock.IntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("config: clock.interval_ms must be positive, got %d", c.Clock.IntervalMs))
	}
	if c.Controls.Step <= 0 {
		errs = append(errs, fmt.Errorf("config: controls.step must be positive, got %v", c.Controls.Step))
	}
	if c.Controls.RepeatWindowMs < 0 {
		errs = append(errs, fmt.Errorf("config: controls.repeat_window_ms must not be negative, got %d", c.Controls.RepeatWindowMs))
	}
	if c.Controls.RepeatDelayMs < 0 {
		errs = append(errs, fmt.Errorf("config: controls.repeat_delay_ms must not be negative, got %d", c.Controls.RepeatDelayMs))
	}
	if c.Scoreboard.Limit <= 0 {
		errs = append(errs, fmt.Errorf("config: scoreboard.limit must be positive, got %d", c.Scoreboard.Limit))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
