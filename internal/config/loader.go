package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "frogger.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.frogger/configs/frogger.yaml -> ./configs/frogger.yaml -> embedded default.
// Files only need to set the keys they change; everything else keeps its
// default.
func Load(customPath string) (FroggerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FroggerConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return FroggerConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultFroggerYAML)
	if err != nil {
		return DefaultFroggerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (FroggerConfig, error) {
	cfg := DefaultFroggerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FroggerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FroggerConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".frogger", "configs", filename)
}

// Dir returns the per-user frogger directory (~/.frogger), or empty if home
// is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".frogger")
}
