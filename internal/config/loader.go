package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadLabyrinth loads labyrinth configuration.
// Search order: customPath -> ~/.labyrinth/configs/labyrinth.yaml -> ./configs/labyrinth.yaml -> embedded default
func LoadLabyrinth(customPath string) (LabyrinthConfig, error) {
	// Start from defaults so partial files only override what they name
	cfg := DefaultLabyrinthConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("labyrinth.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
			cfg = DefaultLabyrinthConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "labyrinth.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
		cfg = DefaultLabyrinthConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultLabyrinthYAML, &cfg); err != nil {
		return DefaultLabyrinthConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate checks that board dimensions are usable.
func (cfg LabyrinthConfig) Validate() error {
	if cfg.Board.Width <= 0 || cfg.Board.Height <= 0 {
		return fmt.Errorf("config: board must be at least 1x1, got %dx%d", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Daily.Width <= 0 || cfg.Daily.Height <= 0 {
		return fmt.Errorf("config: daily board must be at least 1x1, got %dx%d", cfg.Daily.Width, cfg.Daily.Height)
	}
	if err := CheckBoardLimit(cfg.Board.Width, cfg.Board.Height); err != nil {
		return err
	}
	return CheckBoardLimit(cfg.Daily.Width, cfg.Daily.Height)
}

// CheckBoardLimit rejects boards with a side longer than MaxBoardSide.
// Non-positive sizes pass through so the maze engine can report them.
func CheckBoardLimit(width, height int) error {
	if width > MaxBoardSide || height > MaxBoardSide {
		return fmt.Errorf("config: board %dx%d exceeds %d cells per side", width, height, MaxBoardSide)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".labyrinth", "configs", filename)
}

// ApplyLabyrinthPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the configured board and disables screen fitting.
func ApplyLabyrinthPreset(cfg *LabyrinthConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Board.FitToScreen = false
		cfg.Daily.FitToScreen = false
		return
	}

	if b, ok := cfg.BoardForPreset(preset); ok {
		cfg.Board = b
	}

	// Hints get cheaper on easy and pricier on hard
	switch preset {
	case DifficultyEasy:
		cfg.Scoring.HintCost /= 2
		cfg.Hints.Length = 0
	case DifficultyHard:
		cfg.Scoring.HintCost *= 2
	}
}
