package config

import (
	_ "embed"
)

//go:embed defaults/labyrinth.yaml
var defaultLabyrinthYAML []byte

// DefaultLabyrinthConfig returns the hardcoded labyrinth configuration.
// It mirrors defaults/labyrinth.yaml and is used when the embedded file
// cannot be parsed.
func DefaultLabyrinthConfig() LabyrinthConfig {
	return LabyrinthConfig{
		Board: BoardConfig{
			Width:       16,
			Height:      10,
			FitToScreen: true,
		},
		Daily: BoardConfig{
			Width:       20,
			Height:      9,
			FitToScreen: false,
		},
		Presets: map[string]BoardConfig{
			string(DifficultyEasy):   {Width: 8, Height: 6, FitToScreen: true},
			string(DifficultyNormal): {Width: 16, Height: 10, FitToScreen: true},
			string(DifficultyHard):   {Width: 30, Height: 18, FitToScreen: true},
		},
		Scoring: ScoringConfig{
			Base:        1000,
			MovePenalty: 5,
			HintCost:    100,
		},
		Hints: HintConfig{
			Enabled: true,
			Length:  8,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "labyrinth", "labyrinth_daily":
		return defaultLabyrinthYAML
	default:
		return nil
	}
}
