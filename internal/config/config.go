// Package config provides YAML-based labyrinth configuration loading and
// difficulty presets.
package config

// MaxBoardSide caps the width and height a host accepts from config files
// and command-line flags.
const MaxBoardSide = 256

// LabyrinthConfig contains all configuration for the labyrinth game.
type LabyrinthConfig struct {
	Board   BoardConfig            `yaml:"board"`
	Daily   BoardConfig            `yaml:"daily"`
	Presets map[string]BoardConfig `yaml:"presets"`
	Scoring ScoringConfig          `yaml:"scoring"`
	Hints   HintConfig             `yaml:"hints"`
}

// BoardConfig defines the grid dimensions of a maze.
type BoardConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	FitToScreen bool `yaml:"fit_to_screen"` // shrink the grid when the terminal is too small
}

// ScoringConfig defines how a completed run is scored.
type ScoringConfig struct {
	Base        int `yaml:"base"`         // score for an optimal run
	MovePenalty int `yaml:"move_penalty"` // points lost per move beyond the optimal count
	HintCost    int `yaml:"hint_cost"`    // points lost per hint reveal
}

// HintConfig controls the solution trail.
type HintConfig struct {
	Enabled bool `yaml:"enabled"`
	Length  int  `yaml:"length"` // cells of the trail shown per reveal, 0 = whole path
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Valid reports whether p names a known preset. The empty preset is valid and
// leaves the loaded config untouched.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// IsFixedPreset returns true if the preset pins the board to its configured size.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
