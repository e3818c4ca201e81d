package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded LabyrinthConfig
	if err := yaml.Unmarshal(defaultLabyrinthYAML, &embedded); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	def := DefaultLabyrinthConfig()
	if embedded.Board != def.Board {
		t.Errorf("Board = %+v, expected %+v", embedded.Board, def.Board)
	}
	if embedded.Daily != def.Daily {
		t.Errorf("Daily = %+v, expected %+v", embedded.Daily, def.Daily)
	}
	if embedded.Scoring != def.Scoring {
		t.Errorf("Scoring = %+v, expected %+v", embedded.Scoring, def.Scoring)
	}
	for name, b := range def.Presets {
		if embedded.Presets[name] != b {
			t.Errorf("Presets[%s] = %+v, expected %+v", name, embedded.Presets[name], b)
		}
	}
}

func TestLoadLabyrinthCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labyrinth.yaml")
	data := []byte("board:\n  width: 5\n  height: 4\nscoring:\n  base: 50\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadLabyrinth(path)
	if err != nil {
		t.Fatalf("LoadLabyrinth() error = %v", err)
	}
	if cfg.Board.Width != 5 || cfg.Board.Height != 4 {
		t.Errorf("Board = %dx%d, expected 5x4", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Scoring.Base != 50 {
		t.Errorf("Scoring.Base = %d, expected 50", cfg.Scoring.Base)
	}
	// Fields not in the file keep their defaults
	if cfg.Daily != DefaultLabyrinthConfig().Daily {
		t.Errorf("Daily = %+v, expected defaults", cfg.Daily)
	}
}

func TestLoadLabyrinthErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadLabyrinth(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadLabyrinth() with a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadLabyrinth(bad); err == nil {
		t.Error("LoadLabyrinth() with malformed YAML should fail")
	}

	zero := filepath.Join(dir, "zero.yaml")
	if err := os.WriteFile(zero, []byte("board:\n  width: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadLabyrinth(zero); err == nil {
		t.Error("LoadLabyrinth() with a zero-width board should fail validation")
	}
}

func TestApplyLabyrinthPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		w, h     int
		fit      bool
		hintCost int
	}{
		{DifficultyEasy, 8, 6, true, 50},
		{DifficultyNormal, 16, 10, true, 100},
		{DifficultyHard, 30, 18, true, 200},
		{DifficultyFixed, 16, 10, false, 100},
		{"", 16, 10, true, 100},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultLabyrinthConfig()
			ApplyLabyrinthPreset(&cfg, tc.preset)

			if cfg.Board.Width != tc.w || cfg.Board.Height != tc.h {
				t.Errorf("Board = %dx%d, expected %dx%d", cfg.Board.Width, cfg.Board.Height, tc.w, tc.h)
			}
			if cfg.Board.FitToScreen != tc.fit {
				t.Errorf("FitToScreen = %v, expected %v", cfg.Board.FitToScreen, tc.fit)
			}
			if cfg.Scoring.HintCost != tc.hintCost {
				t.Errorf("HintCost = %d, expected %d", cfg.Scoring.HintCost, tc.hintCost)
			}
		})
	}
}

func TestDifficultyPresetValid(t *testing.T) {
	for _, p := range []DifficultyPreset{"", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
		if !p.Valid() {
			t.Errorf("%q.Valid() = false, expected true", p)
		}
	}
	if DifficultyPreset("nightmare").Valid() {
		t.Error("unknown preset should not be valid")
	}
}

func TestScore(t *testing.T) {
	s := ScoringConfig{Base: 1000, MovePenalty: 5, HintCost: 100}

	tests := []struct {
		name                  string
		moves, optimal, hints int
		expected              int
	}{
		{"optimal", 18, 18, 0, 1000},
		{"detour", 28, 18, 0, 950},
		{"hint", 18, 18, 2, 800},
		{"floor at zero", 1000, 18, 5, 0},
		{"fewer than optimal is not rewarded", 10, 18, 0, 1000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Score(tc.moves, tc.optimal, tc.hints)
			if got != tc.expected {
				t.Errorf("Score(%d, %d, %d) = %d, expected %d", tc.moves, tc.optimal, tc.hints, got, tc.expected)
			}
		})
	}
}

func TestFitBoard(t *testing.T) {
	b := BoardConfig{Width: 30, Height: 18, FitToScreen: true}

	got := FitBoard(b, 20, 10)
	if got.Width != 20 || got.Height != 10 {
		t.Errorf("FitBoard() = %dx%d, expected 20x10", got.Width, got.Height)
	}

	got = FitBoard(b, 0, -4)
	if got.Width != 30 || got.Height != 18 {
		t.Errorf("FitBoard() with no limit = %dx%d, expected 30x18", got.Width, got.Height)
	}

	b.FitToScreen = false
	got = FitBoard(b, 5, 5)
	if got.Width != 30 || got.Height != 18 {
		t.Errorf("FitBoard() on a fixed board = %dx%d, expected 30x18", got.Width, got.Height)
	}
}

func TestValidateBoardLimit(t *testing.T) {
	cfg := DefaultLabyrinthConfig()
	cfg.Board.Width = MaxBoardSide
	cfg.Board.Height = MaxBoardSide
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() at the limit error = %v", err)
	}

	cfg.Daily.Height = MaxBoardSide + 1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject a daily board over the limit")
	}
}

func TestCheckBoardLimit(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"small", 10, 10, false},
		{"at limit", MaxBoardSide, MaxBoardSide, false},
		{"too wide", MaxBoardSide + 1, 4, true},
		{"too tall", 4, MaxBoardSide + 1, true},
		{"zero is left to the engine", 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckBoardLimit(tc.w, tc.h)
			if (err != nil) != tc.wantErr {
				t.Errorf("CheckBoardLimit(%d, %d) error = %v, wantErr %v", tc.w, tc.h, err, tc.wantErr)
			}
		})
	}
}
