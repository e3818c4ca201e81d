package main

import (
	"errors"
	"testing"

	"github.com/vovakirdan/labyrinth/internal/config"
	"github.com/vovakirdan/labyrinth/internal/maze"
)

func TestGenerateSizeExplicitZero(t *testing.T) {
	savedW, savedH := flagWidth, flagHeight
	defer func() { flagWidth, flagHeight = savedW, savedH }()

	board := config.BoardConfig{Width: 16, Height: 10}

	flagWidth, flagHeight = 0, 0
	if w, h := generateSize(board, false, false); w != 16 || h != 10 {
		t.Errorf("generateSize() without flags = %dx%d, expected 16x10", w, h)
	}

	w, h := generateSize(board, true, false)
	if w != 0 || h != 10 {
		t.Fatalf("generateSize() with --width 0 = %dx%d, expected 0x10", w, h)
	}
	if _, err := maze.Generate(w, h, 1); !errors.Is(err, maze.ErrInvalidDimension) {
		t.Errorf("Generate(%d, %d) error = %v, expected ErrInvalidDimension", w, h, err)
	}

	flagHeight = 5
	if w, h := generateSize(board, false, true); w != 16 || h != 5 {
		t.Errorf("generateSize() with --height 5 = %dx%d, expected 16x5", w, h)
	}
}

func TestWalk(t *testing.T) {
	m := maze.MustGenerate(2, 1, 0)

	tests := []struct {
		name     string
		moves    string
		end      maze.Position
		accepted int
		attempts int
		complete bool
	}{
		{"empty", "", maze.Position{X: 0, Y: 0}, 0, 0, false},
		{"straight to exit", "r", maze.Position{X: 1, Y: 0}, 1, 1, true},
		{"blocked first", "left, right", maze.Position{X: 1, Y: 0}, 1, 2, true},
		{"out of the entrance", "up", maze.Position{X: 0, Y: 0}, 0, 1, false},
		{"ignored after exit", "e,w,w", maze.Position{X: 1, Y: 0}, 1, 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := walk(m, tc.moves)
			if err != nil {
				t.Fatalf("walk(%q) failed: %v", tc.moves, err)
			}
			if res.End != tc.end {
				t.Errorf("End = %v, expected %v", res.End, tc.end)
			}
			if res.Moves != tc.accepted {
				t.Errorf("Moves = %d, expected %d", res.Moves, tc.accepted)
			}
			if res.Attempts != tc.attempts {
				t.Errorf("Attempts = %d, expected %d", res.Attempts, tc.attempts)
			}
			if res.Complete != tc.complete {
				t.Errorf("Complete = %t, expected %t", res.Complete, tc.complete)
			}
		})
	}
}

func TestWalkUnknownDirection(t *testing.T) {
	m := maze.MustGenerate(3, 3, 1)
	if _, err := walk(m, "r,sideways"); !errors.Is(err, maze.ErrUnknownDirection) {
		t.Errorf("walk() error = %v, expected ErrUnknownDirection", err)
	}
}
