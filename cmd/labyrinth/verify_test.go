package main

import (
	"errors"
	"testing"

	"github.com/vovakirdan/labyrinth/internal/maze"
)

func TestVerifySeed(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 1}, {1, 7}, {16, 16}, {31, 9}}
	for _, s := range sizes {
		for seed := int64(-20); seed <= 20; seed++ {
			if err := verifySeed(s[0], s[1], seed); err != nil {
				t.Errorf("verifySeed(%d, %d, %d) = %v", s[0], s[1], seed, err)
			}
		}
	}
}

func TestVerifySeedInvalidDimension(t *testing.T) {
	if err := verifySeed(0, 4, 1); !errors.Is(err, maze.ErrInvalidDimension) {
		t.Errorf("verifySeed(0, 4) error = %v, expected ErrInvalidDimension", err)
	}
}
