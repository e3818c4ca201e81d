package maze_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vovakirdan/labyrinth/internal/maze"
)

var testSizes = []struct {
	w, h int
}{
	{1, 1},
	{2, 1},
	{1, 2},
	{3, 3},
	{10, 10},
	{17, 5},
	{5, 23},
	{40, 30},
}

var testSeeds = []int64{0, 1, 42, -1, -987654321, 1 << 40, 9223372036854775807}

func TestGenerateDeterminism(t *testing.T) {
	for _, size := range testSizes {
		for _, seed := range testSeeds {
			a := maze.MustGenerate(size.w, size.h, seed)
			b := maze.MustGenerate(size.w, size.h, seed)

			if !bytes.Equal(maze.WallBits(a), maze.WallBits(b)) {
				t.Errorf("Generate(%d, %d, %d) not deterministic", size.w, size.h, seed)
			}
			if a.Fingerprint() != b.Fingerprint() {
				t.Errorf("Fingerprint mismatch for (%d, %d, %d)", size.w, size.h, seed)
			}
		}
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	a := maze.MustGenerate(20, 20, 1)
	b := maze.MustGenerate(20, 20, 2)

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("Different seeds should produce different 20x20 mazes")
	}
}

func TestGenerateConnectivity(t *testing.T) {
	for _, size := range testSizes {
		for _, seed := range testSeeds {
			m := maze.MustGenerate(size.w, size.h, seed)

			got := maze.Reachable(m, m.Entrance())
			if got != size.w*size.h {
				t.Errorf("Reachable(%dx%d seed=%d) = %d, expected %d", size.w, size.h, seed, got, size.w*size.h)
			}
		}
	}
}

func TestGenerateAcyclic(t *testing.T) {
	for _, size := range testSizes {
		for _, seed := range testSeeds {
			m := maze.MustGenerate(size.w, size.h, seed)
			expected := size.w*size.h - 1

			if m.Carved() != expected {
				t.Errorf("Carved() = %d, expected %d for %dx%d seed=%d", m.Carved(), expected, size.w, size.h, seed)
			}
			// Cross-check against the wall data itself
			if edges := maze.OpenEdges(m); edges != expected {
				t.Errorf("OpenEdges() = %d, expected %d for %dx%d seed=%d", edges, expected, size.w, size.h, seed)
			}
		}
	}
}

func TestGenerateBoundaryCarving(t *testing.T) {
	for _, size := range testSizes {
		for _, seed := range testSeeds {
			m := maze.MustGenerate(size.w, size.h, seed)

			if m.HasWall(m.Entrance(), maze.Top) {
				t.Errorf("Entrance top wall present for %dx%d seed=%d", size.w, size.h, seed)
			}
			if m.HasWall(m.Exit(), maze.Bottom) {
				t.Errorf("Exit bottom wall present for %dx%d seed=%d", size.w, size.h, seed)
			}
		}
	}
}

func TestGenerateOuterWallsIntact(t *testing.T) {
	m := maze.MustGenerate(12, 9, 7)

	for x := 0; x < m.Width(); x++ {
		top := m.Cell(x, 0)
		if x != 0 && top.Walls&maze.WallTop == 0 {
			t.Errorf("Top border open at x=%d", x)
		}
		bottom := m.Cell(x, m.Height()-1)
		if x != m.Width()-1 && bottom.Walls&maze.WallBottom == 0 {
			t.Errorf("Bottom border open at x=%d", x)
		}
	}
	for y := 0; y < m.Height(); y++ {
		if !m.HasWall(maze.Position{X: 0, Y: y}, maze.Left) {
			t.Errorf("Left border open at y=%d", y)
		}
		if !m.HasWall(maze.Position{X: m.Width() - 1, Y: y}, maze.Right) {
			t.Errorf("Right border open at y=%d", y)
		}
	}
}

func TestGenerateWallsSymmetric(t *testing.T) {
	m := maze.MustGenerate(15, 11, 99)

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := maze.Position{X: x, Y: y}
			if x+1 < m.Width() {
				right := maze.Position{X: x + 1, Y: y}
				if m.HasWall(p, maze.Right) != m.HasWall(right, maze.Left) {
					t.Errorf("Asymmetric vertical wall between %v and %v", p, right)
				}
			}
			if y+1 < m.Height() {
				below := maze.Position{X: x, Y: y + 1}
				if m.HasWall(p, maze.Bottom) != m.HasWall(below, maze.Top) {
					t.Errorf("Asymmetric horizontal wall between %v and %v", p, below)
				}
			}
		}
	}
}

func TestGenerateInvalidDimension(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"both zero", 0, 0},
		{"negative width", -3, 4},
		{"negative height", 4, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := maze.Generate(tc.w, tc.h, 42)
			if !errors.Is(err, maze.ErrInvalidDimension) {
				t.Errorf("Generate(%d, %d) error = %v, expected ErrInvalidDimension", tc.w, tc.h, err)
			}
			if m != nil {
				t.Error("Generate should not return a maze on error")
			}
		})
	}
}

func TestGenerateLargeDimensions(t *testing.T) {
	sizes := [][2]int{{257, 1}, {1, 300}, {1000, 2}}
	for _, s := range sizes {
		m, err := maze.Generate(s[0], s[1], 1)
		if err != nil {
			t.Fatalf("Generate(%d, %d) failed: %v", s[0], s[1], err)
		}
		if got := maze.Reachable(m, m.Entrance()); got != s[0]*s[1] {
			t.Errorf("Generate(%d, %d): reachable = %d, expected %d", s[0], s[1], got, s[0]*s[1])
		}
	}
}

func TestGenerateTwoByOne(t *testing.T) {
	m, err := maze.Generate(2, 1, 0)
	if err != nil {
		t.Fatalf("Generate(2, 1, 0) failed: %v", err)
	}

	if m.Carved() != 1 {
		t.Errorf("Carved() = %d, expected 1", m.Carved())
	}
	if m.HasWall(maze.Position{X: 0, Y: 0}, maze.Right) || m.HasWall(maze.Position{X: 1, Y: 0}, maze.Left) {
		t.Error("The only internal wall should be removed")
	}
	if m.HasWall(m.Entrance(), maze.Top) || m.HasWall(m.Exit(), maze.Bottom) {
		t.Error("Boundary openings missing")
	}

	// Remaining walls: entrance has left and bottom, exit has top and right
	if got := m.Cell(0, 0).Walls; got != maze.WallLeft|maze.WallBottom {
		t.Errorf("Entrance walls = %04b, expected %04b", got, maze.WallLeft|maze.WallBottom)
	}
	if got := m.Cell(1, 0).Walls; got != maze.WallTop|maze.WallRight {
		t.Errorf("Exit walls = %04b, expected %04b", got, maze.WallTop|maze.WallRight)
	}
}

func TestGenerateSingleCell(t *testing.T) {
	m := maze.MustGenerate(1, 1, 5)

	if m.Carved() != 0 {
		t.Errorf("Carved() = %d, expected 0", m.Carved())
	}
	if m.Entrance() != m.Exit() {
		t.Errorf("Entrance %v should equal exit %v", m.Entrance(), m.Exit())
	}
	if got := m.Cell(0, 0).Walls; got != maze.WallLeft|maze.WallRight {
		t.Errorf("Walls = %04b, expected left and right only", got)
	}
}

func TestCellsIsCopy(t *testing.T) {
	m := maze.MustGenerate(4, 4, 3)
	before := m.Fingerprint()

	cells := m.Cells()
	for y := range cells {
		for x := range cells[y] {
			if cells[y][x].X != x || cells[y][x].Y != y {
				t.Errorf("Cells()[%d][%d] has coordinates (%d, %d)", y, x, cells[y][x].X, cells[y][x].Y)
			}
			cells[y][x].Walls = maze.AllWalls
		}
	}

	if m.Fingerprint() != before {
		t.Error("Mutating Cells() result should not change the maze")
	}
}

func TestRNGDeterministic(t *testing.T) {
	for _, seed := range testSeeds {
		a := maze.NewRNG(seed)
		b := maze.NewRNG(seed)
		for i := 0; i < 1000; i++ {
			fa, fb := a.Float64(), b.Float64()
			if fa != fb {
				t.Fatalf("seed %d: draw %d differs: %v vs %v", seed, i, fa, fb)
			}
			if fa < 0 || fa >= 1 {
				t.Fatalf("seed %d: Float64() = %v out of [0,1)", seed, fa)
			}
		}
	}
}

func TestRNGIntn(t *testing.T) {
	r := maze.NewRNG(-7)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		v := r.Intn(4)
		if v < 0 || v >= 4 {
			t.Fatalf("Intn(4) = %d out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("Intn(4) produced %d distinct values, expected 4", len(seen))
	}
	if r.Intn(0) != 0 || r.Intn(-3) != 0 {
		t.Error("Intn(n <= 0) should return 0")
	}
}
