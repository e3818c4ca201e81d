package maze

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension is returned when width or height is not positive.
var ErrInvalidDimension = errors.New("maze: invalid dimension")

// Generate builds a perfect maze of width x height cells from seed.
//
// Carving is a randomized depth-first backtracker over an explicit stack,
// starting at the entrance. Unvisited neighbors are enumerated in the fixed
// order Top, Right, Bottom, Left and one is picked with the seeded RNG, so
// the same (width, height, seed) always produces the same walls. Once every
// cell is visited the entrance top wall and the exit bottom wall are opened.
func Generate(width, height int, seed int64) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d must be positive", ErrInvalidDimension, width, height)
	}

	m := &Maze{
		width:  width,
		height: height,
		seed:   seed,
		walls:  make([]Walls, width*height),
	}
	for i := range m.walls {
		m.walls[i] = AllWalls
	}

	m.carve(NewRNG(seed))

	// Boundary openings are not graph edges and are not counted in carved.
	m.walls[m.index(m.Entrance())] &^= WallTop
	m.walls[m.index(m.Exit())] &^= WallBottom

	return m, nil
}

// MustGenerate is like Generate but panics on invalid dimensions.
// Intended for tests and fixed, known-good sizes.
func MustGenerate(width, height int, seed int64) *Maze {
	m, err := Generate(width, height, seed)
	if err != nil {
		panic(err)
	}
	return m
}

// carve removes walls along a random DFS spanning tree rooted at the entrance.
func (m *Maze) carve(rng *RNG) {
	visited := make([]bool, len(m.walls))
	stack := make([]int, 0, len(m.walls))

	start := m.index(m.Entrance())
	visited[start] = true
	stack = append(stack, start)

	var candidates [4]Direction
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		p := m.position(curr)

		n := 0
		for _, d := range directions {
			next := p.step(d)
			if m.Contains(next) && !visited[m.index(next)] {
				candidates[n] = d
				n++
			}
		}

		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(n)]
		next := m.index(p.step(d))

		m.walls[curr] &^= d.wall()
		m.walls[next] &^= d.Opposite().wall()
		m.carved++

		visited[next] = true
		stack = append(stack, next)
	}
}
