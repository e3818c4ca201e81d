// Package maze generates seeded perfect mazes and validates movement through them.
// It contains no rendering or input code so that any host (terminal, SSH,
// image export, tests) can drive the same deterministic engine.
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned by ParseDirection for unrecognized input.
var ErrUnknownDirection = errors.New("maze: unknown direction")

// Direction is one of the four cardinal directions.
// The numeric order (Top, Right, Bottom, Left) is the neighbor enumeration
// order used during generation and must not change.
type Direction uint8

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

var directions = [4]Direction{Top, Right, Bottom, Left}

// AllDirections returns the four directions in enumeration order.
func AllDirections() []Direction {
	out := make([]Direction, len(directions))
	copy(out, directions[:])
	return out
}

// Delta returns the coordinate offset of one step in this direction.
// y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Top:
		return 0, -1
	case Right:
		return 1, 0
	case Bottom:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d <= Left
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// wall returns the wall flag on the side facing d.
func (d Direction) wall() Walls {
	return 1 << d
}

// ParseDirection parses a direction name. It accepts the canonical names
// plus the usual aliases (up/down, north/east/south/west and their initials).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "up", "north", "n", "u":
		return Top, nil
	case "right", "east", "e", "r":
		return Right, nil
	case "bottom", "down", "south", "s", "d":
		return Bottom, nil
	case "left", "west", "w", "l":
		return Left, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Walls is a set of wall flags, one bit per side. A set bit means the wall
// is present and the side is impassable.
type Walls uint8

const (
	WallTop Walls = 1 << iota
	WallRight
	WallBottom
	WallLeft

	AllWalls = WallTop | WallRight | WallBottom | WallLeft
)

// Has reports whether the wall facing d is present.
func (w Walls) Has(d Direction) bool {
	return w&d.wall() != 0
}

// Count returns how many walls are present.
func (w Walls) Count() int {
	n := 0
	for _, d := range directions {
		if w.Has(d) {
			n++
		}
	}
	return n
}

// Position is a cell coordinate inside a maze.
// Positions handed out by a Maze or Session are always in bounds.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// step returns the position one cell away in direction d, without bounds checks.
func (p Position) step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Cell is one published grid position with its wall flags.
type Cell struct {
	X, Y  int
	Walls Walls
}

// Maze is a perfect maze over a width x height grid.
// It is immutable once Generate returns it and safe for concurrent reads.
type Maze struct {
	width  int
	height int
	seed   int64
	walls  []Walls // row-major, index = y*width + x
	carved int     // internal wall-pairs removed during carving
}

// Width returns the number of columns.
func (m *Maze) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Maze) Height() int {
	return m.height
}

// Seed returns the seed the maze was generated from.
func (m *Maze) Seed() int64 {
	return m.seed
}

// Carved returns the number of internal wall-pairs removed while carving.
// For a perfect maze this is always Width()*Height()-1. The entrance and
// exit boundary openings are not counted.
func (m *Maze) Carved() int {
	return m.carved
}

// Entrance returns the start cell (0,0).
func (m *Maze) Entrance() Position {
	return Position{}
}

// Exit returns the goal cell (width-1, height-1).
func (m *Maze) Exit() Position {
	return Position{X: m.width - 1, Y: m.height - 1}
}

// Contains reports whether p lies inside the grid.
func (m *Maze) Contains(p Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// Position returns the position (x, y) if it lies inside the grid.
func (m *Maze) Position(x, y int) (Position, bool) {
	p := Position{X: x, Y: y}
	if !m.Contains(p) {
		return Position{}, false
	}
	return p, true
}

// Cell returns the cell at (x, y). Out-of-range coordinates yield a cell
// with all walls present.
func (m *Maze) Cell(x, y int) Cell {
	p := Position{X: x, Y: y}
	if !m.Contains(p) {
		return Cell{X: x, Y: y, Walls: AllWalls}
	}
	return Cell{X: x, Y: y, Walls: m.walls[m.index(p)]}
}

// Cells returns a copy of the grid, indexed [y][x].
func (m *Maze) Cells() [][]Cell {
	rows := make([][]Cell, m.height)
	for y := range rows {
		rows[y] = make([]Cell, m.width)
		for x := range rows[y] {
			rows[y][x] = Cell{X: x, Y: y, Walls: m.walls[y*m.width+x]}
		}
	}
	return rows
}

// HasWall reports whether the wall on p's side facing d is present.
// Positions outside the grid report every wall as present.
func (m *Maze) HasWall(p Position, d Direction) bool {
	if !m.Contains(p) {
		return true
	}
	return m.walls[m.index(p)].Has(d)
}

func (m *Maze) index(p Position) int {
	return p.Y*m.width + p.X
}

func (m *Maze) position(i int) Position {
	return Position{X: i % m.width, Y: i / m.width}
}
