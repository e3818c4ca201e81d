package maze

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// WallBits serializes the wall layout as a packed bit-matrix: one nibble per
// cell in row-major order, low nibble first. Bit order inside a nibble is
// Top, Right, Bottom, Left. Two mazes with equal WallBits have identical walls.
func WallBits(m *Maze) []byte {
	out := make([]byte, (len(m.walls)+1)/2)
	for i, w := range m.walls {
		if i%2 == 0 {
			out[i/2] |= byte(w & AllWalls)
		} else {
			out[i/2] |= byte(w&AllWalls) << 4
		}
	}
	return out
}

// Fingerprint returns the hex form of WallBits, prefixed with the dimensions
// so that equal bit patterns of different shapes never collide.
func (m *Maze) Fingerprint() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(m.width))
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(m.height))
	sb.WriteByte(':')
	sb.WriteString(hex.EncodeToString(WallBits(m)))
	return sb.String()
}

// String renders the maze as ASCII art, three columns and two rows per cell.
func (m *Maze) String() string {
	return m.Draw(nil)
}

// Draw renders the maze as ASCII art and marks the given path with dots.
func (m *Maze) Draw(path []Position) string {
	onPath := make(map[Position]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	var sb strings.Builder
	sb.Grow((3*m.width + 2) * (2*m.height + 1))

	for y := 0; y < m.height; y++ {
		// Top edge of the row
		for x := 0; x < m.width; x++ {
			sb.WriteByte('+')
			if m.walls[y*m.width+x].Has(Top) {
				sb.WriteString("--")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("+\n")

		// Cell interiors with left walls
		for x := 0; x < m.width; x++ {
			w := m.walls[y*m.width+x]
			if w.Has(Left) {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
			if onPath[Position{X: x, Y: y}] {
				sb.WriteString(" .")
			} else {
				sb.WriteString("  ")
			}
		}
		if m.walls[y*m.width+m.width-1].Has(Right) {
			sb.WriteString("|\n")
		} else {
			sb.WriteString(" \n")
		}
	}

	// Bottom edge of the last row
	for x := 0; x < m.width; x++ {
		sb.WriteByte('+')
		if m.walls[(m.height-1)*m.width+x].Has(Bottom) {
			sb.WriteString("--")
		} else {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("+")

	return sb.String()
}
