package maze

// CanMove reports whether a single step from p in direction d is legal:
// the wall on p's side facing d must be absent and the destination must be
// inside the grid. The open entrance and exit sides therefore never count
// as legal moves.
func CanMove(m *Maze, p Position, d Direction) bool {
	if !d.Valid() || !m.Contains(p) {
		return false
	}
	if m.walls[m.index(p)].Has(d) {
		return false
	}
	return m.Contains(p.step(d))
}

// Move returns the position after stepping from p in direction d.
// Illegal moves are not errors: p is returned unchanged.
func Move(m *Maze, p Position, d Direction) Position {
	if !CanMove(m, p, d) {
		return p
	}
	return p.step(d)
}

// IsComplete reports whether p is the exit cell.
func IsComplete(p Position, m *Maze) bool {
	return p == m.Exit()
}

// LegalMoves returns the directions that are legal from p, in enumeration order.
func LegalMoves(m *Maze, p Position) []Direction {
	var out []Direction
	for _, d := range directions {
		if CanMove(m, p, d) {
			out = append(out, d)
		}
	}
	return out
}
