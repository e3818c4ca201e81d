package maze

// Solve returns the path from the entrance to the exit, both inclusive.
// In a perfect maze this path is unique and therefore also the shortest.
// The search is a breadth-first walk over wall-free transitions.
func Solve(m *Maze) []Position {
	return PathBetween(m, m.Entrance(), m.Exit())
}

// PathBetween returns the shortest legal path from start to end, both
// inclusive, or nil if either position is outside the grid or end is
// unreachable.
func PathBetween(m *Maze, start, end Position) []Position {
	if !m.Contains(start) || !m.Contains(end) {
		return nil
	}

	cameFrom := make([]int, len(m.walls))
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	startIdx, endIdx := m.index(start), m.index(end)
	cameFrom[startIdx] = startIdx

	queue := []int{startIdx}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == endIdx {
			break
		}

		p := m.position(curr)
		for _, d := range directions {
			if !CanMove(m, p, d) {
				continue
			}
			next := m.index(p.step(d))
			if cameFrom[next] == -1 {
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}

	if cameFrom[endIdx] == -1 {
		return nil
	}

	var path []Position
	for i := endIdx; ; i = cameFrom[i] {
		path = append(path, m.position(i))
		if i == startIdx {
			break
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// Directions converts a path of adjacent positions into the moves that walk it.
// Non-adjacent consecutive positions end the conversion early.
func Directions(path []Position) []Direction {
	if len(path) < 2 {
		return nil
	}
	out := make([]Direction, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		d, ok := directionBetween(path[i-1], path[i])
		if !ok {
			break
		}
		out = append(out, d)
	}
	return out
}

func directionBetween(from, to Position) (Direction, bool) {
	for _, d := range directions {
		if from.step(d) == to {
			return d, true
		}
	}
	return 0, false
}

// Reachable counts the cells reachable from p through wall-free transitions,
// including p itself. For a valid maze this equals Width()*Height().
func Reachable(m *Maze, p Position) int {
	if !m.Contains(p) {
		return 0
	}
	seen := make([]bool, len(m.walls))
	seen[m.index(p)] = true
	queue := []Position{p}
	count := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		count++
		for _, d := range directions {
			if !CanMove(m, curr, d) {
				continue
			}
			next := curr.step(d)
			if i := m.index(next); !seen[i] {
				seen[i] = true
				queue = append(queue, next)
			}
		}
	}
	return count
}

// OpenEdges counts the internal passages in the maze by inspecting walls.
// Each passage is counted once.
func OpenEdges(m *Maze) int {
	n := 0
	for i := range m.walls {
		p := m.position(i)
		// Right and Bottom cover every internal edge exactly once.
		if CanMove(m, p, Right) {
			n++
		}
		if CanMove(m, p, Bottom) {
			n++
		}
	}
	return n
}
