package maze

// State is the lifecycle state of a traversal session.
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Session tracks one player walking through one maze.
// A Session is owned by a single caller; it is not safe for concurrent use.
type Session struct {
	maze     *Maze
	pos      Position
	state    State
	moves    int // accepted moves
	attempts int // all move requests while in progress
}

// NewSession creates a session for m in the NotStarted state.
func NewSession(m *Maze) *Session {
	return &Session{maze: m}
}

// Start places the player on the entrance and moves to InProgress.
// A 1x1 maze is complete immediately. Calling Start on a running or
// completed session restarts it.
func (s *Session) Start() {
	s.pos = s.maze.Entrance()
	s.moves = 0
	s.attempts = 0
	s.state = InProgress
	if IsComplete(s.pos, s.maze) {
		s.state = Completed
	}
}

// Reset returns the session to NotStarted.
func (s *Session) Reset() {
	s.pos = s.maze.Entrance()
	s.moves = 0
	s.attempts = 0
	s.state = NotStarted
}

// Move applies d if it is legal and reports whether the player moved.
// Moves are ignored unless the session is InProgress.
func (s *Session) Move(d Direction) bool {
	if s.state != InProgress {
		return false
	}
	s.attempts++

	next := Move(s.maze, s.pos, d)
	if next == s.pos {
		return false
	}

	s.pos = next
	s.moves++
	if IsComplete(s.pos, s.maze) {
		s.state = Completed
	}
	return true
}

// Maze returns the maze being traversed.
func (s *Session) Maze() *Maze {
	return s.maze
}

// Position returns the player's current cell.
func (s *Session) Position() Position {
	return s.pos
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Moves returns the number of accepted moves.
func (s *Session) Moves() int {
	return s.moves
}

// Attempts returns the number of move requests, legal or not, made while in progress.
func (s *Session) Attempts() int {
	return s.attempts
}

// CanMove reports whether d is legal from the current position.
func (s *Session) CanMove(d Direction) bool {
	return s.state == InProgress && CanMove(s.maze, s.pos, d)
}
