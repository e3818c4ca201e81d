package labyrinth

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateCompleted   GameStateType = "completed"
	StateTooSmall    GameStateType = "paused_small_window"
	StateInvalidMaze GameStateType = "invalid_maze"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Mode        string // "classic" or "daily"
	Seed        int64
	Width       int
	Height      int
	Fingerprint string
	PlayerX     int
	PlayerY     int
	Moves       int
	Attempts    int
	Optimal     int
	Hints       int
	Score       int
	State       GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.genErr != nil:
		state = StateInvalidMaze
	case g.tooSmall || g.session == nil:
		state = StateTooSmall
	case g.Completed():
		state = StateCompleted
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Seed:    g.seed,
		Width:   g.board.Width,
		Height:  g.board.Height,
		Optimal: g.Optimal(),
		Hints:   g.hints,
		Score:   g.score,
		State:   state,
	}
	if g.session != nil {
		p := g.session.Position()
		snap.Fingerprint = g.session.Maze().Fingerprint()
		snap.PlayerX = p.X
		snap.PlayerY = p.Y
		snap.Moves = g.session.Moves()
		snap.Attempts = g.session.Attempts()
	}
	return snap
}
