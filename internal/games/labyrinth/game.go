// Package labyrinth implements the playable maze on top of the maze engine.
// A run starts at the entrance in the top-left cell and ends when the player
// reaches the exit in the bottom-right cell.
package labyrinth

import (
	"time"

	"github.com/vovakirdan/labyrinth/internal/config"
	"github.com/vovakirdan/labyrinth/internal/core"
	"github.com/vovakirdan/labyrinth/internal/maze"
	"github.com/vovakirdan/labyrinth/internal/registry"
)

// Mode selects how the maze seed and size are chosen.
type Mode string

const (
	ModeClassic Mode = "classic" // seed from runtime config, board from difficulty preset
	ModeDaily   Mode = "daily"   // seed and board shared by everyone on the same UTC day
)

// Screen layout: two HUD lines above the maze, one footer line below.
// Each cell takes three columns and two rows, plus one closing column and row.
const (
	hudHeight    = 2
	footerHeight = 1
	cellW        = 3
	cellH        = 2
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// now is the clock used for the daily seed.
var now = time.Now

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// Game implements the labyrinth game logic.
type Game struct {
	mode Mode

	// Configuration
	cfg      config.LabyrinthConfig
	cfgFixed bool // cfg was supplied by the caller, skip loading
	tickRate int
	screenW  int
	screenH  int
	rng      *maze.RNG
	seed     int64
	board    config.BoardConfig
	genErr   error
	tooSmall bool
	offsetX  int
	offsetY  int

	// Run state
	session    *maze.Session
	solution   []maze.Position
	tick       uint64
	finishTick uint64
	hints      int
	hintShown  bool
	score      int
	paused     bool
}

// New creates a classic labyrinth game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewDaily creates a game that plays the daily challenge.
func NewDaily() *Game {
	return &Game{mode: ModeDaily}
}

// NewWithConfig creates a game that uses cfg instead of loading configuration.
func NewWithConfig(mode Mode, cfg config.LabyrinthConfig) *Game {
	return &Game{mode: mode, cfg: cfg, cfgFixed: true}
}

func init() {
	registry.Register("labyrinth", func() registry.Game {
		return New()
	})
	registry.Register("labyrinth_daily", func() registry.Game {
		return NewDaily()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeDaily {
		return "labyrinth_daily"
	}
	return "labyrinth"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeDaily {
		return "Daily Labyrinth"
	}
	return "Labyrinth"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset generates a new maze and starts a run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.cfgFixed {
		g.loadConfig()
	}

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	seed := cfg.Seed
	if g.mode == ModeDaily {
		seed = maze.DailySeed(now())
	}

	g.rng = maze.NewRNG(seed)
	g.startMaze(g.currentBoard(), seed)
}

// loadConfig loads the labyrinth config and applies the CLI preset.
func (g *Game) loadConfig() {
	cfg, err := config.LoadLabyrinth(configPath)
	if err != nil {
		cfg = config.DefaultLabyrinthConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyLabyrinthPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
}

// startMaze generates the maze for board and seed and starts a fresh session.
func (g *Game) startMaze(board config.BoardConfig, seed int64) {
	g.tick = 0
	g.finishTick = 0
	g.hints = 0
	g.hintShown = false
	g.score = 0
	g.paused = false
	g.genErr = nil
	g.session = nil
	g.solution = nil

	g.seed = seed
	maxW, maxH := MaxBoard(g.screenW, g.screenH)
	g.board = config.FitBoard(board, maxW, maxH)
	if maxW < 1 || maxH < 1 {
		// Generated once the screen grows, see Resize
		g.tooSmall = true
		return
	}
	g.tooSmall = g.board.Width > maxW || g.board.Height > maxH

	m, err := maze.Generate(g.board.Width, g.board.Height, seed)
	if err != nil {
		g.genErr = err
		return
	}

	g.solution = maze.Solve(m)
	g.session = maze.NewSession(m)
	g.session.Start()
	g.layout()

	if g.session.State() == maze.Completed {
		g.complete()
	}
}

// Preview describes the maze the next run starts on.
type Preview struct {
	Day   string // UTC date of the daily challenge, empty in classic mode
	Seed  int64  // 0 in classic mode, where every run draws a fresh seed
	Board config.BoardConfig
}

// Preview returns the board and, for the daily challenge, the seed of the
// next run on a screen of the given size. It does not start a run.
func (g *Game) Preview(screenW, screenH int) Preview {
	if !g.cfgFixed {
		g.loadConfig()
	}
	maxW, maxH := MaxBoard(screenW, screenH)
	p := Preview{Board: config.FitBoard(g.currentBoard(), maxW, maxH)}
	if g.mode == ModeDaily {
		t := now()
		p.Day = t.UTC().Format("2006-01-02")
		p.Seed = maze.DailySeed(t)
	}
	return p
}

// layout centers the maze horizontally below the HUD.
func (g *Game) layout() {
	if g.session == nil {
		return
	}
	m := g.session.Maze()
	g.offsetX = max((g.screenW-(m.Width()*cellW+1))/2, 0)
	g.offsetY = hudHeight
}

// MaxBoard returns the largest grid that fits on a screen of the given size.
func MaxBoard(screenW, screenH int) (w, h int) {
	w = (screenW - 1) / cellW
	h = (screenH - hudHeight - footerHeight - 1) / cellH
	return w, h
}

// Step advances the game by one tick. Every direction queued in the frame
// is applied in order until the exit is reached.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	// Handle restart
	if input.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.Completed() {
		g.paused = !g.paused
	}

	if g.session == nil || g.paused || g.tooSmall || g.Completed() {
		return core.StepResult{State: g.State()}
	}

	// The run clock only advances while the maze is in play
	g.tick++

	if input.Has(core.ActionHint) {
		g.toggleHint()
	}

	moved := false
	for _, d := range directionsFor(input) {
		if !g.session.Move(d) {
			continue
		}
		moved = true
		if g.session.State() == maze.Completed {
			g.complete()
			break
		}
	}

	return core.StepResult{State: g.State(), Moved: moved}
}

// directionsFor returns the directions queued in the frame, oldest first.
// Frames without an ordered queue yield at most one direction.
func directionsFor(input core.InputFrame) []maze.Direction {
	if len(input.Moves) == 0 {
		if d, ok := directionFor(input); ok {
			return []maze.Direction{d}
		}
		return nil
	}
	dirs := make([]maze.Direction, 0, len(input.Moves))
	for _, a := range input.Moves {
		if d, ok := actionDirection(a); ok {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// directionFor maps the first movement action in the frame to a direction.
func directionFor(input core.InputFrame) (maze.Direction, bool) {
	for _, a := range []core.Action{core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft} {
		if input.Has(a) {
			return actionDirection(a)
		}
	}
	return 0, false
}

// actionDirection maps a movement action to a maze direction.
func actionDirection(a core.Action) (maze.Direction, bool) {
	switch a {
	case core.ActionUp:
		return maze.Top, true
	case core.ActionRight:
		return maze.Right, true
	case core.ActionDown:
		return maze.Bottom, true
	case core.ActionLeft:
		return maze.Left, true
	}
	return 0, false
}

// restart starts a new run. Classic mode draws a new seed from the game RNG;
// the daily challenge replays the same maze.
func (g *Game) restart() {
	if g.rng == nil {
		return
	}
	seed := g.seed
	if g.mode == ModeClassic {
		seed = g.rng.Int63()
	}
	g.startMaze(g.currentBoard(), seed)
}

// currentBoard returns the configured board for the game mode.
func (g *Game) currentBoard() config.BoardConfig {
	if g.mode == ModeDaily {
		return g.cfg.Daily
	}
	return g.cfg.Board
}

// toggleHint shows or hides the trail towards the exit. Each reveal counts
// against the score.
func (g *Game) toggleHint() {
	if !g.cfg.Hints.Enabled {
		return
	}
	g.hintShown = !g.hintShown
	if g.hintShown {
		g.hints++
	}
}

// complete records the final score of a finished run.
func (g *Game) complete() {
	g.finishTick = g.tick
	g.hintShown = false
	g.score = g.cfg.Scoring.Score(g.session.Moves(), g.Optimal(), g.hints)
}

// Resize adapts the layout to a new screen size without regenerating the maze.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW = screenW
	g.screenH = screenH
	if g.session == nil {
		if g.genErr == nil && g.rng != nil {
			g.startMaze(g.currentBoard(), g.seed)
		}
		return
	}
	maxW, maxH := MaxBoard(screenW, screenH)
	m := g.session.Maze()
	g.tooSmall = m.Width() > maxW || m.Height() > maxH
	g.layout()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.Completed(),
		Paused:   g.paused,
	}
}

// Completed reports whether the player has reached the exit.
func (g *Game) Completed() bool {
	return g.session != nil && g.session.State() == maze.Completed
}

// Maze returns the maze of the current run, or nil if generation failed.
func (g *Game) Maze() *maze.Maze {
	if g.session == nil {
		return nil
	}
	return g.session.Maze()
}

// Position returns the player's current cell.
func (g *Game) Position() maze.Position {
	if g.session == nil {
		return maze.Position{}
	}
	return g.session.Position()
}

// Optimal returns the number of moves on the shortest route to the exit.
func (g *Game) Optimal() int {
	return max(len(g.solution)-1, 0)
}

// Hint returns the trail currently revealed to the player, starting at the
// cell after the player's position. It is empty unless a hint is shown.
func (g *Game) Hint() []maze.Position {
	if !g.hintShown || g.session == nil {
		return nil
	}
	path := maze.PathBetween(g.session.Maze(), g.session.Position(), g.session.Maze().Exit())
	if len(path) < 2 {
		return nil
	}
	path = path[1:]
	if n := g.cfg.Hints.Length; n > 0 && len(path) > n {
		path = path[:n]
	}
	return path
}

// Err returns the maze generation error of the current run, if any.
func (g *Game) Err() error {
	return g.genErr
}

// Elapsed returns the in-game time of the run, frozen once completed.
func (g *Game) Elapsed() time.Duration {
	if g.tickRate <= 0 {
		return 0
	}
	ticks := g.tick
	if g.Completed() {
		ticks = g.finishTick
	}
	return time.Duration(ticks) * time.Second / time.Duration(g.tickRate)
}

// Summary describes a run for persistence.
type Summary struct {
	GameID    string
	Seed      int64
	Width     int
	Height    int
	Moves     int
	Optimal   int
	Hints     int
	Score     int
	Duration  time.Duration
	Completed bool
}

// Summary returns the summary of the current run.
func (g *Game) Summary() Summary {
	s := Summary{
		GameID:    g.ID(),
		Seed:      g.seed,
		Width:     g.board.Width,
		Height:    g.board.Height,
		Optimal:   g.Optimal(),
		Hints:     g.hints,
		Score:     g.score,
		Duration:  g.Elapsed(),
		Completed: g.Completed(),
	}
	if g.session != nil {
		s.Moves = g.session.Moves()
	}
	return s
}
