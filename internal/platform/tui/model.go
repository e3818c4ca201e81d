package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/labyrinth/internal/core"
	"github.com/vovakirdan/labyrinth/internal/games/labyrinth"
	"github.com/vovakirdan/labyrinth/internal/registry"
	"github.com/vovakirdan/labyrinth/internal/storage"
)

// summarizer is implemented by games that can describe the current run.
type summarizer interface {
	Summary() labyrinth.Summary
}

// resizer is implemented by games that adapt to a new screen size
// without starting a new run.
type resizer interface {
	Resize(screenW, screenH int)
}

// resizeGame passes new screen dimensions to the game. Games that cannot
// resize in place are reset.
func resizeGame(game registry.Game, cfg core.RuntimeConfig) {
	if r, ok := game.(resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
		return
	}
	game.Reset(cfg)
}

// recordRun stores the score and the run details of a finished game.
// The run is returned even without a store so callers can announce it.
func recordRun(game registry.Game, store *storage.Store, player string) (storage.Run, bool) {
	s, ok := game.(summarizer)
	if !ok {
		return storage.Run{}, false
	}
	sum := s.Summary()
	run := storage.Run{
		GameID:    sum.GameID,
		Player:    player,
		Seed:      sum.Seed,
		Width:     sum.Width,
		Height:    sum.Height,
		Moves:     sum.Moves,
		Optimal:   sum.Optimal,
		Hints:     sum.Hints,
		Score:     sum.Score,
		Duration:  sum.Duration,
		Completed: sum.Completed,
		CreatedAt: time.Now(),
	}
	if store == nil {
		return run, true
	}

	if run.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		store.SaveScore(run.GameID, run.Score)
	}
	if id, err := store.SaveRun(run); err == nil {
		run.ID = id
	}
	return run, true
}

// Model is the Bubble Tea model for playing a single labyrinth locally.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string
	lastRun    *storage.Run
	quitting   bool
	runSaved   bool // Whether the current finished run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		player:     os.Getenv("USER"),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) || m.inputFrame.Has(core.ActionBack) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The maze in play is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	resizeGame(m.game, m.config)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case !m.gameState.GameOver:
		// Restart starts a fresh run that has to be recorded again
		m.runSaved = false
	case !m.runSaved:
		if run, ok := recordRun(m.game, m.store, m.player); ok {
			m.lastRun = &run
		}
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".labyrinth", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// LastRun returns the most recently recorded run, or nil.
func (m Model) LastRun() *storage.Run {
	return m.lastRun
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for game and returns the last finished
// run, if any.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (*storage.Run, error) {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	if fm, ok := finalModel.(Model); ok {
		return fm.LastRun(), nil
	}
	return nil, nil
}
