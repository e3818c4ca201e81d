package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/labyrinth/internal/config"
	"github.com/vovakirdan/labyrinth/internal/core"
	"github.com/vovakirdan/labyrinth/internal/games/labyrinth"
	"github.com/vovakirdan/labyrinth/internal/maze"
	"github.com/vovakirdan/labyrinth/internal/session"
	"github.com/vovakirdan/labyrinth/internal/storage"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}

// corridorGame returns a game on a 2x1 board that one Right move solves.
func corridorGame() *labyrinth.Game {
	cfg := config.DefaultLabyrinthConfig()
	cfg.Board = config.BoardConfig{Width: 2, Height: 1}
	return labyrinth.NewWithConfig(labyrinth.ModeClassic, cfg)
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestModelRecordsCompletedRun(t *testing.T) {
	store := openTestStore(t)
	m := NewModel(corridorGame(), store, testConfig)
	m.player = "tester"
	m.Init()

	var model tea.Model = m
	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	model = update(t, model, TickMsg{})
	model = update(t, model, TickMsg{})

	got := model.(Model)
	run := got.LastRun()
	if run == nil {
		t.Fatal("LastRun() = nil after escaping the maze")
	}
	if run.Moves != 1 || run.Optimal != 1 || !run.Completed {
		t.Errorf("run = %+v, expected 1/1 completed", *run)
	}
	if run.ID == "" {
		t.Error("run should have been stored with an ID")
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d runs, expected exactly 1", len(runs))
	}
	if runs[0].Player != "tester" || runs[0].GameID != "labyrinth" {
		t.Errorf("stored run = %+v", runs[0])
	}

	best, err := store.HighScore("labyrinth")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if best != run.Score {
		t.Errorf("HighScore() = %d, expected %d", best, run.Score)
	}
}

func TestModelAppliesEveryKeyBeforeTick(t *testing.T) {
	cfg := config.DefaultLabyrinthConfig()
	cfg.Board = config.BoardConfig{Width: 3, Height: 1}
	game := labyrinth.NewWithConfig(labyrinth.ModeClassic, cfg)
	m := NewModel(game, nil, testConfig)
	m.Init()

	var model tea.Model = m
	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyLeft})
	update(t, model, TickMsg{})

	if got := game.Position(); got != (maze.Position{X: 0, Y: 0}) {
		t.Errorf("Position() = %v, expected the entrance", got)
	}
	if got := game.Summary().Moves; got != 2 {
		t.Errorf("Moves = %d, expected 2", got)
	}
}

func TestModelRestartRecordsAgain(t *testing.T) {
	store := openTestStore(t)
	var model tea.Model = NewModel(corridorGame(), store, testConfig)
	model.Init()

	for range 2 {
		model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
		model = update(t, model, TickMsg{})
		model = update(t, model, runeKey('r'))
		model = update(t, model, TickMsg{})
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("RecentRuns() returned %d runs, expected 2", len(runs))
	}
}

func TestModelWithoutStore(t *testing.T) {
	var model tea.Model = NewModel(corridorGame(), nil, testConfig)
	model.Init()
	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	model = update(t, model, TickMsg{})

	run := model.(Model).LastRun()
	if run == nil || run.ID != "" {
		t.Errorf("LastRun() = %+v, expected an unsaved run", run)
	}
}

func TestModelQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), runeKey('b'), {Type: tea.KeyEsc}} {
		var model tea.Model = NewModel(corridorGame(), nil, testConfig)
		model.Init()
		next, cmd := model.Update(msg)
		if cmd == nil {
			t.Errorf("%q should return a quit command", msg.String())
		}
		if next.View() != "" {
			t.Errorf("%q: View() should be empty after quitting", msg.String())
		}
	}
}

func TestModelResizeKeepsMaze(t *testing.T) {
	g := labyrinth.NewWithConfig(labyrinth.ModeClassic, config.DefaultLabyrinthConfig())
	var model tea.Model = NewModel(g, nil, testConfig)
	model.Init()

	before := g.Maze().Fingerprint()
	model = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.Maze().Fingerprint() != before {
		t.Error("Resize should keep the maze in play")
	}
	if !strings.Contains(model.View(), "@") {
		t.Error("View() should show the player after resize")
	}
}

func TestSessionModelNotices(t *testing.T) {
	info := session.Info{ID: session.NewID(), User: "alice"}
	var model tea.Model = NewSessionModel(nil, testConfig, session.NewRegistry(), nil, info, nil)

	model = update(t, model, sessionEventMsg(session.NewEvent(session.EventNotice, "bob escaped")))
	if !strings.Contains(model.View(), "bob escaped") {
		t.Error("menu view should show the notice")
	}

	model = update(t, model, clearNoticeMsg(99))
	if !strings.Contains(model.View(), "bob escaped") {
		t.Error("a stale clear should keep the notice")
	}

	model = update(t, model, clearNoticeMsg(1))
	if strings.Contains(model.View(), "bob escaped") {
		t.Error("notice should be cleared")
	}
}

func TestSessionModelAnnouncesRun(t *testing.T) {
	reg := session.NewRegistry()
	player := session.NewChannelSession(session.NewID(), 4)
	watcher := session.NewChannelSession(session.NewID(), 4)
	info := session.Info{ID: player.ID(), User: "alice"}
	reg.Register(player, info)
	reg.Register(watcher, session.Info{ID: watcher.ID(), User: "bob"})

	m := NewSessionModel(nil, testConfig, reg, player, info, nil)
	gm := NewGameModel(corridorGame(), nil, testConfig, "alice")
	gm.Init()
	m.gameModel = &gm
	m.inGame = true

	var model tea.Model = m
	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	update(t, model, TickMsg{})

	select {
	case evt := <-watcher.Events():
		if evt.Type != session.EventRunCompleted || !strings.Contains(evt.Message, "alice") {
			t.Errorf("watcher got %+v", evt)
		}
	default:
		t.Fatal("watcher should be told about the finished run")
	}

	select {
	case evt := <-player.Events():
		t.Errorf("player should not hear about their own run, got %+v", evt)
	default:
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	gm := NewGameModel(corridorGame(), nil, testConfig, "alice")
	gm.Init()

	next, _ := gm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(GameModel).BackToMenu() {
		t.Error("Esc should return to the menu")
	}
	if next.(GameModel).IsQuitting() {
		t.Error("Esc should not quit the session")
	}
}

func TestRunRows(t *testing.T) {
	rows := runRows([]storage.Run{
		{GameID: "labyrinth_daily", Width: 20, Height: 9, Moves: 40, Optimal: 38, Score: 990},
		{GameID: "labyrinth", Player: "bob", Width: 8, Height: 6},
	})

	if rows[0][0] != "local" || rows[0][1] != "daily" || rows[0][2] != "20x9" || rows[0][3] != "40/38" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[0][4] != "95%" {
		t.Errorf("efficiency = %q, expected 95%%", rows[0][4])
	}
	if rows[1][0] != "bob" || rows[1][1] != "classic" || rows[1][4] != "0%" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if len(rows[0]) != len(runColumns(80)) {
		t.Errorf("row has %d cells, expected %d", len(rows[0]), len(runColumns(80)))
	}
}
