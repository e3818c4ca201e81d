package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/labyrinth/internal/storage"
)

func TestScoreboardViews(t *testing.T) {
	anonymous := scoreboardViews("")
	named := scoreboardViews("alice")

	if len(named) != len(anonymous)+1 {
		t.Fatalf("views with a player = %d, expected %d", len(named), len(anonymous)+1)
	}
	if last := named[len(named)-1]; last.name != "Your runs" {
		t.Errorf("last view = %q, expected Your runs", last.name)
	}
	if last := anonymous[len(anonymous)-1]; last.name != "Recent runs" {
		t.Errorf("last view = %q, expected Recent runs", last.name)
	}
}

func TestScoreboardPlayerRuns(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []storage.Run{
		{GameID: "labyrinth", Player: "alice", Width: 4, Height: 4, Moves: 6, Optimal: 6, Completed: true},
		{GameID: "labyrinth", Player: "bob", Width: 4, Height: 4, Moves: 9, Optimal: 6, Completed: true},
		{GameID: "labyrinth_daily", Player: "alice", Width: 20, Height: 9, Moves: 30, Optimal: 28, Completed: true},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "alice", 100, 30)
	m.cursor = len(m.views) - 1
	m.load()

	if m.rowCount != 2 {
		t.Errorf("rows = %d, expected alice's 2 runs", m.rowCount)
	}
	for _, row := range m.table.Rows() {
		if row[0] != "alice" {
			t.Errorf("row %v belongs to another player", row)
		}
	}

	m.cursor = len(m.views) - 2
	m.load()
	if m.rowCount != 3 {
		t.Errorf("recent rows = %d, expected 3", m.rowCount)
	}
}

func TestScoreboardNavigation(t *testing.T) {
	m := NewScoreboardModel(nil, "", 100, 30)
	n := len(m.views)

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := model.(ScoreboardModel).cursor; got != n-1 {
		t.Errorf("cursor after shift+tab = %d, expected %d", got, n-1)
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := model.(ScoreboardModel).cursor; got != 0 {
		t.Errorf("cursor after tab = %d, expected 0", got)
	}

	if !strings.Contains(model.View(), "No scores recorded yet.") {
		t.Error("View() should show the empty message without a store")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back to the menu")
	}
}
