package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/labyrinth/internal/storage"
)

func openScoresStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.Run{
		{GameID: "labyrinth", Player: "alice", Seed: 11, Width: 4, Height: 4, Moves: 8, Optimal: 6, Score: 980, Completed: true},
		{GameID: "labyrinth", Player: "bob", Seed: 12, Width: 4, Height: 4, Moves: 6, Optimal: 6, Score: 1000, Completed: true},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if _, err := store.SaveScore(r.GameID, r.Score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	return store
}

// withScoreFlags sets the scores command flags for one test.
func withScoreFlags(t *testing.T, recent int, all, clear bool, player, runID string) {
	t.Helper()
	saved := []any{flagRecent, flagAllScores, flagClear, flagPlayer, flagRunID}
	flagRecent, flagAllScores, flagClear, flagPlayer, flagRunID = recent, all, clear, player, runID
	t.Cleanup(func() {
		flagRecent = saved[0].(int)
		flagAllScores = saved[1].(bool)
		flagClear = saved[2].(bool)
		flagPlayer = saved[3].(string)
		flagRunID = saved[4].(string)
	})
}

func TestShowScoresPlayerFilter(t *testing.T) {
	store := openScoresStore(t)
	withScoreFlags(t, 10, false, false, "alice", "")

	var buf bytes.Buffer
	if err := showScores(&buf, store, "labyrinth", "Labyrinth"); err != nil {
		t.Fatalf("showScores() failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Recent runs of alice") {
		t.Errorf("missing player heading:\n%s", out)
	}
	runs := out[strings.Index(out, "Recent runs of alice"):]
	if strings.Contains(runs, "bob") {
		t.Errorf("run list should only contain alice:\n%s", runs)
	}
	if !strings.Contains(runs, "75%") {
		t.Errorf("run list should show efficiency 6/8:\n%s", runs)
	}
	if !strings.Contains(out, "Best: 1000  Games: 2") {
		t.Errorf("missing stats line:\n%s", out)
	}
}

func TestShowScoresRunByID(t *testing.T) {
	store := openScoresStore(t)
	id, err := store.SaveRun(storage.Run{
		GameID: "labyrinth_daily", Seed: 99, Width: 20, Height: 9,
		Moves: 40, Optimal: 30, Duration: 45 * time.Second, Completed: true,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	withScoreFlags(t, 10, false, false, "", id)

	var buf bytes.Buffer
	if err := showScores(&buf, store, "labyrinth", "Labyrinth"); err != nil {
		t.Fatalf("showScores() failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{id, "local", "20x9 seed 99", "efficiency 75%", "45s"} {
		if !strings.Contains(out, want) {
			t.Errorf("run details missing %q:\n%s", want, out)
		}
	}

	withScoreFlags(t, 10, false, false, "", "00000000-0000-0000-0000-000000000000")
	if err := showScores(&buf, store, "labyrinth", "Labyrinth"); err == nil {
		t.Error("showScores() with an unknown run should fail")
	}
}

func TestShowScoresClear(t *testing.T) {
	store := openScoresStore(t)
	withScoreFlags(t, 10, false, true, "", "")

	var buf bytes.Buffer
	if err := showScores(&buf, store, "labyrinth", "Labyrinth"); err != nil {
		t.Fatalf("showScores() failed: %v", err)
	}

	scores, err := store.AllScores("labyrinth")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(scores) != 0 || len(runs) != 0 {
		t.Errorf("after clear: %d scores, %d runs, expected none", len(scores), len(runs))
	}
}

func TestShowScoresAll(t *testing.T) {
	store := openScoresStore(t)
	for i := range 12 {
		if _, err := store.SaveScore("labyrinth", 100+i); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	withScoreFlags(t, 0, true, false, "", "")
	var all bytes.Buffer
	if err := showScores(&all, store, "labyrinth", "Labyrinth"); err != nil {
		t.Fatalf("showScores() failed: %v", err)
	}
	if !strings.Contains(all.String(), "  14  ") {
		t.Errorf("--all should list all 14 scores:\n%s", all.String())
	}

	withScoreFlags(t, 0, false, false, "", "")
	var top bytes.Buffer
	if err := showScores(&top, store, "labyrinth", "Labyrinth"); err != nil {
		t.Fatalf("showScores() failed: %v", err)
	}
	if strings.Contains(top.String(), "  11  ") {
		t.Errorf("default view should stop at rank 10:\n%s", top.String())
	}
}
