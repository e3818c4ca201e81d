package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one played maze: which maze it was, how the player did and when.
type Run struct {
	ID        string // UUID, assigned by SaveRun when empty
	GameID    string
	Player    string // SSH user name, empty for local play
	Seed      int64
	Width     int
	Height    int
	Moves     int
	Optimal   int
	Hints     int
	Score     int
	Duration  time.Duration
	Completed bool
	CreatedAt time.Time
}

// Efficiency returns optimal/moves in [0, 1]. Runs without moves report 0.
func (r Run) Efficiency() float64 {
	if r.Moves <= 0 {
		return 0
	}
	return min(float64(r.Optimal)/float64(r.Moves), 1)
}

const runColumns = `id, game_id, player, seed, width, height, moves, optimal,
		        hints, score, duration_ms, completed, created_at`

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	} else if _, err := uuid.Parse(run.ID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", run.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, game_id, player, seed, width, height, moves, optimal, hints, score, duration_ms, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.GameID,
		run.Player,
		run.Seed,
		run.Width,
		run.Height,
		run.Moves,
		run.Optimal,
		run.Hints,
		run.Score,
		run.Duration.Milliseconds(),
		run.Completed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return run, nil
}

// RecentRuns retrieves the most recent runs across all games.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// PlayerRuns retrieves the most recent runs of a player.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
}

// BestRunForSeed returns the completed run with the fewest moves on the maze
// identified by game, seed and size. Ties go to the faster run. Returns nil
// if nobody has completed that maze yet.
func (s *Store) BestRunForSeed(gameID string, seed int64, width, height int) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ? AND seed = ? AND width = ? AND height = ? AND completed = 1
		 ORDER BY moves ASC, duration_ms ASC, rowid ASC
		 LIMIT 1`,
		gameID, seed, width, height,
	)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return run, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (*Run, error) {
	var run Run
	var durationMS int64
	var createdAt any

	if err := sc.Scan(
		&run.ID,
		&run.GameID,
		&run.Player,
		&run.Seed,
		&run.Width,
		&run.Height,
		&run.Moves,
		&run.Optimal,
		&run.Hints,
		&run.Score,
		&durationMS,
		&run.Completed,
		&createdAt,
	); err != nil {
		return nil, err
	}

	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}
