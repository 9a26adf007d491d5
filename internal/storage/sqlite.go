// Package storage persists finished idle-snake runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/idle-snake/internal/core"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunEntry is a stored run.
type RunEntry struct {
	ID          int64
	Board       string
	Score       int
	Length      int
	FruitsEaten int
	Ticks       uint64
	GridSize    int
	DeathReason string
	CreatedAt   time.Time
}

// BoardStats aggregates the runs of one board.
type BoardStats struct {
	Board     string
	Runs      int
	BestScore int
	AvgScore  float64
	MaxLength int
	Deaths    map[string]int // by death reason
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			board TEXT NOT NULL,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			fruits INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			grid_size INTEGER NOT NULL,
			death_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_board ON runs(board);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(board, score DESC);

		CREATE TABLE IF NOT EXISTS run_stages (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			stage TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, stage)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and its decision stage histogram in one
// transaction. Returns the ID of the inserted run.
func (s *Store) SaveRun(run core.RunSummary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (board, score, length, fruits, ticks, grid_size, death_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Board, run.Score, run.Length, run.FruitsEaten, int64(run.Ticks), run.GridSize, run.DeathReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for stage, count := range run.Stages {
		if count == 0 {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO run_stages (run_id, stage, count) VALUES (?, ?, ?)",
			id, stage, count,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save stage %s: %w", stage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the best runs for the given board ordered by score,
// longest snake first on ties. An empty board lists every board.
func (s *Store) TopRuns(board string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, board, score, length, fruits, ticks, grid_size, death_reason, created_at
		 FROM runs
		 WHERE ? = '' OR board = ?
		 ORDER BY score DESC, length DESC, id ASC
		 LIMIT ?`,
		board, board, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recently recorded runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, board, score, length, fruits, ticks, grid_size, death_reason, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Board, &e.Score, &e.Length, &e.FruitsEaten,
			&ticks, &e.GridSize, &e.DeathReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles both driver-decoded times and SQLite's text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given board.
// Returns 0 if no runs exist.
func (s *Store) HighScore(board string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE board = ?", board).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// RunStages returns the decision stage histogram stored with a run.
func (s *Store) RunStages(runID int64) (map[string]int, error) {
	rows, err := s.db.Query("SELECT stage, count FROM run_stages WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run stages: %w", err)
	}
	return scanStages(rows)
}

// StageTotals sums the decision stage histograms of every run on board.
// An empty board sums across all boards.
func (s *Store) StageTotals(board string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT st.stage, SUM(st.count)
		 FROM run_stages st JOIN runs r ON r.id = st.run_id
		 WHERE ? = '' OR r.board = ?
		 GROUP BY st.stage`,
		board, board,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stage totals: %w", err)
	}
	return scanStages(rows)
}

func scanStages(rows *sql.Rows) (map[string]int, error) {
	defer rows.Close()

	stages := make(map[string]int)
	for rows.Next() {
		var stage string
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		stages[stage] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stages, nil
}

// ClearRuns deletes all runs for the given board together with their stages.
func (s *Store) ClearRuns(board string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM run_stages WHERE run_id IN (SELECT id FROM runs WHERE board = ?)", board,
	); err != nil {
		return fmt.Errorf("storage: cannot clear run stages: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE board = ?", board); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// GetBoardStats returns aggregate statistics for a board.
func (s *Store) GetBoardStats(board string) (*BoardStats, error) {
	stats := &BoardStats{Board: board, Deaths: make(map[string]int)}

	var best, maxLen sql.NullInt64
	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(score), MAX(length)
		 FROM runs WHERE board = ?`,
		board,
	).Scan(&stats.Runs, &best, &avg, &maxLen)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query board stats: %w", err)
	}
	stats.BestScore = int(best.Int64)
	stats.AvgScore = avg.Float64
	stats.MaxLength = int(maxLen.Int64)

	rows, err := s.db.Query(
		"SELECT death_reason, COUNT(*) FROM runs WHERE board = ? GROUP BY death_reason",
		board,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query deaths: %w", err)
	}
	deaths, err := scanStages(rows)
	if err != nil {
		return nil, err
	}
	stats.Deaths = deaths
	return stats, nil
}

// GetAllBoardsStats returns statistics for every board with at least one run,
// sorted by board ID.
func (s *Store) GetAllBoardsStats() ([]*BoardStats, error) {
	rows, err := s.db.Query("SELECT DISTINCT board FROM runs")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query boards: %w", err)
	}

	var boards []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		boards = append(boards, b)
	}
	rows.Close()
	sort.Strings(boards)

	var all []*BoardStats
	for _, b := range boards {
		st, err := s.GetBoardStats(b)
		if err != nil {
			return nil, err
		}
		all = append(all, st)
	}
	return all, nil
}
