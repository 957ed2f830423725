// Package storage keeps the session run ledger in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Databases are in-memory: the ledger lives as long as the process.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-frogger/internal/frogger/world"
)

// How a run ended.
const (
	EndGameOver = "game over"
	EndReset    = "reset"
	EndQuit     = "quit"
	EndReplay   = "replay end"
)

// Store manages the SQLite connection for the run ledger.
type Store struct {
	db *sql.DB
}

// Run is one finished game.
type Run struct {
	ID        string
	Player    string
	Score     int
	Level     int
	Waves     int
	Elapsed   float64 // engine time units
	EndedBy   string
	CreatedAt time.Time
}

// Stats summarises every run in the ledger.
type Stats struct {
	Runs         int
	Best         int
	TotalWaves   int
	AverageScore float64
}

// RunFromWorld describes the run that ended in snapshot w.
func RunFromWorld(player string, w world.World, endedBy string) Run {
	return Run{
		Player:  player,
		Score:   w.Score,
		Level:   w.Level,
		Waves:   w.WavesCleared(),
		Elapsed: w.ElapsedTime,
		EndedBy: endedBy,
	}
}

// OpenMemory creates a fresh, private in-memory ledger.
func OpenMemory() (*Store, error) {
	dsn := fmt.Sprintf("file:frogger-%s?mode=memory&cache=shared", uuid.NewString())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// The database disappears with its last connection, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			waves INTEGER NOT NULL DEFAULT 0,
			elapsed REAL NOT NULL DEFAULT 0,
			ended_by TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC, created_at);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection, discarding the ledger.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. A missing ID or timestamp is filled in.
// Returns the run as stored.
func (s *Store) SaveRun(r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.Player == "" {
		r.Player = "anonymous"
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, player, score, level, waves, elapsed, ended_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Score, r.Level, r.Waves, r.Elapsed, r.EndedBy, r.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r, nil
}

// TopRuns retrieves the best N runs, highest score first. Ties go to the
// earlier run.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT id, player, score, level, waves, elapsed, ended_by, created_at
		 FROM runs
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
}

// PlayerRuns retrieves every run of one player, newest first.
func (s *Store) PlayerRuns(player string) ([]Run, error) {
	return s.queryRuns(
		`SELECT id, player, score, level, waves, elapsed, ended_by, created_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC`,
		player,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created int64
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Level, &r.Waves, &r.Elapsed, &r.EndedBy, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = time.Unix(0, created)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the best score in the ledger, or 0 if it is empty.
func (s *Store) HighScore() (int, error) {
	var best int
	err := s.db.QueryRow("SELECT COALESCE(MAX(score), 0) FROM runs").Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}
	return best, nil
}

// Stats returns aggregate figures over every run.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(SUM(waves), 0), COALESCE(AVG(score), 0)
		 FROM runs`,
	).Scan(&st.Runs, &st.Best, &st.TotalWaves, &st.AverageScore)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}
