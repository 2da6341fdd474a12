// Package storage keeps the round ledger of a running process.
// The database lives in memory and is gone when the process exits.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// memoryDSN opens a private in-memory database. The pool is pinned to a
// single connection, otherwise every new connection would see an empty
// database.
const memoryDSN = ":memory:"

// Store manages the in-memory round ledger.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round.
type RoundRecord struct {
	ID        int64
	Session   string // player id: local user or SSH user
	Score     int
	Won       bool
	Length    int
	Ticks     uint64
	Duration  time.Duration
	CreatedAt time.Time
}

// Summary aggregates all rounds in the ledger.
type Summary struct {
	Rounds    int
	Wins      int
	Losses    int
	BestScore int
	AvgScore  float64
}

// Open creates a fresh in-memory ledger and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

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
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL,
			length INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(score DESC, id ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection and drops the ledger.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round. A zero CreatedAt is set to now.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundRecord) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO rounds (session, score, won, length, ticks, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Session, r.Score, r.Won, r.Length, int64(r.Ticks), r.Duration.Milliseconds(), r.CreatedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRounds retrieves the best N rounds, score descending. Ties keep the
// order in which the rounds finished.
func (s *Store) TopRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session, score, won, length, ticks, duration_ms, created_at
		 FROM rounds
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var (
			r          RoundRecord
			ticks      int64
			durationMS int64
			createdAt  int64
		)
		if err := rows.Scan(&r.ID, &r.Session, &r.Score, &r.Won, &r.Length, &ticks, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = time.Unix(0, createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighScore returns the best score in the ledger, or 0 if it is empty.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM rounds").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Summary aggregates the whole ledger.
func (s *Store) Summary() (Summary, error) {
	var sum Summary
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM rounds`,
	).Scan(&sum.Rounds, &sum.Wins, &sum.BestScore, &sum.AvgScore)
	if err != nil {
		return Summary{}, fmt.Errorf("storage: cannot summarize rounds: %w", err)
	}
	sum.Losses = sum.Rounds - sum.Wins
	return sum, nil
}
