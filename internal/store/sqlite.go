package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLite is the SQLite-backed seen-event store.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates or opens a SQLite store at the specified path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	// WAL keeps the file readable mid-write; single writer is enough
	// for a sequential pass.
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening state file: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS seen_events (
		event_id TEXT PRIMARY KEY,
		seen_at  TEXT NOT NULL
	)`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("initializing state file: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Contains reports whether an event id was already recorded.
func (s *SQLite) Contains(id string) (bool, error) {
	var one int

	err := s.db.QueryRow(`SELECT 1 FROM seen_events WHERE event_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// MarkSeen records an event id. Re-marking a known id is a no-op.
func (s *SQLite) MarkSeen(id string) error {
	_, err := s.db.Exec(
		`INSERT INTO seen_events (event_id, seen_at) VALUES (?, ?)
		 ON CONFLICT(event_id) DO NOTHING`, id, seenAt())

	return err
}

// Count returns the number of recorded ids.
func (s *SQLite) Count() (int, error) {
	var n int

	err := s.db.QueryRow(`SELECT COUNT(*) FROM seen_events`).Scan(&n)

	return n, err
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
