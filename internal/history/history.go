// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists executed interpreter lines to a SQLite database
// under the config directory, so the history command can report past lines
// and their outcomes across sessions.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	line   TEXT NOT NULL,
	ok     INTEGER NOT NULL,
	ran_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_ran_at ON history(ran_at);
`

// Entry is one recorded interpreter line.
type Entry struct {
	ID    int64
	Line  string
	OK    bool
	RanAt time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Store wraps the history database. Safe for use from the single-threaded
// interpreter loop; database/sql serializes access otherwise.
type Store struct {
	db   *sql.DB
	keep int
}

// Open opens (creating if needed) the history database at path and retains
// at most keep rows.
func Open(path string, keep int) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	// WAL keeps writes cheap; the busy timeout covers a second cmdly process.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure history db: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init history schema: %w", err)
	}

	if keep <= 0 {
		keep = 1000
	}
	return &Store{db: db, keep: keep}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one executed line with its final status and prunes rows
// beyond the retention limit.
func (s *Store) Record(line string, ok bool) error {
	okInt := 0
	if ok {
		okInt = 1
	}
	if _, err := s.db.Exec(
		"INSERT INTO history(line, ok, ran_at) VALUES(?, ?, ?)",
		line, okInt, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}

	_, err := s.db.Exec(
		"DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)",
		s.keep,
	)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. With failedOnly set,
// only failed lines are returned.
func (s *Store) Recent(limit int, failedOnly bool) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := "SELECT id, line, ok, ran_at FROM history"
	if failedOnly {
		query += " WHERE ok = 0"
	}
	query += " ORDER BY id DESC LIMIT ?"

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var okInt int
		if err := rows.Scan(&e.ID, &e.Line, &okInt, &e.RanAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.OK = okInt != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
