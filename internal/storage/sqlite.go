// Package storage holds the save-data backends for game.Store.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tomz197/target-hunter/internal/game"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS records (
	key TEXT PRIMARY KEY,
	score INTEGER NOT NULL DEFAULT 0,
	total_hits INTEGER NOT NULL DEFAULT 0,
	total_misses INTEGER NOT NULL DEFAULT 0,
	level INTEGER NOT NULL DEFAULT 1,
	game_time INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const upsertSQL = `
INSERT INTO records (key, score, total_hits, total_misses, level, game_time, updated_at)
VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
	score = excluded.score,
	total_hits = excluded.total_hits,
	total_misses = excluded.total_misses,
	level = excluded.level,
	game_time = excluded.game_time,
	updated_at = CURRENT_TIMESTAMP;
`

// SQLite stores one record per key in a sqlite database file.
// Safe for concurrent use.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex // serializes writers; sqlite allows only one
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Load returns the record saved under key, or game.ErrNoRecord.
func (s *SQLite) Load(key string) (game.Record, error) {
	var rec game.Record
	row := s.db.QueryRow("SELECT score, total_hits, total_misses, level, game_time FROM records WHERE key = ?", key)
	err := row.Scan(&rec.Score, &rec.TotalHits, &rec.TotalMisses, &rec.Level, &rec.GameTime)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Record{}, game.ErrNoRecord
	}
	if err != nil {
		return game.Record{}, fmt.Errorf("load record %q: %w", key, err)
	}
	return rec, nil
}

// Save replaces the record under key.
func (s *SQLite) Save(key string, rec game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(upsertSQL, key, rec.Score, rec.TotalHits, rec.TotalMisses, rec.Level, rec.GameTime)
	if err != nil {
		return fmt.Errorf("save record %q: %w", key, err)
	}
	return nil
}

// Keys returns every saved key, most recently updated first.
func (s *SQLite) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM records ORDER BY updated_at DESC, key")
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
