package storage

import "github.com/tomz197/target-hunter/internal/game"

// Backend is a game.Store that can enumerate and release its records.
type Backend interface {
	game.Store
	Keys() ([]string, error)
	Close() error
}

// Open returns a SQLite store at path, or an in-memory store when path is
// empty.
func Open(path string) (Backend, error) {
	if path == "" {
		return NewMemory(), nil
	}
	return OpenSQLite(path)
}
