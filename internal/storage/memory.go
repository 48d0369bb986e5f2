package storage

import (
	"slices"
	"sync"

	"github.com/tomz197/target-hunter/internal/game"
)

// Memory keeps records in process memory. Progress is lost on exit.
type Memory struct {
	mu      sync.RWMutex
	records map[string]game.Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]game.Record)}
}

// Load returns the record saved under key, or game.ErrNoRecord.
func (m *Memory) Load(key string) (game.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[key]
	if !ok {
		return game.Record{}, game.ErrNoRecord
	}
	return rec, nil
}

// Save replaces the record under key.
func (m *Memory) Save(key string, rec game.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = rec
	return nil
}

// Keys returns every saved key in sorted order.
func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
