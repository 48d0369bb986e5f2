package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/tomz197/target-hunter/internal/game"
)

func openBackends(t *testing.T) map[string]Backend {
	t.Helper()
	backends := map[string]Backend{"memory": NewMemory()}

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		// go-sqlite3 needs cgo
		t.Logf("sqlite unavailable: %v", err)
	} else {
		backends["sqlite"] = db
	}
	t.Cleanup(func() {
		for _, b := range backends {
			b.Close()
		}
	})
	return backends
}

func TestLoadMissingKey(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Load("nobody")
			if !errors.Is(err, game.ErrNoRecord) {
				t.Errorf("got %v, want ErrNoRecord", err)
			}
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			first := game.Record{Score: 10, TotalHits: 1, Level: 1, GameTime: 3}
			second := game.Record{Score: 250, TotalHits: 20, TotalMisses: 4, Level: 3, GameTime: 90}

			if err := b.Save("alice", first); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := b.Save("alice", second); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := b.Save("bob", first); err != nil {
				t.Fatalf("Save: %v", err)
			}

			got, err := b.Load("alice")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != second {
				t.Errorf("got %+v, want %+v", got, second)
			}

			keys, err := b.Keys()
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			if len(keys) != 2 {
				t.Errorf("got %v, want 2 keys", keys)
			}
		})
	}
}

func TestOpenEmptyPathIsMemory(t *testing.T) {
	b, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := b.(*Memory); !ok {
		t.Errorf("got %T, want *Memory", b)
	}
}
