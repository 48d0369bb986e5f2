package game

import (
	"errors"

	"github.com/tomz197/target-hunter/internal/game/config"
)

// ErrNoRecord is returned by a Store when nothing is saved under a key.
var ErrNoRecord = errors.New("no saved record")

// Record is the persisted progress of a player.
type Record struct {
	Score       int `json:"score"`
	TotalHits   int `json:"totalHits"`
	TotalMisses int `json:"totalMisses"`
	Level       int `json:"level"`
	GameTime    int `json:"gameTime"`
}

// Normalized returns r with defaults applied: negative counters become 0 and
// level is at least 1.
func (r Record) Normalized() Record {
	r.Score = max(r.Score, 0)
	r.TotalHits = max(r.TotalHits, 0)
	r.TotalMisses = max(r.TotalMisses, 0)
	r.GameTime = max(r.GameTime, 0)
	r.Level = max(r.Level, 1)
	return r
}

// Store loads and saves records by key.
type Store interface {
	Load(key string) (Record, error)
	Save(key string, rec Record) error
}

// UserSaveKey returns the key a named player's progress is stored under.
func UserSaveKey(user string) string {
	if user == "" {
		return config.DefaultSaveKey
	}
	return config.DefaultSaveKey + ":" + user
}
