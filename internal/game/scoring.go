package game

import (
	"math"

	"github.com/tomz197/target-hunter/internal/game/config"
)

// Accuracy returns round(100·hits/(hits+misses)), or 0 before the first shot.
func Accuracy(hits, misses int) int {
	shots := hits + misses
	if shots == 0 {
		return 0
	}
	return int(math.Round(100 * float64(hits) / float64(shots)))
}

func (s *Session) stats() Stats {
	return Stats{
		Score:    s.score,
		Hits:     s.totalHits,
		Misses:   s.totalMisses,
		Accuracy: Accuracy(s.totalHits, s.totalMisses),
		Level:    s.level,
		GameTime: s.gameTime,
	}
}

// Stats returns the current display values.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats()
}

func (s *Session) emitStats() {
	s.notify(Event{Type: EventStatsChanged, Stats: s.stats()})
}

// addScore adds points, doubled while double-score is active, and returns
// what was actually awarded. Must be called with s.mu held.
func (s *Session) addScore(points int) int {
	if s.effects[EffectDoubleScore].On(s.clock.Now()) {
		points *= config.DoubleScoreFactor
	}
	s.score += points
	s.checkLevelUp()
	return points
}

// HitTarget scores and removes the live target with the given id. It is a
// no-op unless the game is running and the target is still live.
func (s *Session) HitTarget(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return false
	}
	return s.hitTarget(id)
}

func (s *Session) hitTarget(id int) bool {
	t := s.targets.Remove(id)
	if t == nil {
		return false
	}

	pts := s.addScore(t.Points)
	s.totalHits++

	s.notify(Event{
		Type:     EventTargetRemoved,
		TargetID: t.ID,
		Kind:     t.Kind,
		X:        t.X,
		Y:        t.Y,
		Size:     t.Size,
		Reason:   ReasonHit,
		Points:   pts,
	})
	s.emitStats()
	s.persist()
	return true
}

// registerMiss counts an expiry. Must be called with s.mu held.
func (s *Session) registerMiss() {
	s.totalMisses++
	s.emitStats()
	s.persist()
}

// FieldClick counts a click on empty field at (x, y) as a miss.
func (s *Session) FieldClick(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	s.fieldClick(x, y)
}

func (s *Session) fieldClick(x, y float64) {
	s.notify(Event{Type: EventFieldMiss, X: x, Y: y})
	s.registerMiss()
}
