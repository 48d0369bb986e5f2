package game

import (
	"time"

	"github.com/tomz197/target-hunter/internal/game/config"
)

// LevelFor returns the level reached with the given score.
func LevelFor(score int) int {
	return score/config.PointsPerLevel + 1
}

// SpawnIntervalFor returns the spawn period for a level.
func SpawnIntervalFor(level int) time.Duration {
	return max(config.MinSpawnInterval, config.InitialSpawnInterval-time.Duration(level)*config.SpawnIntervalStep)
}

// MaxTargetsFor returns the live target capacity for a level.
func MaxTargetsFor(level int) int {
	return min(config.MaxTargetsCap, config.InitialMaxTargets+level/config.LevelsPerExtraTarget)
}

// checkLevelUp raises the level when the score has crossed into a new one.
// The level never decreases. Must be called with s.mu held.
func (s *Session) checkLevelUp() {
	lvl := LevelFor(s.score)
	if lvl <= s.level {
		return
	}
	s.level = lvl
	s.applyDifficulty()

	s.logger.Debug("level up", "level", lvl, "spawnInterval", s.spawnInterval, "maxTargets", s.maxTargets)
	s.notify(Event{Type: EventLevelUp, Level: lvl})
}

func (s *Session) applyDifficulty() {
	s.spawnInterval = SpawnIntervalFor(s.level)
	s.maxTargets = MaxTargetsFor(s.level)
}
