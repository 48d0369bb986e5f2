package game

import (
	"time"

	"github.com/tomz197/target-hunter/internal/game/config"
	"github.com/tomz197/target-hunter/internal/object"
)

// ClockTick advances game time and runs the once-per-tick checks: level,
// item milestones and effect expiry. Call it every config.ClockTick.
func (s *Session) ClockTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	now := s.clock.Now()

	if gt := int(now.Sub(s.startTime) / time.Second); gt != s.gameTime {
		s.gameTime = gt
		s.emitStats()
	}

	s.checkLevelUp()
	s.checkMilestones()
	s.updateEffects(now)
}

// SpawnTick creates one random target if there is room. Call it every
// SpawnInterval.
func (s *Session) SpawnTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning || s.targets.Len() >= s.maxTargets {
		return
	}
	s.spawn(object.RandomKind(s.rng))
}

// spawn creates a target of the given kind. Must be called with s.mu held.
func (s *Session) spawn(kind object.Kind) *object.Target {
	t := object.NewTarget(s.targets.NextID(), kind, s.level, s.field(), s.clock.Now(), s.rng)
	s.targets.Add(t)

	s.notify(Event{
		Type:     EventTargetCreated,
		TargetID: t.ID,
		Kind:     t.Kind,
		X:        t.X,
		Y:        t.Y,
		Size:     t.Size,
		Glyph:    t.Kind.Glyph(),
	})
	return t
}

// MotionTick expires targets that reached their lifetime, counting each as a
// miss, and moves the rest. Call it every config.MotionTick.
func (s *Session) MotionTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	now := s.clock.Now()
	field := s.field()

	multiplier := 1.0
	if s.effects[EffectSlowDown].On(now) {
		multiplier = config.SlowDownFactor
	}

	var expired []int
	for _, t := range s.targets.All() {
		// Expiry is checked before the move
		if t.Expired(now) {
			expired = append(expired, t.ID)
			continue
		}

		t.Integrate(field, multiplier)
		s.notify(Event{Type: EventTargetMoved, TargetID: t.ID, X: t.X, Y: t.Y})
	}

	for _, id := range expired {
		t := s.targets.Remove(id)
		s.notify(Event{
			Type:     EventTargetRemoved,
			TargetID: t.ID,
			Kind:     t.Kind,
			X:        t.X,
			Y:        t.Y,
			Size:     t.Size,
			Reason:   ReasonExpiry,
		})
		s.registerMiss()
	}
}
