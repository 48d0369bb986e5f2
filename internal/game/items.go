package game

import (
	"math"
	"time"

	"github.com/tomz197/target-hunter/internal/game/config"
)

// ItemKind is a consumable item.
type ItemKind int

const (
	ItemDoubleScore ItemKind = iota
	ItemClearAll
	ItemSlowDown

	ItemCount // must stay last
)

func (k ItemKind) String() string {
	switch k {
	case ItemDoubleScore:
		return "double-score"
	case ItemClearAll:
		return "clear-all"
	case ItemSlowDown:
		return "slow-down"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the known items.
func (k ItemKind) Valid() bool {
	return k >= 0 && k < ItemCount
}

// EffectKind is a time-boxed global modifier.
type EffectKind int

const (
	EffectDoubleScore EffectKind = iota
	EffectSlowDown

	EffectCount // must stay last
)

func (k EffectKind) String() string {
	switch k {
	case EffectDoubleScore:
		return "double-score"
	case EffectSlowDown:
		return "slow-down"
	default:
		return "unknown"
	}
}

// Effect is an activatable modifier with an absolute end time on the game clock.
type Effect struct {
	Active bool
	End    time.Time
}

// On reports whether the effect applies at now.
func (e Effect) On(now time.Time) bool {
	return e.Active && now.Before(e.End)
}

// Remaining returns the time left at now, zero when inactive.
func (e Effect) Remaining(now time.Time) time.Duration {
	if !e.Active || !now.Before(e.End) {
		return 0
	}
	return e.End.Sub(now)
}

// EffectStatus is the presentation view of an effect.
type EffectStatus struct {
	Active    bool
	Remaining time.Duration
}

// ceilSeconds rounds a duration up to whole seconds.
func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// milestone grants one item every `every` total hits.
type milestone struct {
	every int
	item  ItemKind
}

var milestones = []milestone{
	{every: config.DoubleScoreEvery, item: ItemDoubleScore},
	{every: config.ClearAllEvery, item: ItemClearAll},
	{every: config.SlowDownEvery, item: ItemSlowDown},
}

// itemEffects maps timed items to the effect they activate.
var itemEffects = map[ItemKind]struct {
	effect   EffectKind
	duration time.Duration
}{
	ItemDoubleScore: {EffectDoubleScore, config.DoubleScoreDuration},
	ItemSlowDown:    {EffectSlowDown, config.SlowDownDuration},
}

// checkMilestones grants one item for every milestone multiple crossed since
// the last check. Must be called with s.mu held.
func (s *Session) checkMilestones() {
	for _, m := range milestones {
		last := s.milestoneSeen[m.item]
		s.milestoneSeen[m.item] = s.totalHits

		grants := s.totalHits/m.every - last/m.every
		for i := 0; i < grants; i++ {
			s.items[m.item]++
			s.notify(Event{Type: EventItemPickup, Item: m.item})
		}
	}
}

// activateEffect turns an effect on until now+d. An active effect is only
// ever extended. Must be called with s.mu held.
func (s *Session) activateEffect(kind EffectKind, d time.Duration, now time.Time) {
	e := &s.effects[kind]
	end := now.Add(d)
	if !e.On(now) || end.After(e.End) {
		e.End = end
	}
	e.Active = true

	s.notify(Event{Type: EventEffectActivated, Effect: kind, Remaining: ceilSeconds(e.End.Sub(now))})
}

// updateEffects expires effects whose end time has passed and publishes the
// countdown of the others. Must be called with s.mu held.
func (s *Session) updateEffects(now time.Time) {
	for k := range s.effects {
		e := &s.effects[k]
		if !e.Active {
			continue
		}
		if !now.Before(e.End) {
			e.Active = false
			s.notify(Event{Type: EventEffectExpired, Effect: EffectKind(k)})
			continue
		}
		s.notify(Event{Type: EventEffectCountdown, Effect: EffectKind(k), Remaining: ceilSeconds(e.End.Sub(now))})
	}
}

// clearAll scores every live target as a simultaneous hit and empties the
// registry. Must be called with s.mu held.
func (s *Session) clearAll() {
	cleared := s.targets.All()
	n := len(cleared)
	for _, t := range cleared {
		pts := s.addScore(t.Points)
		s.notify(Event{
			Type:     EventTargetRemoved,
			TargetID: t.ID,
			Kind:     t.Kind,
			X:        t.X,
			Y:        t.Y,
			Size:     t.Size,
			Reason:   ReasonClear,
			Points:   pts,
		})
	}
	s.targets.Clear()
	s.totalHits += n

	s.emitStats()
	s.persist()
}

// UseItem consumes one item of the given kind and applies it. It is a no-op
// unless the game is running and the item is in stock.
func (s *Session) UseItem(kind ItemKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning || !kind.Valid() || s.items[kind] <= 0 {
		return false
	}
	s.items[kind]--

	if ie, ok := itemEffects[kind]; ok {
		s.activateEffect(ie.effect, ie.duration, s.clock.Now())
	} else if kind == ItemClearAll {
		s.clearAll()
	}

	s.notify(Event{Type: EventItemUsed, Item: kind})
	return true
}
