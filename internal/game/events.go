package game

import "github.com/tomz197/target-hunter/internal/object"

// EventType identifies the type of a presentation event.
type EventType int

const (
	EventTargetCreated EventType = iota
	EventTargetMoved
	EventTargetRemoved
	EventStatsChanged
	EventEffectActivated
	EventEffectCountdown // Once per clock tick while an effect is active
	EventEffectExpired
	EventLevelUp
	EventItemPickup
	EventItemUsed
	EventFieldMiss
	EventStateChanged
)

// RemoveReason tells presentation why a target disappeared.
type RemoveReason int

const (
	ReasonHit RemoveReason = iota
	ReasonExpiry
	ReasonClear
)

func (r RemoveReason) String() string {
	switch r {
	case ReasonHit:
		return "hit"
	case ReasonExpiry:
		return "expiry"
	case ReasonClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Stats are the score-derived display values.
type Stats struct {
	Score    int
	Hits     int
	Misses   int
	Accuracy int // Percent, 0 when no shots yet
	Level    int
	GameTime int // Whole running seconds
}

// Event is an outbound notification from the simulation core. Only the fields
// relevant to Type are set.
type Event struct {
	Type EventType

	// Target events
	TargetID int
	Kind     object.Kind
	X, Y     float64 // Top-left for targets, click point for field misses
	Size     float64
	Glyph    rune
	Reason   RemoveReason
	Points   int // Points awarded, multiplier included

	Stats     Stats
	Effect    EffectKind
	Remaining int // Whole seconds left on an effect
	Item      ItemKind
	Level     int
	State     State
}

// Notifier consumes events from the session. Notify is called while the
// session holds its lock: implementations must not call back into the Session.
type Notifier interface {
	Notify(ev Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ev Event)

// Notify calls f(ev).
func (f NotifierFunc) Notify(ev Event) {
	f(ev)
}

// Notifiers fans an event out to several consumers in order.
type Notifiers []Notifier

// Notify forwards ev to every non-nil notifier.
func (ns Notifiers) Notify(ev Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ev)
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}
