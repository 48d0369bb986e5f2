package loop

import (
	"fmt"
	"sync"
	"time"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/game/config"
)

// PopupKind selects how a popup is drawn.
type PopupKind int

const (
	PopupScore   PopupKind = iota // "+20" where a target was hit
	PopupMiss                     // "MISS" where the field was clicked
	PopupMessage                  // Centered announcement
)

// Popup is a short-lived text overlay. X and Y are field coordinates;
// messages ignore them.
type Popup struct {
	Kind  PopupKind
	Text  string
	X, Y  float64
	Until time.Time
}

var itemNames = [game.ItemCount]string{
	game.ItemDoubleScore: "Double Score",
	game.ItemClearAll:    "Clear All",
	game.ItemSlowDown:    "Slow Down",
}

var effectNames = [game.EffectCount]string{
	game.EffectDoubleScore: "Double Score",
	game.EffectSlowDown:    "Slow Down",
}

// ItemName returns the display name of an item.
func ItemName(k game.ItemKind) string {
	if !k.Valid() {
		return "?"
	}
	return itemNames[k]
}

// EffectName returns the display name of an effect.
func EffectName(k game.EffectKind) string {
	if k < 0 || k >= game.EffectCount {
		return "?"
	}
	return effectNames[k]
}

// Overlay turns session events into popups for frontends. It implements
// game.Notifier.
type Overlay struct {
	mu     sync.Mutex
	popups []Popup
	now    func() time.Time
}

// NewOverlay creates an empty overlay on the wall clock.
func NewOverlay() *Overlay {
	return &Overlay{now: time.Now}
}

// Notify records the popup for ev, if it has one.
func (o *Overlay) Notify(ev game.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	switch ev.Type {
	case game.EventTargetRemoved:
		if ev.Reason == game.ReasonExpiry {
			return
		}
		o.add(Popup{
			Kind:  PopupScore,
			Text:  fmt.Sprintf("+%d", ev.Points),
			X:     ev.X + ev.Size/2,
			Y:     ev.Y + ev.Size/2,
			Until: now.Add(config.ScorePopupDuration),
		})
	case game.EventFieldMiss:
		o.add(Popup{Kind: PopupMiss, Text: "MISS", X: ev.X, Y: ev.Y, Until: now.Add(config.MissPopupDuration)})
	case game.EventLevelUp:
		o.message(now, fmt.Sprintf("LEVEL UP! Level %d", ev.Level))
	case game.EventItemPickup:
		o.message(now, fmt.Sprintf("Got %s! Press %d", ItemName(ev.Item), int(ev.Item)+1))
	case game.EventItemUsed:
		o.message(now, ItemName(ev.Item)+"!")
	case game.EventEffectExpired:
		o.message(now, EffectName(ev.Effect)+" ended")
	case game.EventStateChanged:
		if ev.State == game.StateStopped {
			o.popups = o.popups[:0]
		}
	}
}

func (o *Overlay) add(p Popup) {
	o.popups = append(o.popups, p)
}

// message replaces any pending announcement with text.
func (o *Overlay) message(now time.Time, text string) {
	kept := o.popups[:0]
	for _, p := range o.popups {
		if p.Kind != PopupMessage {
			kept = append(kept, p)
		}
	}
	o.popups = append(kept, Popup{Kind: PopupMessage, Text: text, Until: now.Add(config.MessagePopupDuration)})
}

// Active drops expired popups and returns a copy of the rest, oldest first.
func (o *Overlay) Active() []Popup {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	kept := o.popups[:0]
	for _, p := range o.popups {
		if now.Before(p.Until) {
			kept = append(kept, p)
		}
	}
	o.popups = kept
	return append([]Popup(nil), kept...)
}
