package loop

import (
	"testing"
	"time"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/game/config"
)

func newTestOverlay() (*Overlay, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o := NewOverlay()
	o.now = func() time.Time { return now }
	return o, &now
}

func TestOverlayPopups(t *testing.T) {
	o, now := newTestOverlay()

	o.Notify(game.Event{Type: game.EventTargetRemoved, Reason: game.ReasonHit, X: 100, Y: 50, Size: 50, Points: 20})
	o.Notify(game.Event{Type: game.EventTargetRemoved, Reason: game.ReasonExpiry, X: 0, Y: 0, Size: 50})
	o.Notify(game.Event{Type: game.EventFieldMiss, X: 7, Y: 9})

	got := o.Active()
	if len(got) != 2 {
		t.Fatalf("got %+v, want score and miss popups", got)
	}
	if got[0].Text != "+20" || got[0].X != 125 || got[0].Y != 75 {
		t.Errorf("got %+v, want +20 at the target center", got[0])
	}
	if got[1].Kind != PopupMiss || got[1].X != 7 {
		t.Errorf("got %+v, want miss popup at the click", got[1])
	}

	*now = now.Add(config.MissPopupDuration)
	if got := o.Active(); len(got) != 1 || got[0].Kind != PopupScore {
		t.Errorf("got %+v, want only the score popup left", got)
	}
	*now = now.Add(config.ScorePopupDuration)
	if got := o.Active(); len(got) != 0 {
		t.Errorf("got %+v, want all popups expired", got)
	}
}

func TestOverlayMessageReplaces(t *testing.T) {
	o, _ := newTestOverlay()

	o.Notify(game.Event{Type: game.EventLevelUp, Level: 3})
	o.Notify(game.Event{Type: game.EventItemPickup, Item: game.ItemSlowDown})

	got := o.Active()
	if len(got) != 1 || got[0].Text != "Got Slow Down! Press 3" {
		t.Errorf("got %+v, want only the latest message", got)
	}
}

func TestOverlayClearsOnReset(t *testing.T) {
	o, _ := newTestOverlay()

	o.Notify(game.Event{Type: game.EventFieldMiss})
	o.Notify(game.Event{Type: game.EventStateChanged, State: game.StateStopped})

	if got := o.Active(); len(got) != 0 {
		t.Errorf("got %+v, want popups cleared on reset", got)
	}
}
