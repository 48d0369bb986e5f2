package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/object"
)

func drain(s beep.Streamer) (count int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		count += n
		if !ok {
			return count, peak
		}
	}
}

func TestSweepLength(t *testing.T) {
	s := newSweep(sampleRate, 100*time.Millisecond, 800, 400, 0.1, 0.01)
	count, peak := drain(s)

	if want := sampleRate.N(100 * time.Millisecond); count != want {
		t.Errorf("got %d, want %d samples", count, want)
	}
	if peak > 0.1 || peak == 0 {
		t.Errorf("got %f, want peak in (0, 0.1]", peak)
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   game.Event
		want time.Duration // 0 for silent
	}{
		{"hit", game.Event{Type: game.EventTargetRemoved, Reason: game.ReasonHit, Kind: object.KindBonus}, hitDuration},
		{"expiry", game.Event{Type: game.EventTargetRemoved, Reason: game.ReasonExpiry, Kind: object.KindBonus}, 0},
		{"clear", game.Event{Type: game.EventTargetRemoved, Reason: game.ReasonClear, Kind: object.KindNormal}, 0},
		{"miss", game.Event{Type: game.EventFieldMiss}, missDuration},
		{"item", game.Event{Type: game.EventItemUsed, Item: game.ItemClearAll}, 3 * itemStep},
		{"moved", game.Event{Type: game.EventTargetMoved}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cueFor(tt.ev)
			if tt.want == 0 {
				if s != nil {
					t.Errorf("got %T, want no cue", s)
				}
				return
			}
			if s == nil {
				t.Fatal("got no cue")
			}
			if count, _ := drain(s); count != sampleRate.N(tt.want) {
				t.Errorf("got %d, want %d samples", count, sampleRate.N(tt.want))
			}
		})
	}
}

func TestNotifySilentUntilInit(t *testing.T) {
	p := NewPlayer()
	played := 0
	p.play = func(beep.Streamer) { played++ }

	p.Notify(game.Event{Type: game.EventFieldMiss})
	if played != 0 {
		t.Errorf("got %d, want no playback before Init", played)
	}

	p.enabled = true
	p.Notify(game.Event{Type: game.EventFieldMiss})
	p.Notify(game.Event{Type: game.EventStatsChanged})
	if played != 1 {
		t.Errorf("got %d, want 1 cue", played)
	}
}
