// Package audio plays short synthesized cues for game events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/object"
)

const sampleRate = beep.SampleRate(44100)

// Cue lengths and levels.
const (
	hitDuration  = 100 * time.Millisecond
	missDuration = 200 * time.Millisecond
	itemStep     = 50 * time.Millisecond // Three steps

	hitGain  = 0.1
	missGain = 0.05
	itemGain = 0.25
	tailGain = 0.01
)

var hitFrequency = [object.KindCount]float64{
	object.KindNormal: 800,
	object.KindFast:   1000,
	object.KindSmall:  1200,
	object.KindBonus:  600,
}

var itemFrequencies = []float64{1000, 1200, 1400}

// Player turns game events into sounds. It implements game.Notifier and never
// blocks the caller.
type Player struct {
	mu      sync.Mutex
	enabled bool
	volume  float64 // log2 gain offset applied to every cue
	play    func(beep.Streamer)
}

// NewPlayer creates a silent player. Call Init to open the audio device.
func NewPlayer() *Player {
	return &Player{play: func(s beep.Streamer) { speaker.Play(s) }}
}

// Init opens the speaker. On failure the player stays silent and the game
// runs without sound.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.enabled = true
	return nil
}

// SetVolume shifts every cue by the given number of doublings (0 leaves
// levels unchanged, -1 halves them).
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.enabled = false
}

// Notify plays the cue for ev, if it has one.
func (p *Player) Notify(ev game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	if s := cueFor(ev); s != nil {
		p.play(&effects.Volume{Streamer: s, Base: 2, Volume: p.volume})
	}
}

// cueFor returns the sound for ev, or nil for silent events.
func cueFor(ev game.Event) beep.Streamer {
	switch ev.Type {
	case game.EventTargetRemoved:
		if ev.Reason != game.ReasonHit || !ev.Kind.Valid() {
			return nil
		}
		return hitCue(ev.Kind)
	case game.EventFieldMiss:
		return missCue()
	case game.EventItemUsed:
		return itemCue()
	}
	return nil
}

// hitCue drops an octave from the kind's pitch.
func hitCue(kind object.Kind) beep.Streamer {
	f := hitFrequency[kind]
	return newSweep(sampleRate, hitDuration, f, f/2, hitGain, tailGain)
}

func missCue() beep.Streamer {
	return newSweep(sampleRate, missDuration, 200, 100, missGain, tailGain)
}

// itemCue is a rising three-step chirp with one decay across all steps.
func itemCue() beep.Streamer {
	n := float64(len(itemFrequencies))
	steps := make([]beep.Streamer, len(itemFrequencies))
	for i, f := range itemFrequencies {
		g0 := ramp(itemGain, tailGain, float64(i)/n)
		g1 := ramp(itemGain, tailGain, float64(i+1)/n)
		steps[i] = newSweep(sampleRate, itemStep, f, f, g0, g1)
	}
	return beep.Seq(steps...)
}
