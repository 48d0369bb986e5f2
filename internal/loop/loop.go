// Package loop hosts a game session: it drives the simulation ticks, polls
// the frontend for player commands and renders frames.
package loop

import (
	"context"
	"time"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/game/config"
)

// CommandKind identifies a player command.
type CommandKind int

const (
	CmdQuit    CommandKind = iota
	CmdToggle              // Start, pause or resume
	CmdReset               // Stop and zero all progress
	CmdUseItem             // Consume one item
	CmdClick               // Click at a field point
	CmdPause               // Pause if running, e.g. on focus loss
	CmdResize              // The field changed size
)

// Command is one player action, already translated to field coordinates.
type Command struct {
	Kind CommandKind
	Item game.ItemKind // CmdUseItem
	X, Y float64       // CmdClick
}

// Frontend presents a session and collects player input. All methods are
// called from the host goroutine.
type Frontend interface {
	// Poll returns the commands received since the previous call without
	// blocking.
	Poll() []Command
	// FieldSize returns the current field dimensions in pixels.
	FieldSize() (width, height float64)
	// Draw renders one frame.
	Draw(snap game.Snapshot) error
}

// ticker is the part of *time.Ticker the host needs.
type ticker interface {
	Chan() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

type timeTicker struct{ *time.Ticker }

func (t timeTicker) Chan() <-chan time.Time { return t.C }

func newTimeTicker(d time.Duration) ticker {
	return timeTicker{time.NewTicker(d)}
}

// schedule owns the simulation tickers. They only fire while the session is
// running; the spawn ticker follows the session's spawn interval.
type schedule struct {
	clock, spawn, motion ticker
	spawnEvery           time.Duration
	running              bool
}

// newSchedule creates the tickers stopped.
func newSchedule(newTicker func(time.Duration) ticker, spawnEvery time.Duration) *schedule {
	s := &schedule{
		clock:      newTicker(config.ClockTick),
		spawn:      newTicker(spawnEvery),
		motion:     newTicker(config.MotionTick),
		spawnEvery: spawnEvery,
	}
	s.clock.Stop()
	s.spawn.Stop()
	s.motion.Stop()
	return s
}

// sync starts the tickers when play (re)starts, stops them when it stops,
// and re-arms the spawn ticker after a spawn interval change.
func (s *schedule) sync(st game.State, spawnEvery time.Duration) {
	running := st == game.StateRunning
	switch {
	case running && !s.running:
		s.clock.Reset(config.ClockTick)
		s.motion.Reset(config.MotionTick)
		s.spawn.Reset(spawnEvery)
	case !running && s.running:
		s.clock.Stop()
		s.motion.Stop()
		s.spawn.Stop()
	case running && spawnEvery != s.spawnEvery:
		s.spawn.Reset(spawnEvery)
	}
	s.running = running
	s.spawnEvery = spawnEvery
}

func (s *schedule) stop() {
	s.clock.Stop()
	s.spawn.Stop()
	s.motion.Stop()
}

// Run drives sess until the player quits or ctx is cancelled. Progress is
// saved on return.
func Run(ctx context.Context, sess *game.Session, fe Frontend) error {
	return run(ctx, sess, fe, newTimeTicker)
}

func run(ctx context.Context, sess *game.Session, fe Frontend, newTicker func(time.Duration) ticker) error {
	sched := newSchedule(newTicker, sess.SpawnInterval())
	defer sched.stop()
	frameTicker := time.NewTicker(config.FrameTick)
	defer frameTicker.Stop()

	defer sess.Save()

	sched.sync(sess.State(), sess.SpawnInterval())
	if err := fe.Draw(sess.Snapshot()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sched.clock.Chan():
			sess.ClockTick()
		case <-sched.spawn.Chan():
			sess.SpawnTick()
		case <-sched.motion.Chan():
			sess.MotionTick()
		case <-frameTicker.C:
			for _, cmd := range fe.Poll() {
				if !Apply(sess, cmd) {
					return nil
				}
			}
			if err := fe.Draw(sess.Snapshot()); err != nil {
				return err
			}
		}

		sched.sync(sess.State(), sess.SpawnInterval())
	}
}

// Apply performs one command on sess. It returns false for CmdQuit.
func Apply(sess *game.Session, cmd Command) bool {
	switch cmd.Kind {
	case CmdQuit:
		return false
	case CmdToggle:
		sess.Toggle()
	case CmdReset:
		sess.Reset()
	case CmdUseItem:
		sess.UseItem(cmd.Item)
	case CmdClick:
		sess.Click(cmd.X, cmd.Y)
	case CmdPause:
		sess.Pause()
	case CmdResize:
		sess.Resize()
	}
	return true
}
