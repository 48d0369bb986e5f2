package loop

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/game/config"
	"github.com/tomz197/target-hunter/internal/object"
)

type fakeTerm struct {
	w, h int
}

func (f *fakeTerm) size() (int, int, error) { return f.w, f.h, nil }

func newTestANSI(r io.Reader, term *fakeTerm) (*ANSI, *bytes.Buffer) {
	var out bytes.Buffer
	a := NewANSI(bufio.NewReader(r), &out, ANSIOptions{TermSizeFunc: term.size})
	return a, &out
}

// pollUntil polls until at least n commands arrived or a second passed.
func pollUntil(a *ANSI, n int) []Command {
	var cmds []Command
	deadline := time.Now().Add(time.Second)
	for len(cmds) < n && time.Now().Before(deadline) {
		cmds = append(cmds, a.Poll()...)
		time.Sleep(time.Millisecond)
	}
	return cmds
}

func TestANSIFieldSize(t *testing.T) {
	a, _ := newTestANSI(strings.NewReader(""), &fakeTerm{w: 80, h: 24})

	w, h := a.FieldSize()
	if w != 80*config.CellWidth || h != float64(24-config.HUDRows)*config.CellHeight {
		t.Errorf("got field %vx%v", w, h)
	}
}

func TestANSIPollTranslatesInput(t *testing.T) {
	// Space, item 2, click on the first field row, focus lost
	in := " 2\x1b[<0;11;3M\x1b[O"
	a, _ := newTestANSI(strings.NewReader(in), &fakeTerm{w: 80, h: 24})

	cmds := pollUntil(a, 5)

	want := []CommandKind{CmdToggle, CmdUseItem, CmdClick, CmdPause, CmdQuit}
	if len(cmds) != len(want) {
		t.Fatalf("got %+v, want kinds %v", cmds, want)
	}
	for i, k := range want {
		if cmds[i].Kind != k {
			t.Errorf("command %d: got %v, want %v", i, cmds[i].Kind, k)
		}
	}
	if cmds[1].Item != game.ItemClearAll {
		t.Errorf("got %v, want clear-all slot", cmds[1].Item)
	}
	// Column 11 (1-based) is cell 10; row 3 is the first field row
	if math.Abs(cmds[2].X-105) > 1e-9 || math.Abs(cmds[2].Y-10) > 1e-9 {
		t.Errorf("got (%v, %v), want click at (105, 10)", cmds[2].X, cmds[2].Y)
	}
}

func TestANSIClickOnHUDIgnored(t *testing.T) {
	a, _ := newTestANSI(strings.NewReader("\x1b[<0;5;1M"), &fakeTerm{w: 80, h: 24})

	for _, cmd := range pollUntil(a, 1) {
		if cmd.Kind == CmdClick {
			t.Errorf("got %+v, want HUD click to be ignored", cmd)
		}
	}
}

func TestANSIResize(t *testing.T) {
	term := &fakeTerm{w: 80, h: 24}
	pr, pw := io.Pipe()
	defer pw.Close()
	a, _ := newTestANSI(pr, term)

	if cmds := a.Poll(); len(cmds) != 0 {
		t.Errorf("got %+v, want no commands", cmds)
	}

	term.w = 100
	cmds := a.Poll()
	if len(cmds) != 1 || cmds[0].Kind != CmdResize {
		t.Errorf("got %+v, want resize", cmds)
	}
	if w, _ := a.FieldSize(); w != 100*config.CellWidth {
		t.Errorf("got %v, want width %v", w, 100*config.CellWidth)
	}
}

func TestANSIDraw(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	a, out := newTestANSI(pr, &fakeTerm{w: 80, h: 24})

	now := time.Unix(100, 0)
	snap := game.Snapshot{
		State: game.StateRunning,
		Stats: game.Stats{Score: 120, Level: 2, Hits: 9, Misses: 1, Accuracy: 90, GameTime: 75},
		Targets: []object.Target{
			{ID: 1, Kind: object.KindBonus, X: 100, Y: 100, Size: 80, Lifetime: 6 * time.Second, SpawnTime: now},
		},
		Now: now,
	}
	snap.Items[game.ItemSlowDown] = 2

	if err := a.Draw(snap); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Score 120", "Time 1:15", "[3] Slow Down x2", "★"} {
		if !strings.Contains(got, want) {
			t.Errorf("frame missing %q", want)
		}
	}

	// The second identical frame only rewrites text overlays
	first := out.Len()
	out.Reset()
	if err := a.Draw(snap); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if out.Len() >= first {
		t.Errorf("got %d >= %d bytes, want a smaller second frame", out.Len(), first)
	}
}

func TestANSIStartScreen(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	a := NewANSI(bufio.NewReader(pr), &out, ANSIOptions{
		TermSizeFunc: (&fakeTerm{w: 100, h: 40}).size,
		Username:     "alice",
		Now:          func() time.Time { return time.UnixMilli(0) },
	})
	if err := a.Draw(game.Snapshot{State: game.StateStopped}); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Welcome, alice", "Press SPACE to Start", "bonus"} {
		if !strings.Contains(got, want) {
			t.Errorf("start screen missing %q", want)
		}
	}
}

func TestANSIIdleTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	now := time.Unix(0, 0)
	a := NewANSI(bufio.NewReader(pr), io.Discard, ANSIOptions{
		TermSizeFunc: (&fakeTerm{w: 80, h: 24}).size,
		IdleTimeout:  true,
		Now:          func() time.Time { return now },
	})

	now = now.Add((config.InactivityWarnUser + 1) * time.Second)
	if cmds := a.Poll(); len(cmds) != 1 || cmds[0].Kind != CmdPause {
		t.Errorf("got %+v, want pause on idle warning", cmds)
	}
	if cmds := a.Poll(); len(cmds) != 0 {
		t.Errorf("got %+v, want a single pause", cmds)
	}

	now = now.Add((config.InactivityDisconnectUser - config.InactivityWarnUser) * time.Second)
	if cmds := a.Poll(); len(cmds) != 1 || cmds[0].Kind != CmdQuit {
		t.Errorf("got %+v, want quit after the idle limit", cmds)
	}
}
