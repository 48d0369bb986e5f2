package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/game/config"
	"github.com/tomz197/target-hunter/internal/loop"
	"github.com/tomz197/target-hunter/internal/object"
)

func newTestTUI(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	tu := New(screen)
	if err := tu.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	screen.SetSize(w, h)
	tu.updateSize()
	t.Cleanup(tu.Close)
	return tu, screen
}

func TestFieldSize(t *testing.T) {
	tu, _ := newTestTUI(t, 80, 24)

	w, h := tu.FieldSize()
	if w != 80*config.CellWidth || h != float64(24-config.HUDRows)*config.CellHeight {
		t.Errorf("got field %vx%v", w, h)
	}
}

func TestKeyCommands(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want loop.Command
	}{
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), loop.Command{Kind: loop.CmdToggle}},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), loop.Command{Kind: loop.CmdQuit}},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), loop.Command{Kind: loop.CmdQuit}},
		{tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), loop.Command{Kind: loop.CmdReset}},
		{tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), loop.Command{Kind: loop.CmdUseItem, Item: game.ItemSlowDown}},
	}
	for _, tt := range tests {
		got := keyCommand(tt.ev)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("key %v %q: got %+v, want %+v", tt.ev.Key(), tt.ev.Rune(), got, tt.want)
		}
	}

	if got := keyCommand(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); len(got) != 0 {
		t.Errorf("unbound key: got %+v", got)
	}
}

func TestMouseClick(t *testing.T) {
	tu, _ := newTestTUI(t, 80, 24)

	got := tu.handle(tcell.NewEventMouse(10, config.HUDRows, tcell.Button1, tcell.ModNone))
	if len(got) != 1 || got[0].Kind != loop.CmdClick {
		t.Fatalf("got %+v, want one click", got)
	}
	if got[0].X != 10.5*config.CellWidth || got[0].Y != 0.5*config.CellHeight {
		t.Errorf("got click at (%v, %v)", got[0].X, got[0].Y)
	}

	if got := tu.handle(tcell.NewEventMouse(10, 0, tcell.Button1, tcell.ModNone)); len(got) != 0 {
		t.Errorf("click on HUD: got %+v", got)
	}
	if got := tu.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)); len(got) != 0 {
		t.Errorf("release: got %+v", got)
	}
}

func TestFocusLostPauses(t *testing.T) {
	tu, _ := newTestTUI(t, 80, 24)

	if got := tu.handle(tcell.NewEventFocus(false)); len(got) != 1 || got[0].Kind != loop.CmdPause {
		t.Errorf("focus lost: got %+v", got)
	}
	if got := tu.handle(tcell.NewEventFocus(true)); len(got) != 0 {
		t.Errorf("focus gained: got %+v", got)
	}
}

func TestResize(t *testing.T) {
	tu, screen := newTestTUI(t, 80, 24)

	screen.SetSize(100, 30)
	got := tu.handle(tcell.NewEventResize(100, 30))
	if len(got) != 1 || got[0].Kind != loop.CmdResize {
		t.Fatalf("got %+v, want resize", got)
	}
	if w, _ := tu.FieldSize(); w != 100*config.CellWidth {
		t.Errorf("got width %v", w)
	}
}

// row returns the text of one screen row.
func row(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDraw(t *testing.T) {
	tu, screen := newTestTUI(t, 80, 24)

	now := time.Unix(100, 0)
	target := object.Target{ID: 1, Kind: object.KindNormal, X: 100, Y: 100, Size: 50, SpawnTime: now, Lifetime: 4 * time.Second}
	snap := game.Snapshot{
		State:   game.StateRunning,
		Stats:   game.Stats{Score: 42, Level: 1},
		Targets: []object.Target{target},
		Now:     now,
	}
	if err := tu.Draw(snap); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if hud := row(screen, 0); !strings.Contains(hud, "Score 42") {
		t.Errorf("HUD row = %q", hud)
	}

	cx, cy := target.Center()
	col := int(cx / config.CellWidth)
	r := int(cy/config.CellHeight) + config.HUDRows
	glyph, _, style, _ := screen.GetContent(col, r)
	if glyph != object.KindNormal.Glyph() {
		t.Errorf("got glyph %q at target center", glyph)
	}
	if _, bg, _ := style.Decompose(); bg != kindColors[object.KindNormal] {
		t.Errorf("got background %v", bg)
	}
}

func TestDrawStartScreen(t *testing.T) {
	tu, screen := newTestTUI(t, 80, 40)
	tu.now = func() time.Time { return time.UnixMilli(0) }

	if err := tu.Draw(game.Snapshot{State: game.StateStopped}); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	var all strings.Builder
	for y := 0; y < 40; y++ {
		all.WriteString(row(screen, y))
	}
	if !strings.Contains(all.String(), "Press SPACE to Start") {
		t.Error("start prompt not drawn")
	}
}
