// Package tui is a full-screen tcell frontend for local play. It draws targets
// as filled cell blocks and takes clicks from the terminal mouse.
package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/tomz197/target-hunter/internal/draw"
	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/game/config"
	"github.com/tomz197/target-hunter/internal/loop"
	"github.com/tomz197/target-hunter/internal/object"
)

// eventBuffer bounds the events queued between two polls.
const eventBuffer = 256

var kindColors = [object.KindCount]tcell.Color{
	object.KindNormal: tcell.ColorRed,
	object.KindFast:   tcell.ColorAqua,
	object.KindSmall:  tcell.ColorBlue,
	object.KindBonus:  tcell.ColorYellow,
}

// TUI implements loop.Frontend on a tcell screen.
type TUI struct {
	screen  tcell.Screen
	events  chan tcell.Event
	overlay *loop.Overlay
	now     func() time.Time

	renderWidth  int
	renderHeight int
	offsetCol    int
	offsetRow    int
	fieldWidth   float64
	fieldHeight  float64
}

// New wraps screen. Call Open before use and Close when done.
func New(screen tcell.Screen) *TUI {
	return &TUI{
		screen:  screen,
		events:  make(chan tcell.Event, eventBuffer),
		overlay: loop.NewOverlay(),
		now:     time.Now,
	}
}

// NewDefault creates a TUI on the terminal tcell detects.
func NewDefault() (*TUI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return New(screen), nil
}

// Overlay returns the popup feed. Register it as a session notifier.
func (t *TUI) Overlay() *loop.Overlay {
	return t.overlay
}

// Open initializes the screen and starts the event reader.
func (t *TUI) Open() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.EnableMouse(tcell.MouseButtonEvents)
	t.screen.EnableFocus()
	t.screen.HideCursor()
	t.screen.Clear()
	t.updateSize()

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			select {
			case t.events <- ev:
			default:
				// Dropped: the host stopped polling
			}
		}
	}()
	return nil
}

// Close restores the terminal.
func (t *TUI) Close() {
	t.screen.Fini()
}

// FieldSize returns the field dimensions for the current screen size.
func (t *TUI) FieldSize() (float64, float64) {
	return t.fieldWidth, t.fieldHeight
}

// Poll drains queued screen events and translates them into commands.
func (t *TUI) Poll() []loop.Command {
	var cmds []loop.Command
	for {
		select {
		case ev := <-t.events:
			cmds = append(cmds, t.handle(ev)...)
		default:
			return cmds
		}
	}
}

func (t *TUI) handle(ev tcell.Event) []loop.Command {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return keyCommand(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return nil
		}
		col, row := ev.Position()
		if x, y, ok := t.cellToField(col, row); ok {
			return []loop.Command{{Kind: loop.CmdClick, X: x, Y: y}}
		}
	case *tcell.EventResize:
		t.screen.Sync()
		if t.updateSize() {
			return []loop.Command{{Kind: loop.CmdResize}}
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			return []loop.Command{{Kind: loop.CmdPause}}
		}
	}
	return nil
}

func keyCommand(ev *tcell.EventKey) []loop.Command {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return []loop.Command{{Kind: loop.CmdQuit}}
	case tcell.KeyCtrlR:
		return []loop.Command{{Kind: loop.CmdReset}}
	case tcell.KeyRune:
	default:
		return nil
	}

	switch r := ev.Rune(); r {
	case 'q', 'Q':
		return []loop.Command{{Kind: loop.CmdQuit}}
	case ' ':
		return []loop.Command{{Kind: loop.CmdToggle}}
	case '1', '2', '3':
		return []loop.Command{{Kind: loop.CmdUseItem, Item: game.ItemKind(r - '1')}}
	}
	return nil
}

// cellToField maps a screen cell to the field point at its center.
func (t *TUI) cellToField(col, row int) (float64, float64, bool) {
	col -= t.offsetCol
	row -= t.offsetRow + config.HUDRows
	if col < 0 || row < 0 || col >= t.renderWidth || row >= t.fieldRows() {
		return 0, 0, false
	}
	return (float64(col) + 0.5) * config.CellWidth, (float64(row) + 0.5) * config.CellHeight, true
}

func (t *TUI) fieldRows() int {
	return max(t.renderHeight-config.HUDRows, 1)
}

// updateSize recomputes the render area. It reports whether the field
// changed size.
func (t *TUI) updateSize() bool {
	w, h := t.screen.Size()
	t.renderWidth, t.renderHeight, t.offsetCol, t.offsetRow = draw.ClampTermSize(w, h, config.MaxTermWidth, config.MaxTermHeight)

	fieldWidth := float64(max(t.renderWidth, 1)) * config.CellWidth
	fieldHeight := float64(t.fieldRows()) * config.CellHeight
	changed := fieldWidth != t.fieldWidth || fieldHeight != t.fieldHeight
	t.fieldWidth, t.fieldHeight = fieldWidth, fieldHeight
	return changed
}

// Draw renders one frame.
func (t *TUI) Draw(snap game.Snapshot) error {
	t.screen.Clear()

	for _, tg := range snap.Targets {
		t.drawTarget(tg, snap.Now)
	}
	t.drawPopups()
	t.drawHUD(snap)

	switch snap.State {
	case game.StateStopped:
		t.drawStartScreen()
	case game.StatePaused:
		t.drawCentered(t.fieldRows()/2, tcell.StyleDefault.Bold(true), loop.StatusText(snap.State))
	}

	t.screen.Show()
	return nil
}

// drawTarget fills the cells whose centers lie inside the target and puts the
// kind glyph in the middle. Fading targets blink.
func (t *TUI) drawTarget(tg object.Target, now time.Time) {
	fading := tg.Fading(now)
	if fading && now.Sub(tg.SpawnTime)/config.FadeBlinkPeriod%2 == 1 {
		return
	}
	cx, cy := tg.Center()
	r := tg.Radius()
	color := kindColors[tg.Kind]
	fill := tcell.StyleDefault.Background(color)
	if fading {
		fill = fill.Dim(true)
	}

	c0 := int((cx - r) / config.CellWidth)
	c1 := int((cx + r) / config.CellWidth)
	r0 := int((cy - r) / config.CellHeight)
	r1 := int((cy + r) / config.CellHeight)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			dx := (float64(col)+0.5)*config.CellWidth - cx
			dy := (float64(row)+0.5)*config.CellHeight - cy
			if dx*dx+dy*dy <= r*r {
				t.setField(col, row, ' ', fill)
			}
		}
	}

	col, row := int(cx/config.CellWidth), int(cy/config.CellHeight)
	t.setField(col, row, tg.Kind.Glyph(), fill.Foreground(tcell.ColorBlack).Bold(true))
}

// setField sets one field cell, ignoring cells outside the render area.
func (t *TUI) setField(col, row int, r rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= t.renderWidth || row >= t.fieldRows() {
		return
	}
	t.screen.SetContent(col+t.offsetCol, row+t.offsetRow+config.HUDRows, r, nil, style)
}

// fieldText writes s centered on field point (x, y).
func (t *TUI) fieldText(x, y float64, style tcell.Style, s string) {
	col := int(x/config.CellWidth) - runewidth.StringWidth(s)/2
	row := int(y / config.CellHeight)
	for _, r := range s {
		t.setField(col, row, r, style)
		col += runewidth.RuneWidth(r)
	}
}

// drawCentered writes s centered on a field row.
func (t *TUI) drawCentered(row int, style tcell.Style, s string) {
	col := (t.renderWidth - runewidth.StringWidth(s)) / 2
	for _, r := range s {
		t.setField(col, row, r, style)
		col += runewidth.RuneWidth(r)
	}
}

// putLine writes s padded to the render width on a HUD row.
func (t *TUI) putLine(row int, style tcell.Style, s string) {
	col := t.offsetCol
	for _, r := range loop.Fit(s, t.renderWidth) {
		t.screen.SetContent(col, row+t.offsetRow, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}

func (t *TUI) drawHUD(snap game.Snapshot) {
	t.putLine(0, tcell.StyleDefault.Reverse(true), loop.StatsLine(snap))
	if config.HUDRows > 1 {
		t.putLine(1, tcell.StyleDefault, loop.ItemsLine(snap))
	}
}

func (t *TUI) drawPopups() {
	for _, p := range t.overlay.Active() {
		switch p.Kind {
		case loop.PopupScore:
			t.fieldText(p.X, p.Y, tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true), p.Text)
		case loop.PopupMiss:
			t.fieldText(p.X, p.Y, tcell.StyleDefault.Foreground(tcell.ColorRed), p.Text)
		case loop.PopupMessage:
			t.drawCentered(1, tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true), p.Text)
		}
	}
}

func (t *TUI) drawStartScreen() {
	lines := make([]string, 0, len(loop.TitleArt)+len(loop.ControlLines)+8)
	lines = append(lines, loop.TitleArt...)
	lines = append(lines, "")
	lines = append(lines, loop.ControlLines...)
	lines = append(lines, "")
	lines = append(lines, loop.KindLegend()...)
	lines = append(lines, "")

	top := max((t.fieldRows()-len(lines)-1)/2, 0)
	for i, line := range lines {
		t.drawCentered(top+i, tcell.StyleDefault, line)
	}
	if t.now().UnixMilli()/600%2 == 0 {
		t.drawCentered(top+len(lines), tcell.StyleDefault.Bold(true), loop.StatusText(game.StateStopped))
	}
}
