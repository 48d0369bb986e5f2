package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/target-hunter/internal/draw"
	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/game/config"
	"github.com/tomz197/target-hunter/internal/object"
)

// kindColors are the glyph colors per target kind.
var kindColors = [object.KindCount]string{
	object.KindNormal: draw.ColorBrightRed,
	object.KindFast:   draw.ColorBrightCyan,
	object.KindSmall:  draw.ColorBlue,
	object.KindBonus:  draw.ColorBrightYellow,
}

// Draw renders one frame.
func (a *ANSI) Draw(snap game.Snapshot) error {
	// On state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	if !a.drawn || snap.State != a.prevState || a.isInactive != a.wasIdle {
		draw.ClearScreen(a.chunkWriter)
		a.canvas.ForceRedraw()
		a.prevState = snap.State
		a.wasIdle = a.isInactive
		a.drawn = true
	}

	a.canvas.Clear()
	for _, t := range snap.Targets {
		drawTarget(a.canvas, t, snap.Now)
	}

	// Render canvas to terminal
	a.canvas.Render(a.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	a.canvas.RenderBorder(a.chunkWriter, config.HUDRows)

	a.drawGlyphs(snap)
	a.drawPopups()
	a.drawHUD(snap)

	switch {
	case a.isInactive:
		a.drawInactivityScreen()
	case snap.State == game.StateStopped:
		a.drawStartScreen()
	case snap.State == game.StatePaused:
		a.drawCentered(a.fieldRows()/2, draw.ColorBold, StatusText(snap.State))
	}

	return a.chunkWriter.Flush()
}

// drawTarget draws a target's shape. Fading targets blink.
func drawTarget(c *draw.Canvas, t object.Target, now time.Time) {
	if t.Fading(now) && now.Sub(t.SpawnTime)/config.FadeBlinkPeriod%2 == 1 {
		return
	}
	cx, cy := t.Center()
	r := t.Radius()

	switch t.Kind {
	case object.KindBonus:
		c.DrawStar(cx, cy, r, true)
	case object.KindSmall:
		c.DrawCircle(cx, cy, r, true)
	case object.KindFast:
		c.DrawCircle(cx, cy, r, false)
		c.DrawCircle(cx, cy, r/2, false)
	default:
		c.DrawCircle(cx, cy, r, false)
	}
}

func (a *ANSI) fieldRows() int {
	return a.canvas.TerminalHeight()
}

// fieldText writes s centered on the field point (x, y) and marks the cells
// so the canvas repaints them next frame.
func (a *ANSI) fieldText(x, y float64, style, s string) {
	col, row := a.canvas.LogicalToTerminal(x, y)
	w := TextWidth(s)
	col -= w / 2
	if row < 1 || row > a.fieldRows() || col < 1 || col+w-1 > a.canvas.TerminalWidth() {
		return
	}
	a.chunkWriter.WriteStyledAt(col, row+config.HUDRows, style, s)
	a.canvas.MarkTextDirty(col, row, w)
}

// drawGlyphs puts each target's symbol at its center.
func (a *ANSI) drawGlyphs(snap game.Snapshot) {
	for _, t := range snap.Targets {
		cx, cy := t.Center()
		style := draw.ColorBold + kindColors[t.Kind]
		if t.Fading(snap.Now) {
			style = draw.ColorDim + kindColors[t.Kind]
		}
		a.fieldText(cx, cy, style, string(t.Kind.Glyph()))
	}
}

func (a *ANSI) drawPopups() {
	for _, p := range a.overlay.Active() {
		switch p.Kind {
		case PopupScore:
			a.fieldText(p.X, p.Y, draw.ColorBold+draw.ColorGreen, p.Text)
		case PopupMiss:
			a.fieldText(p.X, p.Y, draw.ColorRed, p.Text)
		case PopupMessage:
			a.drawCentered(2, draw.ColorBold+draw.ColorBrightMagenta, p.Text)
		}
	}
}

// drawCentered writes s centered on the given canvas row.
func (a *ANSI) drawCentered(row int, style, s string) {
	w := TextWidth(s)
	if row < 1 || row > a.fieldRows() || w > a.canvas.TerminalWidth() {
		return
	}
	col := (a.canvas.TerminalWidth()-w)/2 + 1
	a.chunkWriter.WriteStyledAt(col, row+config.HUDRows, style, s)
	a.canvas.MarkTextDirty(col, row, w)
}

// drawHUD draws the stats and inventory rows. Lines are padded to the full
// width so shrinking values don't leave residual characters on screen.
func (a *ANSI) drawHUD(snap game.Snapshot) {
	cw := a.chunkWriter
	cw.WriteStyledAt(1, 1, draw.ColorReverse, Fit(StatsLine(snap), a.renderWidth))
	if config.HUDRows > 1 {
		cw.WriteAt(1, 2, Fit(ItemsLine(snap), a.renderWidth))
	}
}

// drawStartScreen draws the title, controls and target legend.
func (a *ANSI) drawStartScreen() {
	lines := make([]string, 0, len(TitleArt)+len(ControlLines)+12)
	lines = append(lines, TitleArt...)
	if a.username != "" {
		lines = append(lines, fmt.Sprintf("Welcome, %s", a.username))
	}
	lines = append(lines, "")
	lines = append(lines, ControlLines...)
	lines = append(lines, "")
	lines = append(lines, KindLegend()...)
	lines = append(lines, "")

	top := max((a.fieldRows()-len(lines)-1)/2, 1)
	for i, line := range lines {
		a.drawCentered(top+i, "", line)
	}

	// Blinking start prompt
	if a.now().UnixMilli()/600%2 == 0 {
		a.drawCentered(top+len(lines), draw.ColorBold, StatusText(game.StateStopped))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (a *ANSI) drawInactivityScreen() {
	center := a.fieldRows() / 2
	a.drawCentered(center-2, draw.ColorBold+draw.ColorYellow, "INACTIVITY WARNING")

	left := int(config.InactivityDisconnectUser - a.now().Sub(a.lastInput).Seconds())
	a.drawCentered(center, "", fmt.Sprintf("You will be disconnected in %d seconds.", max(left, 0)))
	a.drawCentered(center+2, "", "Press any key to continue")
}
