package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/target-hunter/internal/draw"
	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/game/config"
	"github.com/tomz197/target-hunter/internal/input"
)

// ANSIOptions configures an ANSI frontend.
type ANSIOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string           // Shown on the start screen when set
	IdleTimeout  bool             // Warn, then quit, after a period without input
	Now          func() time.Time // Wall clock; time.Now when nil
}

// ANSI renders a session to an ANSI terminal with half-block graphics and
// reads keys, SGR mouse reports and focus reports from the same stream. It is
// used for the local raw-mode terminal and for SSH sessions.
type ANSI struct {
	writer       io.Writer
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	inputStream  *input.Stream
	overlay      *Overlay
	termSizeFunc draw.TermSizeFunc
	now          func() time.Time

	renderWidth  int // Columns of the render area
	renderHeight int // Rows of the render area, HUD included
	offsetCol    int
	offsetRow    int
	fieldWidth   float64
	fieldHeight  float64

	username    string
	idleTimeout bool
	lastInput   time.Time
	isInactive  bool

	drawn     bool // At least one frame was drawn
	prevState game.State
	wasIdle   bool
}

// NewANSI creates a frontend reading from r and drawing to w.
func NewANSI(r *bufio.Reader, w io.Writer, opts ANSIOptions) *ANSI {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	a := &ANSI{
		writer:       w,
		canvas:       draw.NewScaledCanvas(1, 1, config.CellWidth, config.CellHeight),
		chunkWriter:  draw.NewChunkWriter(w, 0, 0),
		inputStream:  input.StartStream(r),
		overlay:      NewOverlay(),
		termSizeFunc: termSizeFunc,
		now:          now,
		username:     opts.Username,
		idleTimeout:  opts.IdleTimeout,
		lastInput:    now(),
	}
	a.overlay.now = now
	a.updateScreen()
	return a
}

// Overlay returns the popup feed. Register it as a session notifier.
func (a *ANSI) Overlay() *Overlay {
	return a.overlay
}

// Open prepares the terminal: hidden cursor, mouse and focus reporting.
func (a *ANSI) Open() error {
	a.chunkWriter.WriteString(input.EnableMouse + input.EnableFocus)
	draw.HideCursor(a.chunkWriter)
	draw.ClearScreen(a.chunkWriter)
	return a.chunkWriter.Flush()
}

// Close restores the terminal modes changed by Open.
func (a *ANSI) Close() error {
	a.chunkWriter.WriteString(input.DisableFocus + input.DisableMouse + draw.ColorReset)
	draw.ClearScreen(a.chunkWriter)
	draw.ShowCursor(a.chunkWriter)
	return a.chunkWriter.Flush()
}

// FieldSize returns the field dimensions for the current terminal size.
func (a *ANSI) FieldSize() (float64, float64) {
	return a.fieldWidth, a.fieldHeight
}

// Poll reads pending input and translates it into commands.
func (a *ANSI) Poll() []Command {
	var cmds []Command
	in := input.ReadInput(a.inputStream)

	if len(in.Pressed) > 0 {
		a.lastInput = a.now()
		a.isInactive = false
	}

	for _, ev := range in.Events {
		switch ev.Action {
		case input.ActionQuit:
			cmds = append(cmds, Command{Kind: CmdQuit})
		case input.ActionToggle:
			cmds = append(cmds, Command{Kind: CmdToggle})
		case input.ActionReset:
			cmds = append(cmds, Command{Kind: CmdReset})
		case input.ActionUseItem:
			cmds = append(cmds, Command{Kind: CmdUseItem, Item: game.ItemKind(ev.Item)})
		case input.ActionFocusLost:
			cmds = append(cmds, Command{Kind: CmdPause})
		case input.ActionClick:
			if x, y, ok := a.cellToField(ev.Col, ev.Row); ok {
				cmds = append(cmds, Command{Kind: CmdClick, X: x, Y: y})
			}
		}
	}

	if a.idleTimeout {
		idle := a.now().Sub(a.lastInput).Seconds()
		switch {
		case idle > config.InactivityDisconnectUser:
			cmds = append(cmds, Command{Kind: CmdQuit})
		case idle > config.InactivityWarnUser && !a.isInactive:
			a.isInactive = true
			cmds = append(cmds, Command{Kind: CmdPause})
		}
	}

	if a.updateScreen() {
		cmds = append(cmds, Command{Kind: CmdResize})
	}
	return cmds
}

// cellToField maps a 0-based terminal cell to the field point at its center.
func (a *ANSI) cellToField(col, row int) (float64, float64, bool) {
	canvasCol := col + 1 - a.offsetCol
	canvasRow := row + 1 - a.offsetRow - config.HUDRows
	return a.canvas.TerminalToLogical(canvasCol, canvasRow)
}

// updateScreen handles terminal resize, clamping to max render resolution.
// It reports whether the field size changed.
func (a *ANSI) updateScreen() bool {
	termWidth, termHeight, err := a.termSizeFunc()
	if err != nil {
		return false
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	if renderWidth == a.renderWidth && renderHeight == a.renderHeight &&
		offsetCol == a.offsetCol && offsetRow == a.offsetRow {
		return false
	}

	fieldRows := max(renderHeight-config.HUDRows, 1)
	fieldWidth := float64(max(renderWidth, 1)) * config.CellWidth
	fieldHeight := float64(fieldRows) * config.CellHeight
	changed := fieldWidth != a.fieldWidth || fieldHeight != a.fieldHeight

	a.renderWidth, a.renderHeight = renderWidth, renderHeight
	a.offsetCol, a.offsetRow = offsetCol, offsetRow
	a.fieldWidth, a.fieldHeight = fieldWidth, fieldHeight

	a.canvas.SetSize(max(renderWidth, 1), fieldRows, fieldWidth, fieldHeight)
	a.canvas.SetOffset(offsetCol, offsetRow+config.HUDRows)
	a.chunkWriter.SetOffset(offsetCol, offsetRow)

	// Old borders and offset content would otherwise linger
	if a.drawn {
		draw.ClearScreen(a.chunkWriter)
		a.canvas.ForceRedraw()
	}
	return changed
}
