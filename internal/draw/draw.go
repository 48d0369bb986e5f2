// Package draw renders to ANSI terminals: a half-block pixel canvas for the
// playing field and a chunked writer for text overlays.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// SGR color and style sequences for text overlays.
const (
	ColorReset         = "\033[0m"
	ColorBold          = "\033[1m"
	ColorDim           = "\033[2m"
	ColorReverse       = "\033[7m"
	ColorRed           = "\033[31m"
	ColorGreen         = "\033[32m"
	ColorYellow        = "\033[33m"
	ColorBlue          = "\033[34m"
	ColorMagenta       = "\033[35m"
	ColorCyan          = "\033[36m"
	ColorBrightRed     = "\033[91m"
	ColorBrightYellow  = "\033[93m"
	ColorBrightCyan    = "\033[96m"
	ColorBrightMagenta = "\033[95m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
