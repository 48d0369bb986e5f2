package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderWritesOnlyChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)

	var first bytes.Buffer
	c.Render(&first)
	if got := strings.Count(first.String(), "\033["); got != 50 {
		t.Errorf("got %d, want every cell written on first render", got)
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("got %q, want no output for an unchanged frame", second.String())
	}

	c.setPixel(0, 0)
	var third bytes.Buffer
	c.Render(&third)
	if want := "\033[1;1H" + string(BlockUpperHalf); third.String() != want {
		t.Errorf("got %q, want %q", third.String(), want)
	}

	c.Clear()
	c.MarkTextDirty(3, 2, 2)
	var fourth bytes.Buffer
	c.Render(&fourth)
	if got := strings.Count(fourth.String(), "\033["); got != 3 {
		t.Errorf("got %d writes, want the cleared cell and two dirty cells", got)
	}
}

func TestDrawCircle(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)

	c.DrawCircle(20, 20, 10, true)
	if !c.Pixel(20, 20) {
		t.Error("filled circle does not cover its center")
	}
	if c.Pixel(5, 20) || c.Pixel(20, 35) {
		t.Error("pixels outside the radius are set")
	}

	c.Clear()
	c.DrawCircle(20, 20, 10, false)
	if c.Pixel(20, 20) {
		t.Error("ring fills its center")
	}
	if !c.Pixel(10, 20) && !c.Pixel(11, 20) {
		t.Error("no ring pixels near the left edge")
	}
}

func TestDrawCircleTiny(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.DrawCircle(500, 500, 5, false)

	set := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.Pixel(x, y) {
				set++
			}
		}
	}
	if set == 0 {
		t.Error("sub-pixel circle not drawn")
	}
}

func TestDrawStar(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	c.DrawStar(20, 20, 15, true)

	if !c.Pixel(20, 20) {
		t.Error("filled star does not cover its center")
	}
	if !c.Pixel(20, 6) {
		t.Error("top point not drawn")
	}
}

func TestTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(80, 20, 800, 400)

	x, y, ok := c.TerminalToLogical(1, 1)
	if !ok || x != 5 || y != 10 {
		t.Errorf("got (%v, %v, %v), want (5, 10, true)", x, y, ok)
	}
	if col, row := c.LogicalToTerminal(x, y); col != 1 || row != 1 {
		t.Errorf("got (%d, %d), want round trip to (1, 1)", col, row)
	}
	if _, _, ok := c.TerminalToLogical(81, 1); ok {
		t.Error("column past the edge accepted")
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 24, 80, 24, 0, 0},
		{300, 24, 200, 24, 50, 0},
		{300, 100, 200, 60, 50, 20},
	}
	for _, tt := range tests {
		rw, rh, oc, or := ClampTermSize(tt.w, tt.h, 200, 60)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("ClampTermSize(%d, %d) = %d,%d,%d,%d, want %d,%d,%d,%d",
				tt.w, tt.h, rw, rh, oc, or, tt.rw, tt.rh, tt.offCol, tt.offRow)
		}
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)

	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", maxChunkSize*2))
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if !strings.HasPrefix(out.String(), "\033[2;3Hhi") {
		t.Errorf("got %q, want offset cursor move", out.String()[:12])
	}
	if cw.Len() != 0 {
		t.Errorf("got %d, want empty buffer after flush", cw.Len())
	}
}
