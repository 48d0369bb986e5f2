// Package input decodes raw terminal bytes into game commands: keys, SGR
// mouse clicks and focus reports.
package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// Action is a decoded player command.
type Action int

const (
	ActionQuit        Action = iota
	ActionToggle             // Space: start, pause or resume
	ActionReset              // Ctrl+R
	ActionUseItem            // 1, 2, 3
	ActionClick              // Left button press
	ActionFocusLost          // Terminal lost focus
	ActionFocusGained        // Terminal regained focus
)

// Event is one decoded command.
type Event struct {
	Action Action
	Item   int // ActionUseItem: 0-based slot
	Col    int // ActionClick: 0-based terminal cell
	Row    int
}

// Input is everything decoded since the previous ReadInput, in arrival order.
type Input struct {
	Events  []Event
	Pressed []byte
	Closed  bool // The underlying reader is gone
}

// Terminal modes the ANSI frontend switches on and off.
const (
	EnableMouse   = "\x1b[?1000h\x1b[?1006h"
	DisableMouse  = "\x1b[?1006l\x1b[?1000l"
	EnableFocus   = "\x1b[?1004h"
	DisableFocus  = "\x1b[?1004l"
	ctrlC         = 0x03
	ctrlR         = 0x12
	escape        = 0x1b
	maxSequenceSz = 32
)

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence from the previous read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes them. A sequence split across reads is completed on the next call.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.decode(buf)
}

func (s *Stream) decode(buf []byte) Input {
	// A lone pending escape with nothing following it was a bare Esc key
	if len(buf) == 0 {
		s.pending = nil
	}
	data := append(s.pending, buf...)

	events, rest := Parse(data)
	s.pending = append([]byte(nil), rest...)

	in := Input{Events: events, Pressed: buf, Closed: s.closed}
	if s.closed {
		in.Events = append(in.Events, Event{Action: ActionQuit})
	}
	return in
}

// Parse decodes as much of data as possible. rest is a trailing incomplete
// escape sequence, to be prefixed to the next read.
func Parse(data []byte) (events []Event, rest []byte) {
	for i := 0; i < len(data); i++ {
		b := data[i]

		if b == escape {
			ev, n, complete := parseEscape(data[i:])
			if !complete {
				return events, data[i:]
			}
			if ev != nil {
				events = append(events, *ev)
			}
			i += n - 1
			continue
		}

		if ev, ok := keyEvent(b); ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

// keyEvent maps a single byte to its command.
func keyEvent(b byte) (Event, bool) {
	switch b {
	case 'q', 'Q', ctrlC:
		return Event{Action: ActionQuit}, true
	case ' ':
		return Event{Action: ActionToggle}, true
	case ctrlR:
		return Event{Action: ActionReset}, true
	case '1', '2', '3':
		return Event{Action: ActionUseItem, Item: int(b - '1')}, true
	}
	return Event{}, false
}

// parseEscape decodes the escape sequence at the start of seq. n is the number
// of bytes consumed. complete is false when more bytes are needed.
func parseEscape(seq []byte) (ev *Event, n int, complete bool) {
	if len(seq) < 2 {
		return nil, 0, false
	}
	if seq[1] != '[' {
		// Alt+key or bare Esc followed by a key: drop the Esc only
		return nil, 1, true
	}
	if len(seq) < 3 {
		return nil, 0, false
	}

	switch seq[2] {
	case 'I':
		return &Event{Action: ActionFocusGained}, 3, true
	case 'O':
		return &Event{Action: ActionFocusLost}, 3, true
	case '<':
		return parseSGRMouse(seq)
	}

	// Skip any other CSI sequence up to its final byte
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			return nil, j + 1, true
		}
	}
	if len(seq) > maxSequenceSz {
		return nil, len(seq), true
	}
	return nil, 0, false
}

// parseSGRMouse decodes ESC [ < button ; col ; row (M|m). Only left-button
// presses produce an event.
func parseSGRMouse(seq []byte) (*Event, int, bool) {
	end := bytes.IndexAny(seq, "Mm")
	if end < 0 {
		if len(seq) > maxSequenceSz {
			return nil, len(seq), true
		}
		return nil, 0, false
	}
	n := end + 1

	fields := bytes.Split(seq[3:end], []byte{';'})
	if len(fields) != 3 {
		return nil, n, true
	}
	var vals [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(string(f))
		if err != nil {
			return nil, n, true
		}
		vals[i] = v
	}

	button, col, row := vals[0], vals[1], vals[2]
	press := seq[end] == 'M'
	// Low bits select the button; 32 flags motion, 64 the wheel
	if !press || button&0b11 != 0 || button&(32|64) != 0 {
		return nil, n, true
	}
	return &Event{Action: ActionClick, Col: col - 1, Row: row - 1}, n, true
}
