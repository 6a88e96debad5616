// Package input turns raw terminal bytes into key and mouse events.
package input

import (
	"bufio"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Kind identifies an input event.
type Kind int

const (
	KeyRune Kind = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyInterrupt // Ctrl-C
	MouseClick
)

// Event is one key press or mouse click.
type Event struct {
	Kind Kind
	Rune rune // Set for KeyRune
	Col  int  // 1-based screen column, set for MouseClick
	Row  int  // 1-based screen row, set for MouseClick
}

// Input is everything read since the previous frame.
type Input struct {
	Events []Event
	Closed bool // The reader hit EOF or an error
}

// Active reports whether the player did anything this frame.
func (in Input) Active() bool {
	return len(in.Events) > 0
}

// Stream delivers input bytes via a channel so frames can drain them
// without blocking.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence from the last frame
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
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

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
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

	events, rest := Parse(buf)
	if !s.closed && len(rest) > 0 {
		s.pending = append([]byte(nil), rest...)
	}
	return Input{Events: events, Closed: s.closed}
}

// Parse decodes buf into events. A trailing escape sequence that is not
// yet complete is returned as rest. A lone ESC at the very end counts as
// the Escape key.
func Parse(buf []byte) (events []Event, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		switch {
		case b == '\x1b':
			if i+1 == len(buf) {
				events = append(events, Event{Kind: KeyEscape})
				return events, nil
			}
			if buf[i+1] != '[' {
				events = append(events, Event{Kind: KeyEscape})
				i++
				continue
			}
			n, ev, ok := parseCSI(buf[i:])
			if n == 0 {
				return events, buf[i:]
			}
			if ok {
				events = append(events, ev)
			}
			i += n
		case b == '\r' || b == '\n':
			events = append(events, Event{Kind: KeyEnter})
			i++
		case b == '\b' || b == '\x7f':
			events = append(events, Event{Kind: KeyBackspace})
			i++
		case b == '\t':
			events = append(events, Event{Kind: KeyTab})
			i++
		case b == '\x03':
			events = append(events, Event{Kind: KeyInterrupt})
			i++
		default:
			r, size := utf8.DecodeRune(buf[i:])
			if r == utf8.RuneError && size <= 1 {
				if !utf8.FullRune(buf[i:]) {
					return events, buf[i:]
				}
				i++
				continue
			}
			if unicode.IsPrint(r) {
				events = append(events, Event{Kind: KeyRune, Rune: r})
			}
			i += size
		}
	}
	return events, nil
}

// parseCSI reads one CSI sequence starting at seq[0] == ESC. It returns the
// number of bytes consumed (0 if the sequence is incomplete) and a click
// event when the sequence is an SGR left-button press.
func parseCSI(seq []byte) (int, Event, bool) {
	for j := 2; j < len(seq); j++ {
		c := seq[j]
		if c < 0x40 || c > 0x7e {
			continue // Parameter or intermediate byte
		}
		if len(seq) > 2 && seq[2] == '<' && (c == 'M' || c == 'm') {
			ev, ok := parseSGRMouse(seq[3:j], c == 'M')
			return j + 1, ev, ok
		}
		return j + 1, Event{}, false
	}
	return 0, Event{}, false
}

// parseSGRMouse decodes "b;x;y" from an SGR mouse report.
func parseSGRMouse(params []byte, press bool) (Event, bool) {
	var fields [3]int
	idx := 0
	start := 0
	for k := 0; k <= len(params); k++ {
		if k < len(params) && params[k] != ';' {
			continue
		}
		if idx >= len(fields) {
			return Event{}, false
		}
		v, err := strconv.Atoi(string(params[start:k]))
		if err != nil {
			return Event{}, false
		}
		fields[idx] = v
		idx++
		start = k + 1
	}
	// Button 0 is the left button; motion and wheel set higher bits.
	if idx != 3 || !press || fields[0] != 0 {
		return Event{}, false
	}
	return Event{Kind: MouseClick, Col: fields[1], Row: fields[2]}, true
}
