package screen

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// EventKind classifies input events.
type EventKind int

const (
	// EventKey is a keypress carrying the rune that was typed.
	EventKey EventKind = iota
	// EventMouse is a mouse report; the paging prompt ignores these.
	EventMouse
	// EventOther covers escape sequences that are neither.
	EventOther
)

// Event is a single input event.
type Event struct {
	Kind EventKind
	Rune rune
}

// EventSource delivers input events. The paging prompt blocks on ReadEvent
// until a key arrives.
type EventSource interface {
	ReadEvent() (Event, error)
}

// waitKey blocks until a non-mouse event arrives, discarding mouse reports
// along the way.
func waitKey(src EventSource) {
	for {
		ev, err := src.ReadEvent()
		if err != nil || ev.Kind != EventMouse {
			return
		}
	}
}

// TTYEvents reads raw key events from a terminal. Each ReadEvent call puts
// the terminal into raw mode and restores it before returning, so the rest
// of the program sees cooked input.
type TTYEvents struct {
	in *os.File
}

// NewTTYEvents returns an event source reading from f, which must be a
// terminal.
func NewTTYEvents(f *os.File) (*TTYEvents, error) {
	if !term.IsTerminal(int(f.Fd())) {
		return nil, ErrNotTerminal
	}
	return &TTYEvents{in: f}, nil
}

// ReadEvent blocks until one event is available. Escape sequences are read
// to completion and classified so callers can tell mouse reports apart from
// keys.
func (t *TTYEvents) ReadEvent() (Event, error) {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return Event{}, fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	buf := make([]byte, 1)
	if _, err := t.in.Read(buf); err != nil {
		return Event{}, fmt.Errorf("read event: %w", err)
	}
	if buf[0] != 0x1b {
		return Event{Kind: EventKey, Rune: rune(buf[0])}, nil
	}

	// Escape sequence. Read the introducer and enough of the body to tell
	// mouse reports apart from ordinary keys.
	if _, err := t.in.Read(buf); err != nil || buf[0] != '[' {
		return Event{Kind: EventKey, Rune: 0x1b}, err
	}
	if _, err := t.in.Read(buf); err != nil {
		return Event{}, fmt.Errorf("read event: %w", err)
	}
	switch buf[0] {
	case 'M':
		// X10 mouse report: three fixed payload bytes follow.
		payload := make([]byte, 3)
		_, _ = t.in.Read(payload)
		return Event{Kind: EventMouse}, nil
	case '<':
		// SGR mouse report: parameters terminated by M or m.
		for {
			if _, err := t.in.Read(buf); err != nil {
				return Event{}, fmt.Errorf("read event: %w", err)
			}
			if buf[0] == 'M' || buf[0] == 'm' {
				return Event{Kind: EventMouse}, nil
			}
		}
	default:
		// Cursor keys and friends; drain any remaining parameter bytes.
		for buf[0] >= 0x30 && buf[0] <= 0x3f {
			if _, err := t.in.Read(buf); err != nil {
				break
			}
		}
		return Event{Kind: EventOther}, nil
	}
}
