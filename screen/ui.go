package screen

import (
	"bufio"
	"io"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/markwal/encrusted/textgrid"
)

// UIConfig configures a UI. Output is required; every other field has a
// usable zero value.
type UIConfig struct {
	Output io.Writer
	Input  io.Reader

	// Sink overrides the default ANSI sink over Output.
	Sink Sink

	// Events overrides the default key reader over Input.
	Events EventSource

	// Width caps the content width in columns; 0 means the full terminal
	// width. Narrower terminals win, wider ones center the content.
	Width int

	// MoreContext is the number of context lines kept above fresh output
	// when the paging prompt fires.
	MoreContext int

	Styles *Styles
}

// UI is a full-screen terminal layout: a status window across the top and a
// scrolling, word-wrapped main window below it. On a non-terminal output it
// degrades to plain passthrough so transcripts and pipes stay clean.
type UI struct {
	in       *bufio.Reader
	sink     Sink
	isTTY    bool
	reqWidth int
	width    int
	height   int
	margin   int
	statusH  int
	styles   Styles
	events   EventSource
	status   *Buffer
	main     *WrapBuffer
}

// NewUI sets up the two windows and, on a terminal, claims the scroll
// region below the status window.
func NewUI(cfg UIConfig) *UI {
	sink := cfg.Sink
	if sink == nil {
		sink = NewTermSink(cfg.Output)
	}
	styles := DefaultStyles()
	if cfg.Styles != nil {
		styles = *cfg.Styles
	}
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}

	u := &UI{
		in:      bufio.NewReader(cfg.Input),
		sink:    sink,
		styles:  styles,
		statusH: 1,
	}

	u.reqWidth = cfg.Width
	if u.reqWidth <= 0 {
		u.reqWidth = math.MaxInt
	}

	cols, rows := sink.Size()
	u.isTTY = cols > 0 && rows > 0

	if !u.isTTY {
		u.width, u.height = 60, 25
		u.status = NewBuffer(textgrid.Rect{Width: u.width, Height: 1}, sink)
		u.main = NewWrapBuffer(textgrid.Rect{Width: u.width, Height: u.height}, sink)
		return u
	}

	u.events = cfg.Events
	if u.events == nil {
		if f, ok := cfg.Input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if ev, err := NewTTYEvents(f); err == nil {
				u.events = ev
			}
		}
	}

	if cols > u.reqWidth {
		u.margin = (cols - u.reqWidth) / 2
	}
	u.width = cols - 2*u.margin
	u.height = rows

	sink.SetScrollRegion(u.statusH, rows-1)
	_ = sink.Flush()

	opts := []Option{WithPromptStyle(styles.Prompt)}
	if u.events != nil {
		opts = append(opts, WithEvents(u.events))
	}
	if cfg.MoreContext > 0 {
		opts = append(opts, WithMoreContext(cfg.MoreContext))
	}
	u.status = NewBuffer(textgrid.Rect{X: u.margin, Y: 0, Width: u.width, Height: u.statusH}, sink)
	u.main = NewWrapBuffer(textgrid.Rect{X: u.margin, Y: u.statusH, Width: u.width, Height: rows - u.statusH}, sink, opts...)
	return u
}

// Print writes text to the main window, word wrapped and paged. On a
// non-terminal the text passes through unchanged.
func (u *UI) Print(text string) {
	if !u.isTTY {
		u.sink.Print(text, Style{})
		_ = u.sink.Flush()
		return
	}
	u.main.PrintStyle(text, u.styles.Text)
}

// PrintObject writes an object name in the object style.
func (u *UI) PrintObject(name string) {
	if !u.isTTY {
		u.Print(name)
		return
	}
	u.main.PrintStyle(name, u.styles.Object)
}

// SplitWindow grows the status window to the given height, shrinking the
// main window underneath it. The main window keeps its bottom line.
func (u *UI) SplitWindow(height int) {
	if !u.isTTY {
		return
	}
	u.statusH = height
	u.status.Resize(textgrid.Rect{X: u.margin, Y: 0, Width: u.width, Height: height}, false)
	u.main.Resize(textgrid.Rect{X: u.margin, Y: height, Width: u.width, Height: u.height - height}, true)
	u.sink.SetScrollRegion(height, u.height-1)
	_ = u.sink.Flush()
	u.status.Refresh()
	u.main.Refresh()
}

// SetStatusBar draws a reverse-video status line with left-aligned and
// right-aligned halves.
func (u *UI) SetStatusBar(left, right string) {
	if !u.isTTY {
		return
	}
	w := u.status.Area().Width
	pad := w - 1 - textgrid.CountGraphemes(left)
	if pad < 0 {
		pad = 0
	}
	u.status.PrintAt(0, 0, " "+left+strings.Repeat(" ", pad), u.styles.Status)
	rw := textgrid.CountGraphemes(right) + 1
	if rw <= w {
		u.status.PrintAt(w-rw, 0, right, u.styles.Status)
	}
}

// ReadLine reads one line of input with escape sequences and control
// characters stripped and surrounding whitespace trimmed. On a terminal the
// cleaned input is replayed into the main window so a later reflow
// reproduces what is on screen.
func (u *UI) ReadLine() (string, error) {
	line, err := u.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	input := ansi.Strip(strings.TrimSpace(line))
	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
	input = strings.TrimSpace(input)

	u.main.ResetMoreCounter()

	if u.isTTY {
		// Undo the scroll the echoed newline caused, then print the input
		// ourselves so the buffer matches the screen.
		if scrollErr := u.sink.ScrollDown(1); scrollErr != nil {
			u.main.Refresh()
		}
		u.main.Print(input + "\n\n")
	}
	return input, nil
}

// Resize re-reads the terminal size, reflows the main window to the new
// width and redraws both windows. Call it when the terminal size changes.
func (u *UI) Resize() {
	if !u.isTTY {
		return
	}
	cols, rows := u.sink.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	u.margin = 0
	if cols > u.reqWidth {
		u.margin = (cols - u.reqWidth) / 2
	}
	u.width = cols - 2*u.margin
	u.height = rows

	u.status.Resize(textgrid.Rect{X: u.margin, Y: 0, Width: u.width, Height: u.statusH}, false)
	u.main.Resize(textgrid.Rect{X: u.margin, Y: u.statusH, Width: u.width, Height: rows - u.statusH}, true)
	u.sink.SetScrollRegion(u.statusH, rows-1)
	_ = u.sink.Flush()
	u.status.Refresh()
	u.main.Rewrap()
}

// Clear empties the main window.
func (u *UI) Clear() {
	if !u.isTTY {
		return
	}
	u.main.Clear()
}

// Close shows an exit prompt, waits for a key and releases the scroll
// region. On a non-terminal it does nothing.
func (u *UI) Close() {
	if !u.isTTY {
		return
	}
	if u.events != nil {
		u.main.Print("\n[Hit any key to exit.]\n")
		waitKey(u.events)
	}
	u.sink.ResetScrollRegion()
	u.sink.MoveTo(0, u.height-1)
	_ = u.sink.Flush()
}
