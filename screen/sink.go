package screen

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/markwal/encrusted/textgrid"
)

// ErrNotTerminal reports that a native terminal operation was requested on
// a sink whose writer is not a terminal.
var ErrNotTerminal = errors.New("screen: writer is not a terminal")

// Sink is the terminal output half of the screen package: commands are
// queued and committed with Flush. Buffers own the only references to their
// sink, which is what keeps a single writer in charge of the terminal.
//
// Coordinates are zero-based screen cells; implementations translate to
// whatever their device wants.
type Sink interface {
	// MoveTo queues a cursor move to the absolute screen position.
	MoveTo(x, y int)

	// Print queues styled text at the current cursor position.
	Print(text string, style Style)

	// ScrollUp scrolls the scroll region up n lines immediately. An error
	// means the device cannot scroll natively and the caller should fall
	// back to a full redraw.
	ScrollUp(n int) error

	// ScrollDown is the inverse of ScrollUp.
	ScrollDown(n int) error

	// SetScrollRegion restricts native scrolling to the inclusive line
	// range [top, bottom]. ResetScrollRegion removes the restriction.
	SetScrollRegion(top, bottom int)
	ResetScrollRegion()

	// Clear queues blanking of a screen region.
	Clear(area textgrid.Rect)

	// Size reports the device dimensions, or (0, 0) when unknown.
	Size() (cols, rows int)

	// Flush commits all queued commands.
	Flush() error
}

// TermSink writes ANSI escape sequences to an io.Writer, queueing into a
// buffer so a sequence of commands reaches the terminal in one write.
type TermSink struct {
	out  *bufio.Writer
	file *os.File
}

// NewTermSink returns a sink writing to w. When w is an *os.File on a real
// terminal the sink can report its size and scroll natively.
func NewTermSink(w io.Writer) *TermSink {
	s := &TermSink{out: bufio.NewWriter(w)}
	if f, ok := w.(*os.File); ok {
		s.file = f
	}
	return s
}

func (s *TermSink) isTerminal() bool {
	return s.file != nil && term.IsTerminal(int(s.file.Fd()))
}

func (s *TermSink) MoveTo(x, y int) {
	_, _ = s.out.WriteString(ansi.CursorPosition(x+1, y+1))
}

func (s *TermSink) Print(text string, style Style) {
	if style.Prefix != "" {
		_, _ = s.out.WriteString(style.Prefix)
	}
	_, _ = s.out.WriteString(text)
	if style.Prefix != "" {
		_, _ = s.out.WriteString(ansi.ResetStyle)
	}
}

func (s *TermSink) ScrollUp(n int) error {
	if !s.isTerminal() {
		return ErrNotTerminal
	}
	_, _ = s.out.WriteString(ansi.ScrollUp(n))
	return s.out.Flush()
}

func (s *TermSink) ScrollDown(n int) error {
	if !s.isTerminal() {
		return ErrNotTerminal
	}
	_, _ = s.out.WriteString(ansi.ScrollDown(n))
	return s.out.Flush()
}

func (s *TermSink) SetScrollRegion(top, bottom int) {
	_, _ = s.out.WriteString(ansi.SetTopBottomMargins(top+1, bottom+1))
}

func (s *TermSink) ResetScrollRegion() {
	_, _ = s.out.WriteString(ansi.SetTopBottomMargins(0, 0))
}

func (s *TermSink) Clear(area textgrid.Rect) {
	if area.Width <= 0 {
		return
	}
	blank := strings.Repeat(" ", area.Width)
	for y := area.Y; y < area.Y+area.Height; y++ {
		s.MoveTo(area.X, y)
		_, _ = s.out.WriteString(blank)
	}
}

func (s *TermSink) Size() (cols, rows int) {
	if !s.isTerminal() {
		return 0, 0
	}
	cols, rows, err := term.GetSize(int(s.file.Fd()))
	if err != nil {
		return 0, 0
	}
	return cols, rows
}

func (s *TermSink) Flush() error {
	return s.out.Flush()
}
