package screen

import (
	"regexp"
	"strings"

	"github.com/markwal/encrusted/textgrid"
)

var ansiRegexp = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

// fakeSink renders sink commands into a rune grid so tests can assert on
// what a terminal would show. Cells hold one rune each, which is enough for
// the ASCII fixtures the tests use.
type fakeSink struct {
	cols, rows int
	canScroll  bool
	noSize     bool
	top, bot   int
	cx, cy     int
	chars      [][]rune
	styles     [][]Style
	printed    []string
	scrollUps  int
	scrollDns  int
}

func newFakeSink(cols, rows int, canScroll bool) *fakeSink {
	s := &fakeSink{cols: cols, rows: rows, canScroll: canScroll, bot: rows - 1}
	s.chars = make([][]rune, rows)
	s.styles = make([][]Style, rows)
	for y := range s.chars {
		s.chars[y] = blankRunes(cols)
		s.styles[y] = make([]Style, cols)
	}
	return s
}

func blankRunes(n int) []rune {
	row := make([]rune, n)
	for i := range row {
		row[i] = ' '
	}
	return row
}

func (s *fakeSink) MoveTo(x, y int) { s.cx, s.cy = x, y }

func (s *fakeSink) Print(text string, style Style) {
	s.printed = append(s.printed, text)
	for _, r := range text {
		if s.cy >= 0 && s.cy < s.rows && s.cx >= 0 && s.cx < s.cols {
			s.chars[s.cy][s.cx] = r
			s.styles[s.cy][s.cx] = style
		}
		s.cx++
	}
}

func (s *fakeSink) ScrollUp(n int) error {
	if !s.canScroll {
		return ErrNotTerminal
	}
	s.scrollUps += n
	for i := 0; i < n; i++ {
		for y := s.top; y < s.bot; y++ {
			s.chars[y] = s.chars[y+1]
			s.styles[y] = s.styles[y+1]
		}
		s.chars[s.bot] = blankRunes(s.cols)
		s.styles[s.bot] = make([]Style, s.cols)
	}
	return nil
}

func (s *fakeSink) ScrollDown(n int) error {
	if !s.canScroll {
		return ErrNotTerminal
	}
	s.scrollDns += n
	for i := 0; i < n; i++ {
		for y := s.bot; y > s.top; y-- {
			s.chars[y] = s.chars[y-1]
			s.styles[y] = s.styles[y-1]
		}
		s.chars[s.top] = blankRunes(s.cols)
		s.styles[s.top] = make([]Style, s.cols)
	}
	return nil
}

func (s *fakeSink) SetScrollRegion(top, bottom int) { s.top, s.bot = top, bottom }

func (s *fakeSink) ResetScrollRegion() { s.top, s.bot = 0, s.rows-1 }

func (s *fakeSink) Clear(area textgrid.Rect) {
	for y := area.Y; y < area.Y+area.Height && y < s.rows; y++ {
		for x := area.X; x < area.X+area.Width && x < s.cols; x++ {
			s.chars[y][x] = ' '
			s.styles[y][x] = Style{}
		}
	}
}

func (s *fakeSink) Size() (int, int) {
	if s.noSize {
		return 0, 0
	}
	return s.cols, s.rows
}

func (s *fakeSink) Flush() error { return nil }

// line returns the visible text of screen line y with trailing blanks
// removed.
func (s *fakeSink) line(y int) string {
	return strings.TrimRight(string(s.chars[y]), " ")
}

func (s *fakeSink) printedText() string {
	return strings.Join(s.printed, "")
}

// scriptEvents satisfies every prompt with a space key and counts how often
// it was asked.
type scriptEvents struct {
	reads int
}

func (s *scriptEvents) ReadEvent() (Event, error) {
	s.reads++
	return Event{Kind: EventKey, Rune: ' '}, nil
}

// queuedEvents replays a fixed event sequence, then space keys, counting
// every read.
type queuedEvents struct {
	events []Event
	reads  int
}

func (q *queuedEvents) ReadEvent() (Event, error) {
	q.reads++
	if len(q.events) == 0 {
		return Event{Kind: EventKey, Rune: ' '}, nil
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, nil
}
