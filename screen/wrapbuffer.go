package screen

import (
	"strings"

	"github.com/markwal/encrusted/textgrid"
	"github.com/markwal/encrusted/wordwrap"
)

const morePrompt = "[more]"

// WrapBuffer is a Buffer that word wraps what it prints. It keeps every
// printed line in unwrapped form as well, so the wrapping can be redone at
// a new width, and it pauses output with a "[more]" prompt when a burst of
// text would scroll past faster than anyone can read.
type WrapBuffer struct {
	buf         *Buffer
	lines       []*textgrid.Row[Style]
	moreContext int
	moreLines   int
	events      EventSource
	prompt      Style
}

// NewWrapBuffer returns an empty wrap buffer covering area.
func NewWrapBuffer(area textgrid.Rect, sink Sink, opts ...Option) *WrapBuffer {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &WrapBuffer{
		buf:         NewBuffer(area, sink),
		moreContext: cfg.moreContext,
		events:      cfg.events,
		prompt:      cfg.prompt,
	}
}

// Area returns the screen region the buffer covers.
func (w *WrapBuffer) Area() textgrid.Rect { return w.buf.Area() }

// Clear drops all content, wrapped and unwrapped, and blanks the area.
func (w *WrapBuffer) Clear() {
	w.lines = nil
	w.buf.Clear()
}

func (w *WrapBuffer) lastLineTerminated() bool {
	l := len(w.lines)
	if l == 0 {
		return true
	}
	return strings.HasSuffix(w.lines[l-1].Text, "\n")
}

// Print appends unstyled text to the bottom of the buffer, wrapping and
// scrolling as needed.
func (w *WrapBuffer) Print(s string) {
	w.PrintStyle(s, Style{})
}

// PrintStyle appends styled text to the bottom of the buffer. Text without
// a trailing newline continues on the same logical line across calls.
func (w *WrapBuffer) PrintStyle(s string, style Style) {
	if w.lastLineTerminated() {
		w.lines = append(w.lines, textgrid.NewRow[Style]())
	}
	w.lines[len(w.lines)-1].Append(s, style)
	w.wrapAppend(s, style)
}

// wrapAppend wraps s onto the bottom screen line, continuing from whatever
// that line already holds, scrolling up once per additional line.
func (w *WrapBuffer) wrapAppend(s string, style Style) {
	offset := 0
	if len(w.buf.rows) > 0 {
		offset = textgrid.CountGraphemes(w.buf.rows[len(w.buf.rows)-1].Text)
	}

	first := true
	fresh := false
	for sg := wordwrap.NewAt(s, w.buf.area.Width, offset); sg.Next(); {
		// A leading empty segment means the continuation did not fit on the
		// partial line; it opens a fresh bottom row that the next segment
		// writes into without scrolling again. Every other empty segment is
		// a real blank line. Rewrap mirrors this row accounting exactly.
		if !fresh && (!first || sg.Segment() == "") {
			w.ScrollUp()
		}
		w.buf.PrintAt(offset, w.buf.area.Height-1, sg.Segment(), style)
		offset = 0
		fresh = first && sg.Segment() == ""
		first = false
	}
}

// ScrollUp moves everything up one line, opening a blank line at the
// bottom. When a screenful has gone by since the last pause it shows the
// "[more]" prompt and waits for a key before continuing.
func (w *WrapBuffer) ScrollUp() {
	w.buf.firstRow++
	if err := w.buf.sink.ScrollUp(1); err != nil {
		w.buf.Refresh()
	}

	if w.moreContext <= w.buf.area.Height {
		w.moreLines++
		if w.moreLines+w.moreContext > w.buf.area.Height {
			w.moreLines = 0
			if w.events != nil {
				w.buf.PrintAt(0, w.buf.area.Height-1, morePrompt, w.prompt)
				waitKey(w.events)
				w.buf.EraseLineToEndAt(0, w.buf.area.Height-1)
			}
		}
	}
}

// Rewrap rebuilds every screen row from the unwrapped lines at the current
// width and redraws, keeping the bottom of the content anchored to the
// bottom of the area. Call it after a Resize that changed the width.
func (w *WrapBuffer) Rewrap() {
	width := w.buf.area.Width
	rows := make([]*textgrid.Row[Style], 0, len(w.buf.rows))
	cur := textgrid.NewRow[Style]()

	for _, line := range w.lines {
		runs := line.RunRanges()
		if !runs.Next() {
			panic("screen: line with no style runs")
		}
		_, re := runs.Range()

		first := true
		for sg := wordwrap.New(line.Text, width); sg.Next(); {
			// Same row accounting as wrapAppend: an empty segment finishes
			// the current row and opens a fresh one that the next segment
			// fills.
			if !first || sg.Segment() == "" {
				rows = append(rows, cur)
				cur = textgrid.NewRow[Style]()
			}
			first = false
			cur.Text = sg.Segment()
			rowStart := sg.Start()
			segEnd := rowStart + len(cur.Text)
			linePos := rowStart
			rowPos := 0

			for linePos < segEnd {
				for linePos >= re {
					if !runs.Next() {
						panic("screen: style runs do not cover line text")
					}
					_, re = runs.Range()
				}
				runEnd := min(len(cur.Text), re-rowStart)
				cur.ApplyStyle(rowPos, runEnd, runs.Style())
				rowPos = runEnd
				linePos = min(re, segEnd)
			}
		}
	}
	rows = append(rows, cur)

	height := w.buf.area.Height
	if len(rows) < height {
		pad := make([]*textgrid.Row[Style], height-len(rows), height)
		for i := range pad {
			pad[i] = textgrid.NewRow[Style]()
		}
		rows = append(pad, rows...)
	}
	w.buf.firstRow = len(rows) - height
	w.buf.rows = rows
	w.buf.Refresh()
}

// Resize moves the buffer to a new screen region; see Buffer.Resize.
func (w *WrapBuffer) Resize(area textgrid.Rect, keepLast bool) {
	w.buf.Resize(area, keepLast)
}

// Refresh redraws the entire area from the wrapped rows.
func (w *WrapBuffer) Refresh() {
	w.buf.Refresh()
}

// SetMorePrompt sets how many lines of context stay above fresh output when
// the prompt pauses scrolling.
func (w *WrapBuffer) SetMorePrompt(contextLines int) {
	w.moreContext = contextLines
}

// ResetMoreCounter marks the current contents as read. Call it whenever the
// user has had a chance to catch up, such as after reading input.
func (w *WrapBuffer) ResetMoreCounter() {
	w.moreLines = 0
}
