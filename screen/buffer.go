package screen

import (
	"strings"

	"github.com/markwal/encrusted/textgrid"
)

// Buffer is a rectangular region of the screen backed by an in-memory copy
// of everything drawn into it. Rows accumulate as drawing reaches them;
// firstRow selects which stored row appears at the top of the area, so rows
// above it form scrollback.
type Buffer struct {
	area     textgrid.Rect
	rows     []*textgrid.Row[Style]
	firstRow int
	sink     Sink
}

// NewBuffer returns an empty buffer covering area, drawing through sink.
func NewBuffer(area textgrid.Rect, sink Sink) *Buffer {
	return &Buffer{area: area, sink: sink}
}

// Area returns the screen region the buffer covers.
func (b *Buffer) Area() textgrid.Rect { return b.area }

// row returns the stored row shown at line y, growing storage as needed.
func (b *Buffer) row(y int) *textgrid.Row[Style] {
	i := b.firstRow + y
	for len(b.rows) <= i {
		b.rows = append(b.rows, textgrid.NewRow[Style]())
	}
	return b.rows[i]
}

// PrintAt writes styled text at column x of line y, both relative to the
// buffer area, and returns the column just after the written text.
func (b *Buffer) PrintAt(x, y int, text string, style Style) int {
	ret := b.row(y).OverwriteAt(x, text, style)
	b.sink.MoveTo(b.area.X+x, b.area.Y+y)
	b.sink.Print(text, style)
	_ = b.sink.Flush()
	return ret
}

// EraseLineToEndAt blanks line y from column x to the right edge.
func (b *Buffer) EraseLineToEndAt(x, y int) {
	b.row(y).TruncateAt(x)
	b.sink.MoveTo(b.area.X+x, b.area.Y+y)
	if n := b.area.Width - x; n > 0 {
		b.sink.Print(strings.Repeat(" ", n), Style{})
	}
	_ = b.sink.Flush()
}

// Refresh redraws the entire area from the stored rows. Every cell is
// written, so whatever was on the screen before is fully replaced.
func (b *Buffer) Refresh() {
	y := 0
	if b.firstRow < len(b.rows) {
		for _, row := range b.rows[b.firstRow:] {
			if y >= b.area.Height {
				break
			}
			b.sink.MoveTo(b.area.X, b.area.Y+y)
			shown := 0
			for it := row.Spans(b.area.Width); it.Next(); {
				b.sink.Print(it.Text(), it.Style())
				shown += textgrid.CountGraphemes(it.Text())
			}
			if shown < b.area.Width {
				b.sink.Print(strings.Repeat(" ", b.area.Width-shown), Style{})
			}
			y++
		}
	}
	for ; y < b.area.Height; y++ {
		b.sink.MoveTo(b.area.X, b.area.Y+y)
		b.sink.Print(strings.Repeat(" ", b.area.Width), Style{})
	}
	_ = b.sink.Flush()
}

// Resize moves the buffer to a new screen region. Nothing is drawn until
// Refresh. With keepLast the bottom line keeps its content across the
// height change; otherwise the top line does.
func (b *Buffer) Resize(area textgrid.Rect, keepLast bool) {
	if keepLast {
		b.firstRow += area.Height
		b.firstRow -= min(b.firstRow, b.area.Height)
	}
	b.area = area
}

// Clear drops all stored rows and blanks the area.
func (b *Buffer) Clear() {
	b.firstRow = 0
	b.rows = nil
	b.Refresh()
}
