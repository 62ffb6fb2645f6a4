package textgrid

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Run marks the start of a style span within a Row's text. The span covers
// the bytes from Start up to the next run's Start (or the end of the text
// for the last run).
type Run[S comparable] struct {
	Start int
	Style S
}

// Row is a single line of text with run-length compressed styling.
//
// Invariants: Runs is never empty, Runs[0].Start is 0, starts are strictly
// increasing and always fall on UTF-8 boundaries, and the derived spans
// partition Text exactly.
type Row[S comparable] struct {
	Runs []Run[S]
	Text string
}

// NewRow returns an empty row carrying a single run of the zero style.
func NewRow[S comparable]() *Row[S] {
	var def S
	return &Row[S]{Runs: []Run[S]{{Start: 0, Style: def}}}
}

// RunRanges iterates over the byte ranges of a row's runs, in order.
type RunRanges[S comparable] struct {
	row        *Row[S]
	cur        int
	start, end int
}

// RunRanges returns an iterator over the byte range of each run. The ranges
// cover Text exactly, in order.
func (r *Row[S]) RunRanges() *RunRanges[S] {
	return &RunRanges[S]{row: r}
}

// Next advances to the next run range. It returns false when all runs have
// been visited.
func (it *RunRanges[S]) Next() bool {
	if it.cur >= len(it.row.Runs) {
		return false
	}
	it.start = it.row.Runs[it.cur].Start
	if it.cur+1 < len(it.row.Runs) {
		it.end = it.row.Runs[it.cur+1].Start
	} else {
		it.end = len(it.row.Text)
	}
	it.cur++
	return true
}

// Index returns the run index of the current range.
func (it *RunRanges[S]) Index() int { return it.cur - 1 }

// Range returns the half-open byte range of the current run.
func (it *RunRanges[S]) Range() (start, end int) { return it.start, it.end }

// Style returns the style of the current run.
func (it *RunRanges[S]) Style() S { return it.row.Runs[it.cur-1].Style }

// Spans iterates (text, style) pairs for a row, truncated to a cell width.
type Spans[S comparable] struct {
	row       *Row[S]
	runs      *RunRanges[S]
	width     int
	graphemes int
	text      string
	style     S
}

// Spans returns an iterator over the row's styled text pieces, cut off once
// the cumulative grapheme count reaches width. The final piece may be
// shortened mid-run, at a grapheme boundary, to respect the cap exactly.
func (r *Row[S]) Spans(width int) *Spans[S] {
	return &Spans[S]{row: r, runs: r.RunRanges(), width: width}
}

// Next advances to the next styled piece.
func (it *Spans[S]) Next() bool {
	if it.graphemes >= it.width {
		return false
	}
	if !it.runs.Next() {
		return false
	}
	start, end := it.runs.Range()
	if cut := start + graphemeOffset(it.row.Text[start:end], it.width-it.graphemes); cut < end {
		end = cut
	}
	it.text = it.row.Text[start:end]
	it.style = it.runs.Style()
	it.graphemes += CountGraphemes(it.text)
	return true
}

// Text returns the text of the current piece.
func (it *Spans[S]) Text() string { return it.text }

// Style returns the style of the current piece.
func (it *Spans[S]) Style() S { return it.style }

// findGrapheme resolves a grapheme cluster index to a byte offset. If the
// row has fewer clusters than n, the returned offset lies past the end of
// Text by pad bytes: the number of single-cell spaces needed to reach the
// requested position.
func (r *Row[S]) findGrapheme(n int) (pos, pad int) {
	count := 0
	off := 0
	rest := r.Text
	state := -1
	for len(rest) > 0 {
		if count >= n {
			return off, 0
		}
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		off += len(cluster)
		count++
	}
	pad = n - count
	return len(r.Text) + pad, pad
}

// ApplyStyle re-derives the run list so the byte range [start, end) carries
// style, splitting and merging runs as needed. Runs outside the range keep
// their styles; a restoring run is inserted at end when the text after it
// would otherwise change style.
func (r *Row[S]) ApplyStyle(start, end int, style S) {
	newRuns := make([]Run[S], 0, len(r.Runs)+2)
	pushedStart := false
	it := r.RunRanges()
	for it.Next() {
		i := it.Index()
		rs, re := it.Range()
		if rs < start {
			newRuns = append(newRuns, r.Runs[i])
			if end < re {
				// The whole range falls inside this run; restore its
				// style after end.
				pushedStart = true
				if r.Runs[i].Style != style {
					newRuns = append(newRuns,
						Run[S]{Start: start, Style: style},
						Run[S]{Start: end, Style: r.Runs[i].Style})
				}
			}
			continue
		}
		if !pushedStart {
			pushedStart = true
			if i == 0 || r.Runs[i-1].Style != style {
				newRuns = append(newRuns, Run[S]{Start: start, Style: style})
			}
		}
		if rs <= end && end < re && r.Runs[i].Style != style {
			newRuns = append(newRuns, Run[S]{Start: end, Style: r.Runs[i].Style})
		}
		if rs > end {
			newRuns = append(newRuns, r.Runs[i])
		}
	}
	if !pushedStart {
		// The whole range falls inside the last run.
		last := r.Runs[len(r.Runs)-1].Style
		if last != style {
			newRuns = append(newRuns, Run[S]{Start: start, Style: style})
			if end < len(r.Text) {
				newRuns = append(newRuns, Run[S]{Start: end, Style: last})
			}
		}
	}
	r.Runs = newRuns
}

// OverwriteAt writes s starting at grapheme index n, replacing an equal
// number of existing clusters, padding with spaces when n lies beyond the
// current end of the row. It returns the grapheme index just after the
// written text so writes can be chained left to right.
func (r *Row[S]) OverwriteAt(n int, s string, style S) int {
	sLen := CountGraphemes(s)
	if sLen == 0 {
		return n
	}

	start, pad := r.findGrapheme(n)

	end := start
	if start < len(r.Text) {
		end = start + graphemeOffset(r.Text[start:], sLen)
	}

	if pad > 0 {
		r.Text += strings.Repeat(" ", pad)
	}
	r.Text = r.Text[:start] + s + r.Text[end:]
	r.ApplyStyle(start, start+len(s), style)
	return n + sLen
}

// TruncateAt cuts the row's text at grapheme index n. Positions beyond the
// end leave the row unchanged. Runs past the cut no longer cover any text
// and are dropped.
func (r *Row[S]) TruncateAt(n int) {
	pos, _ := r.findGrapheme(n)
	if pos >= len(r.Text) {
		return
	}
	r.Text = r.Text[:pos]
	for len(r.Runs) > 1 && r.Runs[len(r.Runs)-1].Start >= len(r.Text) {
		r.Runs = r.Runs[:len(r.Runs)-1]
	}
}

// Append adds s to the end of the row with the given style.
func (r *Row[S]) Append(s string, style S) {
	l := len(r.Text)
	r.Text += s
	r.ApplyStyle(l, l+len(s), style)
}
