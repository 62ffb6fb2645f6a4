package wordwrap

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Segmenter walks a string and produces width-bounded line segments.
//
// Breaks happen at word boundaries; whitespace at a break point is consumed
// so no line starts with a dangling space. A word wider than the whole line
// is hard-split at the width'th grapheme boundary. A "\n" in the input ends
// the current segment, and a trailing "\n" additionally yields one empty
// segment so callers can tell "line ended" from "blank line follows".
type Segmenter struct {
	src      string
	pos      int
	width    int
	curWidth int
	start    int
	segment  string
}

// New returns a segmenter that wraps src to the given width, starting at
// column zero.
func New(src string, width int) *Segmenter {
	return NewAt(src, width, 0)
}

// NewAt returns a segmenter whose first segment continues a line that
// already has startColumn cells in use.
func NewAt(src string, width, startColumn int) *Segmenter {
	return &Segmenter{src: src, width: width, curWidth: startColumn}
}

// Next advances to the next segment. It returns false once the input is
// exhausted; empty input yields no segments.
func (sg *Segmenter) Next() bool {
	if sg.pos >= len(sg.src) {
		return false
	}
	start := sg.pos

	// A lone trailing newline emits one empty segment: the signal that the
	// next print must not continue this line.
	if sg.src[sg.pos:] == "\n" {
		sg.pos++
		sg.start, sg.segment = start, ""
		return true
	}

	w := newWords(sg.src[start:])
	for {
		off, word, ok := w.next()
		if !ok {
			break
		}
		next := start + off

		if word == "\n" {
			// min keeps a trailing newline in the input so the empty
			// segment above is still emitted on the next call.
			sg.pos = min(next+1, len(sg.src)-1)
			sg.curWidth = 0
			sg.start, sg.segment = start, sg.src[start:next]
			return true
		}

		graphemes := uniseg.GraphemeClusterCount(word)
		if sg.curWidth+graphemes > sg.width {
			if sg.curWidth == 0 {
				// The word alone is wider than the line: hard-split it.
				n := max(sg.width, 1)
				cut := next + graphemeOffset(word, n)
				sg.pos = cut
				sg.start, sg.segment = next, sg.src[next:cut]
				return true
			}

			// Consume whitespace after the break so the next line does not
			// start with it.
			end := next
			sg.pos = len(sg.src)
			rest := newWords(sg.src[end:])
			for {
				j, tok, ok := rest.raw()
				if !ok {
					break
				}
				if tok == "\n" || !allWhitespace(tok) {
					sg.pos = end + j
					break
				}
			}
			sg.curWidth = 0
			sg.start, sg.segment = start, sg.src[start:end]
			return true
		}

		sg.curWidth += graphemes
	}

	sg.pos = len(sg.src)
	if sg.pos > start {
		sg.start, sg.segment = start, sg.src[start:sg.pos]
		return true
	}
	return false
}

// Segment returns the text of the current segment. Newlines are never
// included; an empty segment marks a blank line.
func (sg *Segmenter) Segment() string { return sg.segment }

// Start returns the byte offset of the current segment within the input.
func (sg *Segmenter) Start() int { return sg.start }

// words iterates Unicode word-boundary tokens with one refinement: a token
// containing an alphanumeric absorbs an immediately following
// punctuation-only token, so "Jim's" or "dog." is one word and wrapping
// never separates a word from its trailing punctuation.
type words struct {
	src        string
	rest       string
	state      int
	off        int
	pending    string
	pendingOff int
	hasPending bool
}

func newWords(s string) *words {
	return &words{src: s, rest: s, state: -1}
}

// raw yields the next unrefined boundary token and its byte offset.
func (w *words) raw() (int, string, bool) {
	if w.hasPending {
		w.hasPending = false
		return w.pendingOff, w.pending, true
	}
	if len(w.rest) == 0 {
		return 0, "", false
	}
	var tok string
	tok, w.rest, w.state = uniseg.FirstWordInString(w.rest, w.state)
	off := w.off
	w.off += len(tok)
	return off, tok, true
}

func (w *words) peek() (string, bool) {
	if !w.hasPending {
		off, tok, ok := w.raw()
		if !ok {
			return "", false
		}
		w.pendingOff, w.pending, w.hasPending = off, tok, true
	}
	return w.pending, true
}

func (w *words) next() (int, string, bool) {
	off, tok, ok := w.raw()
	if !ok {
		return 0, "", false
	}
	if containsAlnum(tok) {
		if nxt, ok := w.peek(); ok && containsASCIIPunct(nxt) {
			w.hasPending = false
			tok = w.src[off : off+len(tok)+len(nxt)]
		}
	}
	return off, tok, true
}

func containsAlnum(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	})
}

func containsASCIIPunct(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return r < 0x80 && (strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r))
	})
}

func allWhitespace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// graphemeOffset returns the byte offset immediately after the first n
// grapheme clusters of s, or len(s) if s has fewer than n clusters.
func graphemeOffset(s string, n int) int {
	off := 0
	rest := s
	state := -1
	for i := 0; i < n && len(rest) > 0; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		off += len(cluster)
	}
	return off
}
