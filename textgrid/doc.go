// Package textgrid stores styled text for a rectangular grid of character
// cells, such as a terminal screen drawn with a fixed width font.
//
// A Row holds one line of UTF-8 text together with a run-length compressed
// list of style spans. The style type is generic: anything comparable can be
// attached to a span of text, and adjacent spans with equal styles are kept
// merged so the run list stays minimal.
//
// Callers address positions in a row by grapheme cluster index (user
// perceived characters), while the run bookkeeping works in byte offsets.
// The translation between the two happens in one place, so multi-byte and
// combining characters behave as single cells throughout.
package textgrid
