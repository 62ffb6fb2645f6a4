// Package wordwrap segments text into lines no wider than a target number
// of terminal columns, breaking at Unicode word boundaries.
//
// The segmenter is lazy and restartable: it walks the input one segment at
// a time, so a caller printing to a scrolling display can interleave output
// with paging. Widths are measured in grapheme clusters, matching a
// terminal where every cluster occupies one cell.
package wordwrap
