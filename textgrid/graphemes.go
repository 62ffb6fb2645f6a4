package textgrid

import "github.com/rivo/uniseg"

// CountGraphemes returns the number of grapheme clusters in s.
func CountGraphemes(s string) int {
	return uniseg.GraphemeClusterCount(s)
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
