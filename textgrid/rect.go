package textgrid

// Rect describes a rectangular region of the screen in cell coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}
