// Package screen draws scrolling, styled, word-wrapped text onto a
// character-cell terminal.
//
// A Buffer covers a rectangular region of the screen and keeps an in-memory
// copy of everything it draws, so any part of the region can be redrawn at
// will. A WrapBuffer layers word wrapping, scrollback, reflow on resize and
// a "[more]" paging prompt on top of a Buffer. UI composes a one-row status
// window with a scrolling WrapBuffer, which is the layout an interactive
// text program wants.
//
// All drawing goes through a Sink, an explicit handle for the terminal.
// Output errors are deliberately dropped: the in-memory model stays
// authoritative and the next Refresh reproduces it. Nothing here is safe
// for concurrent use; every buffer expects a single caller.
package screen
