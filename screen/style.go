package screen

import (
	"strings"

	"github.com/markwal/encrusted/internal/palette"
)

// Style describes a terminal style as an ANSI SGR prefix sequence. The zero
// value is the terminal's default rendition. Styles compare by value, which
// is all the row model needs to keep its run lists minimal.
type Style struct {
	Prefix string
}

// NewStyle combines SGR prefixes into a single style.
func NewStyle(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		if p != "" {
			b.WriteString(p)
		}
	}
	return Style{Prefix: b.String()}
}

// Styles groups the semantic styles used by the UI layer.
type Styles struct {
	Text   Style
	Object Style
	Status Style
	Prompt Style
}

// DefaultStyles returns the standard UI styling: bold object names, a
// reverse-video status bar, and a plain paging prompt.
func DefaultStyles() Styles {
	return Styles{
		Object: NewStyle(palette.Bold),
		Status: NewStyle(palette.Reverse),
	}
}

// PlainStyles returns styling with every attribute disabled, for terminals
// or captures where escape sequences are unwelcome.
func PlainStyles() Styles {
	return Styles{}
}
