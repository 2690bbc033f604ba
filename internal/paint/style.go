// Package paint implements the cell-grid paint buffer and terminal diff
// (spec §4.8, §6.4): a double-buffered grid of styled glyphs, the minimal
// diff between frames, and an emitter writing SGR/cursor-move bytes to a
// backend.
package paint

// Colour mirrors lipgloss.Color's small closed set rather than wrapping it
// directly: Loom diffs plain struct values cell-by-cell every frame, and a
// lipgloss.Color is itself just a string wrapper this type normalises to a
// comparable shape (spec §6.4 "Reset | <named> | Rgb(u8,u8,u8) |
// AnsiVal(u8)").
type Colour struct {
	Kind ColourKind
	R, G, B uint8
	Ansi    uint8
	Named   string
}

// ColourKind discriminates Colour's payload.
type ColourKind int

const (
	ColourReset ColourKind = iota
	ColourNamed
	ColourRGB
	ColourAnsi
)

// Reset is the terminal-default colour.
func Reset() Colour { return Colour{Kind: ColourReset} }

// Named returns a named colour (e.g. "red", passed through to lipgloss).
func Named(name string) Colour { return Colour{Kind: ColourNamed, Named: name} }

// RGB returns a 24-bit truecolor value.
func RGB(r, g, b uint8) Colour { return Colour{Kind: ColourRGB, R: r, G: g, B: b} }

// AnsiVal returns an indexed ANSI-256 colour.
func AnsiVal(v uint8) Colour { return Colour{Kind: ColourAnsi, Ansi: v} }

// Style is a cell's visual attributes (spec §6.4).
type Style struct {
	Fg, Bg                             Colour
	Bold, Italic, Underline            bool
	Reverse, Dim, CrossedOut           bool
}
