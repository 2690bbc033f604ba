package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loomtui/loom/internal/paint"
)

// namedColours maps the small set of CSS-ish colour names the template
// language accepts (spec §6.4) to the ANSI-16 index lipgloss.Color expects.
// Anything not in this table (a hex string, a bare ANSI number) is passed
// through to lipgloss.Color unchanged.
var namedColours = map[string]string{
	"black": "0", "red": "1", "green": "2", "yellow": "3",
	"blue": "4", "magenta": "5", "cyan": "6", "white": "7",
	"gray": "8", "grey": "8",
	"brightblack": "8", "brightred": "9", "brightgreen": "10", "brightyellow": "11",
	"brightblue": "12", "brightmagenta": "13", "brightcyan": "14", "brightwhite": "15",
}

// lipglossColor converts a paint.Colour into a lipgloss.TerminalColor,
// reporting ok=false for paint.ColourReset (no override of the terminal
// default).
func lipglossColor(c paint.Colour) (lipgloss.TerminalColor, bool) {
	switch c.Kind {
	case paint.ColourRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
	case paint.ColourAnsi:
		return lipgloss.Color(strconv.Itoa(int(c.Ansi))), true
	case paint.ColourNamed:
		name := strings.ToLower(c.Named)
		if idx, ok := namedColours[name]; ok {
			return lipgloss.Color(idx), true
		}
		return lipgloss.Color(c.Named), true
	default:
		return nil, false
	}
}

// lipglossStyle builds the lipgloss.Style rendering a paint.Style, reusing
// paint.Style's own doc comment's observation that its Colour already
// normalises to what lipgloss.Color wraps.
func lipglossStyle(s paint.Style) lipgloss.Style {
	out := lipgloss.NewStyle()
	if fg, ok := lipglossColor(s.Fg); ok {
		out = out.Foreground(fg)
	}
	if bg, ok := lipglossColor(s.Bg); ok {
		out = out.Background(bg)
	}
	if s.Bold {
		out = out.Bold(true)
	}
	if s.Italic {
		out = out.Italic(true)
	}
	if s.Underline {
		out = out.Underline(true)
	}
	if s.Reverse {
		out = out.Reverse(true)
	}
	if s.Dim {
		out = out.Faint(true)
	}
	if s.CrossedOut {
		out = out.Strikethrough(true)
	}
	return out
}

// moveCursor returns the CSI sequence placing the cursor at the 0-indexed
// (x, y) cell.
func moveCursor(x, y int) string {
	return fmt.Sprintf("\x1b[%d;%dH", y+1, x+1)
}

// encodeChanges renders a Diff result as a single byte stream: one cursor
// move per run of changes, and every glyph written through lipgloss with
// the most recent non-nil Style carried forward (paint.Diff leaves Style
// nil when it repeats the previous glyph's), so each styled glyph carries
// its own SGR set and reset.
func encodeChanges(changes []paint.Change) string {
	var b strings.Builder
	lastY, lastX := -1, -1
	var lastStyle *paint.Style

	for _, ch := range changes {
		if ch.Pos.Y != lastY || ch.Pos.X != lastX {
			b.WriteString(moveCursor(ch.Pos.X, ch.Pos.Y))
		}

		switch ch.Kind {
		case paint.ChangeClear:
			b.WriteString(" ")
		case paint.ChangeGlyph:
			if ch.Style != nil {
				lastStyle = ch.Style
			}
			text := ch.Glyph.Cluster
			if lastStyle != nil {
				text = lipglossStyle(*lastStyle).Render(text)
			}
			b.WriteString(text)
		}

		lastY = ch.Pos.Y
		lastX = ch.Pos.X + ch.Glyph.Width
		if ch.Kind == paint.ChangeClear {
			lastX = ch.Pos.X + 1
		}
	}
	return b.String()
}

const (
	seqEnterAltScreen = "\x1b[?1049h"
	seqExitAltScreen  = "\x1b[?1049l"
	seqHideCursor     = "\x1b[?25l"
	seqShowCursor     = "\x1b[?25h"
	seqEnableMouse    = "\x1b[?1002h\x1b[?1006h"
	seqDisableMouse   = "\x1b[?1002l\x1b[?1006l"
	seqClearScreen    = "\x1b[2J\x1b[H"
)
