package paint

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BeginSync / EndSync are the terminal "synchronized update" hints some
// backends understand (spec §4.8 "The renderer wraps the sequence with
// backend-specific begin/end 'synchronized update' hints"); bubbletea's
// own ANSI writer recognises these same DEC private-mode sequences.
const (
	BeginSync = "\x1b[?2026h"
	EndSync   = "\x1b[?2026l"
)

// DrawChanges writes cursor moves, SGR style sets, and glyph bytes for
// changes to out (spec §4.8 "draw_changes(output, changes)"). Style
// transitions are rendered through lipgloss.Style so Loom reuses the
// teacher's SGR-serialisation library instead of hand-rolling escape
// codes.
func DrawChanges(out io.Writer, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(BeginSync)

	lastX, lastY := -2, -2
	var lastStyle *Style
	for _, ch := range changes {
		if ch.Pos.Y != lastY || ch.Pos.X != lastX+1 {
			fmt.Fprintf(&b, "\x1b[%d;%dH", ch.Pos.Y+1, ch.Pos.X+1)
		}
		switch ch.Kind {
		case ChangeClear:
			b.WriteString(" ")
		case ChangeGlyph:
			if ch.Style != nil {
				lastStyle = ch.Style
			}
			if lastStyle != nil {
				b.WriteString(lipglossStyle(*lastStyle).Render(ch.Glyph.Cluster))
			} else {
				b.WriteString(ch.Glyph.Cluster)
			}
		}
		lastX, lastY = ch.Pos.X, ch.Pos.Y
	}

	b.WriteString(EndSync)
	_, err := io.WriteString(out, b.String())
	return err
}

// lipglossStyle converts a Style into the equivalent lipgloss.Style.
func lipglossStyle(s Style) lipgloss.Style {
	out := lipgloss.NewStyle()
	if c, ok := lipglossColour(s.Fg); ok {
		out = out.Foreground(c)
	}
	if c, ok := lipglossColour(s.Bg); ok {
		out = out.Background(c)
	}
	return out.
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		Reverse(s.Reverse).
		Faint(s.Dim).
		Strikethrough(s.CrossedOut)
}

func lipglossColour(c Colour) (lipgloss.Color, bool) {
	switch c.Kind {
	case ColourNamed:
		return lipgloss.Color(c.Named), true
	case ColourRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
	case ColourAnsi:
		return lipgloss.Color(fmt.Sprintf("%d", c.Ansi)), true
	default:
		return "", false
	}
}
