package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/loomtui/loom/internal/geom"
)

// WrapWords packs words (each typically carrying its own trailing
// whitespace, e.g. "hello ") into lines no wider than maxWidth, breaking a
// single word between grapheme clusters when it alone cannot fit on an empty
// line (spec §4.7 exposes word-wrap as a layout-pipeline helper, not a
// widget; grounded on the recursive slice-to-fit loop in
// anathema-default-widgets/src/layout/text/wordbreak.rs — see
// DESIGN.md). Lines beyond maxHeight are dropped. The returned Size is
// the bounding box actually used, clamped to maxWidth/maxHeight.
func WrapWords(words []string, maxWidth, maxHeight int) ([]string, geom.Size) {
	if maxWidth <= 0 {
		return nil, geom.Size{}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0

	pushLine := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}

	for _, word := range words {
		ww := runewidth.StringWidth(word)
		switch {
		case curWidth+ww <= maxWidth:
			cur.WriteString(word)
			curWidth += ww
		case ww <= maxWidth:
			if curWidth > 0 {
				pushLine()
			}
			cur.WriteString(word)
			curWidth = ww
		default:
			// The word alone is wider than maxWidth: break it between grapheme clusters.
			if curWidth > 0 {
				pushLine()
			}
			for _, clusterStr := range graphemeClusters(word) {
				cw := runewidth.StringWidth(clusterStr)
				if curWidth+cw > maxWidth && curWidth > 0 {
					pushLine()
				}
				cur.WriteString(clusterStr)
				curWidth += cw
			}
		}
	}
	if curWidth > 0 || len(lines) == 0 {
		pushLine()
	}

	widest := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > widest {
			widest = w
		}
	}
	return clampLines(lines, maxHeight), boundSize(widest, len(lines), maxWidth, maxHeight)
}

func graphemeClusters(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func clampLines(lines []string, maxHeight int) []string {
	if maxHeight > 0 && len(lines) > maxHeight {
		return lines[:maxHeight]
	}
	return lines
}

func boundSize(width, height, maxWidth, maxHeight int) geom.Size {
	if width > maxWidth {
		width = maxWidth
	}
	if maxHeight > 0 && height > maxHeight {
		height = maxHeight
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return geom.Size{Width: uint16(width), Height: uint16(height)}
}

// SplitWords splits text on spaces, re-attaching one trailing space to
// every word but the last so wrapped lines preserve inter-word spacing.
func SplitWords(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, " ")
	words := make([]string, 0, len(parts))
	for i, p := range parts {
		if i < len(parts)-1 {
			p += " "
		}
		if p == "" {
			continue
		}
		words = append(words, p)
	}
	return words
}
