package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/paint"
)

func TestMoveCursorIsOneIndexed(t *testing.T) {
	assert.Equal(t, "\x1b[1;1H", moveCursor(0, 0))
	assert.Equal(t, "\x1b[6;11H", moveCursor(10, 5))
}

func TestLipglossColorRGB(t *testing.T) {
	c, ok := lipglossColor(paint.RGB(0x12, 0x34, 0x56))
	assert.True(t, ok)
	assert.Equal(t, lipgloss.Color("#123456"), c)
}

func TestLipglossColorReset(t *testing.T) {
	_, ok := lipglossColor(paint.Reset())
	assert.False(t, ok, "ColourReset must not override the terminal default")
}

func TestLipglossColorNamed(t *testing.T) {
	c, ok := lipglossColor(paint.Named("Red"))
	assert.True(t, ok)
	assert.Equal(t, lipgloss.Color("1"), c)
}

func TestLipglossColorNamedPassthroughForUnknownName(t *testing.T) {
	c, ok := lipglossColor(paint.Named("#abcdef"))
	assert.True(t, ok)
	assert.Equal(t, lipgloss.Color("#abcdef"), c)
}

func TestEncodeChangesMovesCursorOncePerContiguousRun(t *testing.T) {
	changes := []paint.Change{
		{Pos: geom.Pos{X: 0, Y: 0}, Kind: paint.ChangeGlyph, Glyph: paint.Glyph{Cluster: "a", Width: 1}},
		{Pos: geom.Pos{X: 1, Y: 0}, Kind: paint.ChangeGlyph, Glyph: paint.Glyph{Cluster: "b", Width: 1}},
	}
	out := encodeChanges(changes)
	assert.Equal(t, 1, strings.Count(out, "\x1b[1;1H"), "contiguous run emits a single cursor move")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
}

func TestEncodeChangesMovesCursorAgainAfterGap(t *testing.T) {
	changes := []paint.Change{
		{Pos: geom.Pos{X: 0, Y: 0}, Kind: paint.ChangeGlyph, Glyph: paint.Glyph{Cluster: "a", Width: 1}},
		{Pos: geom.Pos{X: 5, Y: 0}, Kind: paint.ChangeGlyph, Glyph: paint.Glyph{Cluster: "b", Width: 1}},
	}
	out := encodeChanges(changes)
	assert.Contains(t, out, moveCursor(0, 0))
	assert.Contains(t, out, moveCursor(5, 0))
}

func TestEncodeChangesClearWritesSpace(t *testing.T) {
	changes := []paint.Change{
		{Pos: geom.Pos{X: 2, Y: 1}, Kind: paint.ChangeClear},
	}
	out := encodeChanges(changes)
	assert.Equal(t, moveCursor(2, 1)+" ", out)
}

func TestEncodeChangesEmptyProducesEmptyString(t *testing.T) {
	assert.Empty(t, encodeChanges(nil))
}
