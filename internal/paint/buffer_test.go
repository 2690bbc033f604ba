package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomtui/loom/internal/geom"
)

func TestWriteStringMarksWideGlyphContinuation(t *testing.T) {
	b := NewBuffer(4, 1)
	clip := geom.Region{Size: geom.Size{Width: 4, Height: 1}}
	b.WriteString(0, 0, "中x", Style{}, clip)

	c0, ok := b.Get(0, 0)
	require.True(t, ok)
	assert.Equal(t, StateOccupied, c0.State)
	assert.Equal(t, 2, c0.Glyph.Width)

	c1, ok := b.Get(1, 0)
	require.True(t, ok)
	assert.Equal(t, StateContinuation, c1.State)

	c2, ok := b.Get(2, 0)
	require.True(t, ok)
	assert.Equal(t, "x", c2.Glyph.Cluster)
}

func TestWriteStringDropsWritesOutsideClip(t *testing.T) {
	b := NewBuffer(3, 1)
	clip := geom.Region{Size: geom.Size{Width: 2, Height: 1}}
	b.WriteString(0, 0, "abc", Style{}, clip)

	c2, ok := b.Get(2, 0)
	require.True(t, ok)
	assert.Equal(t, StateEmpty, c2.State)
}

func TestFillRepeatsPatternAcrossRegion(t *testing.T) {
	b := NewBuffer(4, 2)
	region := geom.Region{Pos: geom.Pos{X: 0, Y: 0}, Size: geom.Size{Width: 4, Height: 2}}
	b.Fill(region, "-", Style{})

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c, _ := b.Get(x, y)
			assert.Equal(t, "-", c.Glyph.Cluster)
		}
	}
}

func TestGetOutOfBoundsReportsFalse(t *testing.T) {
	b := NewBuffer(2, 2)
	_, ok := b.Get(5, 5)
	assert.False(t, ok)
}
