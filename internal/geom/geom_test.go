package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnboundedAndTight(t *testing.T) {
	u := Unbounded()
	assert.True(t, u.IsUnbounded())

	tight := Tight(Size{Width: 10, Height: 4})
	assert.True(t, tight.IsWidthTight())
	assert.True(t, tight.IsHeightTight())
}

func TestSubFromMaxFloorsAtMin(t *testing.T) {
	c := Constraints{MinWidth: 5, MaxWidth: 10, MinHeight: 2, MaxHeight: 6}
	out := c.SubFromMax(20, 1)
	assert.Equal(t, uint16(5), out.MaxWidth)
	assert.Equal(t, uint16(5), out.MaxHeight)
}

func TestDivideGivesRemainderToLastShare(t *testing.T) {
	c := Constraints{MaxWidth: 10, MaxHeight: 4}
	parts := c.Divide(3)
	assert.Len(t, parts, 3)
	assert.Equal(t, uint16(3), parts[0].MaxWidth)
	assert.Equal(t, uint16(3), parts[1].MaxWidth)
	assert.Equal(t, uint16(4), parts[2].MaxWidth)
}

func TestRegionContains(t *testing.T) {
	r := Region{Pos: Pos{X: 2, Y: 2}, Size: Size{Width: 3, Height: 3}}
	assert.True(t, r.Contains(Pos{X: 2, Y: 2}))
	assert.True(t, r.Contains(Pos{X: 4, Y: 4}))
	assert.False(t, r.Contains(Pos{X: 5, Y: 2}))
}

func TestClampFitsWithinBounds(t *testing.T) {
	c := Constraints{MinWidth: 2, MaxWidth: 5, MinHeight: 1, MaxHeight: 3}
	assert.Equal(t, Size{Width: 2, Height: 1}, c.Clamp(Size{Width: 0, Height: 0}))
	assert.Equal(t, Size{Width: 5, Height: 3}, c.Clamp(Size{Width: 99, Height: 99}))
}
