package defaultwidgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/paint"
	"github.com/loomtui/loom/internal/widget"
)

func TestBorderGrowsChildSizeByFrame(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	child := newTextNode(arena, "hi", map[string]widget.Attribute{"wrap": {Value: strValue("overflow")}})
	root := arena.Insert(widget.Container{Kind: widget.KindElement, Ident: "border", Children: []widget.Id{child}})

	buf := paint.NewBuffer(10, 10)
	runLayoutAndPaint(t, arena, reg, root, geom.Unbounded(), geom.Pos{}, buf)

	rc, ok := arena.Get(root)
	require.True(t, ok)
	assert.Equal(t, geom.Size{Width: 4, Height: 3}, rc.Cache.Size)

	cc, _ := arena.Get(child)
	assert.Equal(t, geom.Pos{X: 1, Y: 1}, cc.Pos)
}

func TestBorderPaintsThinCornersByDefault(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	child := newTextNode(arena, "hi", map[string]widget.Attribute{"wrap": {Value: strValue("overflow")}})
	root := arena.Insert(widget.Container{Kind: widget.KindElement, Ident: "border", Children: []widget.Id{child}})

	buf := paint.NewBuffer(10, 10)
	runLayoutAndPaint(t, arena, reg, root, geom.Unbounded(), geom.Pos{}, buf)

	tl, ok := buf.Get(0, 0)
	require.True(t, ok)
	assert.Equal(t, "┌", tl.Glyph.Cluster)
}

func TestBorderThickUsesDoubleLineGlyphs(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	child := newTextNode(arena, "hi", map[string]widget.Attribute{"wrap": {Value: strValue("overflow")}})
	root := arena.Insert(widget.Container{Kind: widget.KindElement, Ident: "border-thick", Children: []widget.Id{child}})

	buf := paint.NewBuffer(10, 10)
	runLayoutAndPaint(t, arena, reg, root, geom.Unbounded(), geom.Pos{}, buf)

	tl, ok := buf.Get(0, 0)
	require.True(t, ok)
	assert.Equal(t, "╔", tl.Glyph.Cluster)
}
