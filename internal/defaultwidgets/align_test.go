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

func TestAlignClaimsFullConstrainedSize(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	child := newTextNode(arena, "x", map[string]widget.Attribute{"wrap": {Value: strValue("overflow")}})
	root := arena.Insert(widget.Container{
		Kind:       widget.KindElement,
		Ident:      "align",
		Children:   []widget.Id{child},
		Attributes: map[string]widget.Attribute{"alignment": {Value: strValue("centre")}},
	})

	buf := paint.NewBuffer(3, 3)
	runLayoutAndPaint(t, arena, reg, root, geom.Tight(geom.Size{Width: 3, Height: 3}), geom.Pos{}, buf)

	rc, ok := arena.Get(root)
	require.True(t, ok)
	assert.Equal(t, geom.Size{Width: 3, Height: 3}, rc.Cache.Size)
}

func TestAlignCentresChildWithinFullSize(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	child := newTextNode(arena, "x", map[string]widget.Attribute{"wrap": {Value: strValue("overflow")}})
	root := arena.Insert(widget.Container{
		Kind:       widget.KindElement,
		Ident:      "align",
		Children:   []widget.Id{child},
		Attributes: map[string]widget.Attribute{"alignment": {Value: strValue("centre")}},
	})

	buf := paint.NewBuffer(3, 3)
	runLayoutAndPaint(t, arena, reg, root, geom.Tight(geom.Size{Width: 3, Height: 3}), geom.Pos{}, buf)

	cc, ok := arena.Get(child)
	require.True(t, ok)
	assert.Equal(t, geom.Pos{X: 1, Y: 1}, cc.Pos)
}

func TestAlignDefaultsToTopLeft(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	child := newTextNode(arena, "x", map[string]widget.Attribute{"wrap": {Value: strValue("overflow")}})
	root := arena.Insert(widget.Container{Kind: widget.KindElement, Ident: "align", Children: []widget.Id{child}})

	buf := paint.NewBuffer(3, 3)
	runLayoutAndPaint(t, arena, reg, root, geom.Tight(geom.Size{Width: 3, Height: 3}), geom.Pos{}, buf)

	cc, ok := arena.Get(child)
	require.True(t, ok)
	assert.Equal(t, geom.Pos{X: 0, Y: 0}, cc.Pos)
}
