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

func TestVStackStacksTextChildrenVertically(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	a := newTextNode(arena, "ab", nil)
	b := newTextNode(arena, "cde", nil)
	root := arena.Insert(widget.Container{Kind: widget.KindElement, Ident: "vstack", Children: []widget.Id{a, b}})

	buf := paint.NewBuffer(10, 10)
	runLayoutAndPaint(t, arena, reg, root, geom.Unbounded(), geom.Pos{}, buf)

	rc, _ := arena.Get(root)
	assert.Equal(t, geom.Size{Width: 3, Height: 2}, rc.Cache.Size)

	ac, _ := arena.Get(a)
	bc, _ := arena.Get(b)
	assert.Equal(t, geom.Pos{X: 0, Y: 0}, ac.Pos)
	assert.Equal(t, geom.Pos{X: 0, Y: 1}, bc.Pos)
}

func TestHStackPlacesChildrenSideBySide(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	a := newTextNode(arena, "ab", map[string]widget.Attribute{"wrap": {Value: strValue("overflow")}})
	b := newTextNode(arena, "cde", map[string]widget.Attribute{"wrap": {Value: strValue("overflow")}})
	root := arena.Insert(widget.Container{Kind: widget.KindElement, Ident: "hstack", Children: []widget.Id{a, b}})

	buf := paint.NewBuffer(10, 10)
	runLayoutAndPaint(t, arena, reg, root, geom.Unbounded(), geom.Pos{}, buf)

	ac, _ := arena.Get(a)
	bc, _ := arena.Get(b)
	require.Equal(t, geom.Pos{X: 0, Y: 0}, ac.Pos)
	assert.Equal(t, geom.Pos{X: 2, Y: 0}, bc.Pos)
}
