package defaultwidgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomtui/loom/internal/exprresolve"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/paint"
	"github.com/loomtui/loom/internal/widget"
)

func strValue(s string) exprresolve.Value {
	return exprresolve.Value{Kind: exprresolve.KindString, Str: s}
}

func newTextNode(arena *widget.Arena, text string, attrs map[string]widget.Attribute) widget.Id {
	if attrs == nil {
		attrs = map[string]widget.Attribute{}
	}
	id := arena.Insert(widget.Container{
		Kind:       widget.KindElement,
		Ident:      "text",
		Attributes: attrs,
		Value:      &widget.Attribute{Value: strValue(text)},
	})
	return id
}

func runLayoutAndPaint(t *testing.T, arena *widget.Arena, reg *layout.Registry, id widget.Id, constraints geom.Constraints, origin geom.Pos, buf *paint.Buffer) {
	t.Helper()
	p := layout.New(arena, reg)
	arena.SetRoot(id)
	p.Run(constraints, origin, buf)
}

func TestTextWrapsToConstraintWidth(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	id := newTextNode(arena, "one two three", nil)
	buf := paint.NewBuffer(10, 10)
	runLayoutAndPaint(t, arena, reg, id, geom.Constraints{MaxWidth: 8, MaxHeight: 10}, geom.Pos{}, buf)

	c, ok := arena.Get(id)
	require.True(t, ok)
	st, ok := c.Object.(textState)
	require.True(t, ok)
	assert.Equal(t, []string{"one two ", "three"}, st.lines)
}

func TestTextOverflowWrapKeepsSingleLine(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	attrs := map[string]widget.Attribute{"wrap": {Value: strValue("overflow")}}
	id := newTextNode(arena, "hello how are you", attrs)
	buf := paint.NewBuffer(20, 10)
	runLayoutAndPaint(t, arena, reg, id, geom.Constraints{MaxWidth: 8, MaxHeight: 10}, geom.Pos{}, buf)

	c, ok := arena.Get(id)
	require.True(t, ok)
	st := c.Object.(textState)
	assert.Equal(t, []string{"hello how are you"}, st.lines)
}

func TestTextCentreAlignmentPadsBothSides(t *testing.T) {
	arena := widget.New()
	reg := layout.NewRegistry()
	Register(reg)

	attrs := map[string]widget.Attribute{"text-align": {Value: strValue("centre")}}
	id := newTextNode(arena, "hi", attrs)
	buf := paint.NewBuffer(10, 1)
	// Force a fixed width wider than the text so padding is observable.
	runLayoutAndPaint(t, arena, reg, id, geom.Tight(geom.Size{Width: 6, Height: 1}), geom.Pos{}, buf)

	cell, ok := buf.Get(2, 0)
	require.True(t, ok)
	assert.Equal(t, paint.StateOccupied, cell.State)
}
