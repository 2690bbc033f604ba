// Package layout implements the measure/position/paint pipeline that walks
// a widget.Arena tree: the Widget contract, layout-cache validity, the
// top-down layout/position pass, and floating-widget handling (spec §4.7).
package layout

import (
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/paint"
	"github.com/loomtui/loom/internal/widget"
)

// Ctx is the per-frame context threaded through a Widget's pipeline calls:
// the arena owning its children, the widget's own Id and resolved
// Attributes, and (during Paint only) the cell buffer to write into along
// with this widget's clip region.
type Ctx struct {
	Arena      *widget.Arena
	ID         widget.Id
	Attributes map[string]widget.Attribute
	Buf        *paint.Buffer
	Clip       geom.Region
}

// Widget is the per-ident behaviour contract consumed by the pipeline
// (spec §4.7). An Ident with no registered Widget falls back to
// DefaultWidget's stacking behaviour.
type Widget interface {
	// Layout returns a size satisfying min <= size <= max on both axes.
	Layout(children []widget.Id, constraints geom.Constraints, ctx Ctx) geom.Size

	// Position assigns absolute positions to children.
	Position(children []widget.Id, pos geom.Pos, ctx Ctx)

	// Paint writes this widget's own glyphs/style; children are painted
	// separately by the pipeline walk.
	Paint(ctx Ctx)

	// Floats reports whether this widget's size should be reported as
	// zero to its parent (e.g. absolute/floating positioning).
	Floats() bool

	// InnerBounds is used for hit testing; a widget with padding or a
	// border shrinks this relative to its full region.
	InnerBounds(pos geom.Pos, size geom.Size) geom.Region

	// NeedsReflow reports whether internal state changed since last
	// layout (e.g. scroll offset) and a re-layout is required even if
	// constraints are unchanged.
	NeedsReflow() bool
}

// Registry maps widget idents to their Widget behaviour. A nil entry (or a
// missing one) falls back to DefaultWidget.
type Registry struct {
	widgets map[string]Widget
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{widgets: map[string]Widget{}}
}

// Register associates ident with its Widget behaviour.
func (r *Registry) Register(ident string, w Widget) {
	r.widgets[ident] = w
}

// Lookup returns ident's Widget, or DefaultWidget{} if none is registered.
func (r *Registry) Lookup(ident string) Widget {
	if w, ok := r.widgets[ident]; ok {
		return w
	}
	return DefaultWidget{}
}

// DefaultWidget stacks children vertically at their natural size and never
// floats or requests reflow; it is the fallback for any ident without a
// registered Widget, and a reasonable base for container-only elements.
type DefaultWidget struct{}

func (DefaultWidget) Layout(children []widget.Id, constraints geom.Constraints, ctx Ctx) geom.Size {
	var w, h uint16
	for _, id := range children {
		c, ok := ctx.Arena.Get(id)
		if !ok {
			continue
		}
		if c.Cache.Size.Width > w {
			w = c.Cache.Size.Width
		}
		h += c.Cache.Size.Height
	}
	return constraints.Clamp(geom.Size{Width: w, Height: h})
}

func (DefaultWidget) Position(children []widget.Id, pos geom.Pos, ctx Ctx) {
	y := pos.Y
	for _, id := range children {
		c, ok := ctx.Arena.Get(id)
		if !ok {
			continue
		}
		c.Pos = geom.Pos{X: pos.X, Y: y}
		y += int(c.Cache.Size.Height)
	}
}

func (DefaultWidget) Paint(ctx Ctx) {}

func (DefaultWidget) Floats() bool { return false }

func (DefaultWidget) InnerBounds(pos geom.Pos, size geom.Size) geom.Region {
	return geom.Region{Pos: pos, Size: size}
}

func (DefaultWidget) NeedsReflow() bool { return false }
