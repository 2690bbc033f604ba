package layout

import (
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/paint"
	"github.com/loomtui/loom/internal/widget"
)

// Pipeline drives the layout -> position -> paint passes over a
// widget.Arena tree (spec §4.7).
type Pipeline struct {
	Arena    *widget.Arena
	Widgets  *Registry
	Floating *Floating
}

// New returns a Pipeline over arena using widgets to resolve per-ident
// behaviour.
func New(arena *widget.Arena, widgets *Registry) *Pipeline {
	return &Pipeline{Arena: arena, Widgets: widgets, Floating: NewFloating()}
}

// Layout recomputes sizes for id and its whole subtree against constraints,
// short-circuiting through the layout cache where possible, and returns
// id's resulting size.
func (p *Pipeline) Layout(id widget.Id, constraints geom.Constraints) geom.Size {
	c, ok := p.Arena.Get(id)
	if !ok {
		return geom.Size{}
	}
	w := p.widgetFor(c)

	if cacheHit(c, constraints, w) {
		return c.Cache.Size
	}

	// Children are measured against a loosened copy of constraints — same
	// maximums, minimums dropped to zero — so each reports its own natural
	// size instead of being stretched up to whatever minimum this widget
	// itself was handed (spec §4.7; a container that wants a child to fill
	// specific space repeats that as the child's own max, not its min).
	childConstraints := constraints.Loosen()
	for _, child := range c.Children {
		p.Layout(child, childConstraints)
	}

	ctx := Ctx{Arena: p.Arena, ID: id, Attributes: attrsOf(c)}
	size := w.Layout(c.Children, constraints, ctx)
	size = constraints.Clamp(size)

	if w.Floats() {
		size = geom.Size{}
	}

	c, _ = p.Arena.Get(id)
	storeCache(c, constraints, size)
	return size
}

// Position assigns absolute positions top-down starting at pos, and
// computes each node's InnerBounds from its Widget's contract.
func (p *Pipeline) Position(id widget.Id, pos geom.Pos) {
	c, ok := p.Arena.Get(id)
	if !ok {
		return
	}
	w := p.widgetFor(c)

	c.Pos = pos
	c.InnerBounds = w.InnerBounds(pos, c.Cache.Size)

	ctx := Ctx{Arena: p.Arena, ID: id, Attributes: attrsOf(c)}
	w.Position(c.Children, pos, ctx)

	for _, child := range c.Children {
		cc, ok := p.Arena.Get(child)
		if !ok {
			continue
		}
		p.Position(child, cc.Pos)
	}
}

// Paint walks id's subtree in tree order painting each widget's own
// content into buf, deferring any registered floating widgets to a
// post-pass so they overlay their siblings (spec §4.7 "Painted in a
// post-pass in tree order so they overlay siblings").
func (p *Pipeline) Paint(id widget.Id, buf *paint.Buffer) {
	p.paintNode(id, buf)
	p.Floating.PaintAll(p, buf)
}

func (p *Pipeline) paintNode(id widget.Id, buf *paint.Buffer) {
	c, ok := p.Arena.Get(id)
	if !ok {
		return
	}
	w := p.widgetFor(c)

	if w.Floats() {
		p.Floating.Defer(id)
		return
	}

	ctx := Ctx{Arena: p.Arena, ID: id, Attributes: attrsOf(c), Buf: buf, Clip: c.InnerBounds}
	w.Paint(ctx)

	for _, child := range c.Children {
		p.paintNode(child, buf)
	}
}

// Run performs the full layout/position/paint sequence against the
// arena's root, writing into buf.
func (p *Pipeline) Run(constraints geom.Constraints, origin geom.Pos, buf *paint.Buffer) {
	root := p.Arena.Root()
	p.Layout(root, constraints)
	p.Position(root, origin)
	p.Paint(root, buf)
}

func (p *Pipeline) widgetFor(c *widget.Container) Widget {
	if c.Kind != widget.KindElement {
		return DefaultWidget{}
	}
	return p.Widgets.Lookup(c.Ident)
}

// valueAttrKey is the synthetic attribute key a Container's own text Value
// (its unnamed positional content, e.g. `text 'hello'`) is exposed under,
// alongside its named Attributes, so a Widget only has a single map to
// read from.
const valueAttrKey = "__value__"

func attrsOf(c *widget.Container) map[string]widget.Attribute {
	out := make(map[string]widget.Attribute, len(c.Attributes)+1)
	for k, v := range c.Attributes {
		out[k] = v
	}
	if c.Value != nil {
		out[valueAttrKey] = *c.Value
	}
	return out
}

// Invalidate marks id's own cache stale, and bubbles the same invalidation
// up through ancestors (nearest first) so a later Layout call recomputes
// the whole chain instead of short-circuiting on a stale cache hit (spec
// §4.7 "if size changed, the parent's cache is invalidated (bubble-up)").
func (p *Pipeline) Invalidate(id widget.Id, ancestors ...widget.Id) {
	invalidate(p.Arena, id)
	for _, a := range ancestors {
		invalidate(p.Arena, a)
	}
}
