package layout

import (
	"github.com/loomtui/loom/internal/paint"
	"github.com/loomtui/loom/internal/widget"
)

// Floating holds the widgets deferred out of the normal paint walk because
// their Widget.Floats() reported true, in the tree order they were
// encountered (spec §4.7 "FloatingWidgets: secondary map WidgetId ->
// WidgetId... painted in a post-pass in tree order so they overlay
// siblings"). The anchor they float relative to is whatever the pipeline
// already positioned them under; this side set only records paint order.
type Floating struct {
	order []widget.Id
}

// NewFloating returns an empty Floating set.
func NewFloating() *Floating {
	return &Floating{}
}

// Defer records id to be painted after the main tree-order pass completes.
func (f *Floating) Defer(id widget.Id) {
	f.order = append(f.order, id)
}

// PaintAll paints every deferred widget in the order they were deferred,
// then clears the set for the next frame.
func (f *Floating) PaintAll(p *Pipeline, buf *paint.Buffer) {
	for _, id := range f.order {
		c, ok := p.Arena.Get(id)
		if !ok {
			continue
		}
		ctx := Ctx{Arena: p.Arena, ID: id, Attributes: attrsOf(c), Buf: buf, Clip: c.InnerBounds}
		w := p.widgetFor(c)
		w.Paint(ctx)
		for _, child := range c.Children {
			p.paintNode(child, buf)
		}
	}
	f.order = f.order[:0]
}
