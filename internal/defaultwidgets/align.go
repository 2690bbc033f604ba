package defaultwidgets

import (
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/widget"
)

// Align claims the full space offered by its constraints and positions its
// single child inside that space according to the "alignment" attribute
// (spec §8 Scenario B), grounded on anathema-default-widgets/src/
// alignment.rs: an Align widget always reports its maximum constrained
// size regardless of its child's own size, then offsets the child by the
// leftover space on each axis per Align.
type Align struct{}

func attrPosition(attrs map[string]widget.Attribute, key string) (layout.Align, layout.Align) {
	switch attrString(attrs, key, "top-left") {
	case "top", "top-centre", "top-center":
		return layout.AlignCenter, layout.AlignLeft
	case "top-right":
		return layout.AlignRight, layout.AlignLeft
	case "left", "centre-left", "center-left":
		return layout.AlignLeft, layout.AlignCenter
	case "centre", "center":
		return layout.AlignCenter, layout.AlignCenter
	case "right", "centre-right", "center-right":
		return layout.AlignRight, layout.AlignCenter
	case "bottom-left":
		return layout.AlignLeft, layout.AlignRight
	case "bottom", "bottom-centre", "bottom-center":
		return layout.AlignCenter, layout.AlignRight
	case "bottom-right":
		return layout.AlignRight, layout.AlignRight
	default:
		return layout.AlignLeft, layout.AlignLeft
	}
}

// Layout claims every bit of space the constraints allow, so the child
// (already sized by the pipeline's own recursive walk) can be placed
// anywhere within it.
func (Align) Layout(children []widget.Id, constraints geom.Constraints, ctx layout.Ctx) geom.Size {
	w, h := constraints.MaxWidth, constraints.MaxHeight
	if w == geom.MaxDim {
		w = constraints.MinWidth
	}
	if h == geom.MaxDim {
		h = constraints.MinHeight
	}
	return geom.Size{Width: w, Height: h}
}

// Position offsets the single child within the widget's own bounds
// according to horizontal/vertical alignment.
func (a Align) Position(children []widget.Id, pos geom.Pos, ctx layout.Ctx) {
	self, ok := ctx.Arena.Get(ctx.ID)
	if !ok {
		return
	}
	hAlign, vAlign := attrPosition(ctx.Attributes, "alignment")

	for _, id := range children {
		c, ok := ctx.Arena.Get(id)
		if !ok {
			continue
		}
		x := offsetFor(hAlign, int(self.Cache.Size.Width), int(c.Cache.Size.Width))
		y := offsetFor(vAlign, int(self.Cache.Size.Height), int(c.Cache.Size.Height))
		c.Pos = geom.Pos{X: pos.X + x, Y: pos.Y + y}
	}
}

func offsetFor(align layout.Align, outer, inner int) int {
	gap := outer - inner
	if gap <= 0 {
		return 0
	}
	switch align {
	case layout.AlignRight:
		return gap
	case layout.AlignCenter:
		return gap / 2
	default:
		return 0
	}
}

func (Align) Paint(ctx layout.Ctx) {}

func (Align) Floats() bool { return false }

func (Align) InnerBounds(pos geom.Pos, size geom.Size) geom.Region {
	return geom.Region{Pos: pos, Size: size}
}

func (Align) NeedsReflow() bool { return false }
