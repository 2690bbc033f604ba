package defaultwidgets

import (
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/widget"
)

// Border frames its single child with a one-cell-thick box; the
// box-drawing glyphs are the spec's own description (spec §8 Scenario A:
// "a thick border"). The child is laid out against the border's own
// loosened constraints; those constraints are not shrunk by the frame.
type Border struct {
	Thick bool
}

const (
	thinTL, thinTR, thinBL, thinBR = "┌", "┐", "└", "┘"
	thinH, thinV                   = "─", "│"
	thickTL, thickTR               = "╔", "╗"
	thickBL, thickBR               = "╚", "╝"
	thickH, thickV                 = "═", "║"
)

func (b Border) glyphs() (tl, tr, bl, br, h, v string) {
	if b.Thick {
		return thickTL, thickTR, thickBL, thickBR, thickH, thickV
	}
	return thinTL, thinTR, thinBL, thinBR, thinH, thinV
}

// Layout reports the first child's already laid-out size grown by the
// one-cell frame on every edge, clamped to constraints. It does not shrink
// the constraints the child was laid out against.
func (b Border) Layout(children []widget.Id, constraints geom.Constraints, ctx layout.Ctx) geom.Size {
	var child geom.Size
	for _, id := range children {
		c, ok := ctx.Arena.Get(id)
		if !ok {
			continue
		}
		child = c.Cache.Size
		break
	}
	return constraints.Clamp(geom.Size{Width: child.Width + 2, Height: child.Height + 2})
}

func (Border) Position(children []widget.Id, pos geom.Pos, ctx layout.Ctx) {
	for _, id := range children {
		c, ok := ctx.Arena.Get(id)
		if !ok {
			continue
		}
		c.Pos = geom.Pos{X: pos.X + 1, Y: pos.Y + 1}
	}
}

// Paint draws the frame around the widget's own (un-inset) bounds; ctx.Clip
// carries this widget's InnerBounds, which Border deliberately shrinks
// relative to its full bounds, so the frame is painted against the
// Container's Pos/Cache.Size fetched straight from the arena instead.
func (b Border) Paint(ctx layout.Ctx) {
	if ctx.Buf == nil {
		return
	}
	c, ok := ctx.Arena.Get(ctx.ID)
	if !ok {
		return
	}
	style := styleOf(ctx.Attributes)
	outer := geom.Region{Pos: c.Pos, Size: c.Cache.Size}
	tl, tr, bl, br, h, v := b.glyphs()

	w, hgt := int(c.Cache.Size.Width), int(c.Cache.Size.Height)
	if w < 2 || hgt < 2 {
		return
	}
	left, top := c.Pos.X, c.Pos.Y
	right, bottom := left+w-1, top+hgt-1

	ctx.Buf.WriteString(left, top, tl, style, outer)
	ctx.Buf.WriteString(right, top, tr, style, outer)
	ctx.Buf.WriteString(left, bottom, bl, style, outer)
	ctx.Buf.WriteString(right, bottom, br, style, outer)

	for x := left + 1; x < right; x++ {
		ctx.Buf.WriteString(x, top, h, style, outer)
		ctx.Buf.WriteString(x, bottom, h, style, outer)
	}
	for y := top + 1; y < bottom; y++ {
		ctx.Buf.WriteString(left, y, v, style, outer)
		ctx.Buf.WriteString(right, y, v, style, outer)
	}
}

func (Border) Floats() bool { return false }

// InnerBounds insets one cell on every edge for the border frame.
func (Border) InnerBounds(pos geom.Pos, size geom.Size) geom.Region {
	inner := geom.Size{Width: saturating(size.Width, 2), Height: saturating(size.Height, 2)}
	return geom.Region{Pos: geom.Pos{X: pos.X + 1, Y: pos.Y + 1}, Size: inner}
}

func (Border) NeedsReflow() bool { return false }

func saturating(a, b uint16) uint16 {
	if b >= a {
		return 0
	}
	return a - b
}
