package defaultwidgets

import (
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/widget"
)

// Axis is the direction a Stack lays its children out along (grounded on
// anathema-default-widgets/src/layout/many.rs's Axis enum).
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Stack lays out children one after another along Axis: its size is the
// sum of the children's sizes along Axis and the largest of them on the
// other axis, clamped to its constraints (grounded on
// anathema-default-widgets/src/layout/many.rs's Many/SizeMod:
// "inner.height = (inner.height + size.height).min(max_size.height)").
// Every child is laid out against the stack's same loosened constraints;
// space taken by earlier siblings is not subtracted.
// vstack and hstack are both registered against this one implementation,
// distinguished only by their fixed Axis.
type Stack struct {
	Axis Axis
}

func (s Stack) Layout(children []widget.Id, constraints geom.Constraints, ctx layout.Ctx) geom.Size {
	var used geom.Size
	for _, id := range children {
		c, ok := ctx.Arena.Get(id)
		if !ok {
			continue
		}
		switch s.Axis {
		case AxisHorizontal:
			used.Height = maxU16(used.Height, c.Cache.Size.Height)
			used.Width += c.Cache.Size.Width
		default:
			used.Width = maxU16(used.Width, c.Cache.Size.Width)
			used.Height += c.Cache.Size.Height
		}
	}
	return constraints.Clamp(used)
}

func (s Stack) Position(children []widget.Id, pos geom.Pos, ctx layout.Ctx) {
	cursor := pos
	for _, id := range children {
		c, ok := ctx.Arena.Get(id)
		if !ok {
			continue
		}
		c.Pos = cursor
		switch s.Axis {
		case AxisHorizontal:
			cursor.X += int(c.Cache.Size.Width)
		default:
			cursor.Y += int(c.Cache.Size.Height)
		}
	}
}

func (Stack) Paint(ctx layout.Ctx) {}

func (Stack) Floats() bool { return false }

func (Stack) InnerBounds(pos geom.Pos, size geom.Size) geom.Region {
	return geom.Region{Pos: pos, Size: size}
}

func (Stack) NeedsReflow() bool { return false }

func maxU16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}
