package defaultwidgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/paint"
	"github.com/loomtui/loom/internal/widget"
)

// Text lays out a single run of text, word-wrapping it to the available
// width and aligning each line independently (grounded on
// anathema-default-widgets/src/text.rs: "A Text widget will be as wide as
// its text", with wrapping/alignment delegated to layout.WrapWords /
// layout.PadLine). The "text" ident is registered once as a shared value
// (see Register); per-instance wrap state lives in each Container's own
// Object field, not in Text itself, since one Text value dispatches for
// every "text" element in the tree.
type Text struct{}

// textState is the per-widget wrapped-lines cache stashed in
// widget.Container.Object between Layout and Paint.
type textState struct {
	lines []string
	size  geom.Size
}

func textOf(ctx layout.Ctx) string {
	a, ok := ctx.Attributes["__value__"]
	if !ok {
		return ""
	}
	return a.Value.String()
}

// Layout word-wraps the widget's text content to constraints.MaxWidth and
// reports the resulting block size.
func (Text) Layout(children []widget.Id, constraints geom.Constraints, ctx layout.Ctx) geom.Size {
	text := textOf(ctx)
	wrap := attrString(ctx.Attributes, "wrap", "word")

	var st textState
	if wrap == "overflow" {
		st.lines = []string{text}
		w := uint16(runewidth.StringWidth(text))
		st.size = constraints.Clamp(geom.Size{Width: w, Height: 1})
	} else {
		words := layout.SplitWords(text)
		lines, size := layout.WrapWords(words, int(constraints.MaxWidth), int(constraints.MaxHeight))
		st.lines = lines
		st.size = constraints.Clamp(size)
	}

	if c, ok := ctx.Arena.Get(ctx.ID); ok {
		c.Object = st
	}
	return st.size
}

func (Text) Position(children []widget.Id, pos geom.Pos, ctx layout.Ctx) {}

// Paint writes each wrapped line into the buffer, aligned per the
// "text-align" attribute (spec §4.7, anathema text.rs's centre/right
// offset math).
func (Text) Paint(ctx layout.Ctx) {
	if ctx.Buf == nil {
		return
	}
	c, ok := ctx.Arena.Get(ctx.ID)
	if !ok {
		return
	}
	st, ok := c.Object.(textState)
	if !ok {
		return
	}

	align := attrAlign(ctx.Attributes, "text-align")
	style := styleOf(ctx.Attributes)
	width := int(st.size.Width)

	origin := ctx.Clip.Pos
	for i, line := range st.lines {
		padded := layout.PadLine(line, width, align)
		ctx.Buf.WriteString(origin.X, origin.Y+i, padded, style, ctx.Clip)
	}
}

func (Text) Floats() bool { return false }

func (Text) InnerBounds(pos geom.Pos, size geom.Size) geom.Region {
	return geom.Region{Pos: pos, Size: size}
}

func (Text) NeedsReflow() bool { return false }

func styleOf(attrs map[string]widget.Attribute) paint.Style {
	var s paint.Style
	if fg, ok := attrs["foreground"]; ok {
		s.Fg = paint.Named(fg.Value.String())
	}
	if bg, ok := attrs["background"]; ok {
		s.Bg = paint.Named(bg.Value.String())
	}
	if b, ok := attrs["bold"]; ok {
		v, _ := b.Value.AsBool()
		s.Bold = v
	}
	return s
}
