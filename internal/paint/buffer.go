package paint

import "github.com/loomtui/loom/internal/geom"

// Buffer is a terminal-sized grid of Cells (spec §4.8 "previous" /
// "current" buffers).
type Buffer struct {
	Width, Height int
	cells         []Cell
}

// NewBuffer allocates an empty (all StateEmpty) buffer sized w by h.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{Width: w, Height: h, cells: make([]Cell, w*h)}
}

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, false
	}
	return y*b.Width + x, true
}

// Get returns the cell at (x, y); ok is false if out of bounds.
func (b *Buffer) Get(x, y int) (Cell, bool) {
	i, ok := b.index(x, y)
	if !ok {
		return Cell{}, false
	}
	return b.cells[i], true
}

// Set writes c at (x, y), dropping the write silently if out of bounds
// (spec §4.8 "glyph writes outside the clip are dropped").
func (b *Buffer) Set(x, y int, c Cell) {
	if i, ok := b.index(x, y); ok {
		b.cells[i] = c
	}
}

// Clear resets every cell to StateEmpty with a zero Style.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
}

// Resize reallocates the buffer to w by h. Per spec §4.8 ("On resize, both
// are reallocated and previous is set to empty so the next render repaints
// everything"), the new buffer always starts cleared; callers resize both
// the previous and current buffers and the next diff naturally emits a
// full repaint because previous no longer matches current cell-for-cell.
func (b *Buffer) Resize(w, h int) {
	b.Width, b.Height = w, h
	b.cells = make([]Cell, w*h)
}

// WriteString paints s starting at (x, y) within clip, advancing one cell
// per glyph's display width and marking wide glyphs' right cell as a
// Continuation. Writes that fall outside clip are dropped.
func (b *Buffer) WriteString(x, y int, s string, style Style, clip geom.Region) {
	cx := x
	for _, g := range splitGlyphs(s) {
		pos := geom.Pos{X: cx, Y: y}
		if clip.Contains(pos) {
			b.Set(cx, y, Cell{State: StateOccupied, Glyph: g, Style: style})
		}
		for i := 1; i < g.Width; i++ {
			cpos := geom.Pos{X: cx + i, Y: y}
			if clip.Contains(cpos) {
				b.Set(cx+i, y, Cell{State: StateContinuation})
			}
		}
		cx += maxInt(g.Width, 1)
	}
}

// Fill repeats pattern to paint every cell within region (spec §4.8 "A
// fill attribute repeats a string to paint the entire inner rectangle").
func (b *Buffer) Fill(region geom.Region, pattern string, style Style) {
	glyphs := splitGlyphs(pattern)
	if len(glyphs) == 0 {
		return
	}
	gi := 0
	for y := region.Pos.Y; y < region.Pos.Y+int(region.Size.Height); y++ {
		for x := region.Pos.X; x < region.Pos.X+int(region.Size.Width); {
			g := glyphs[gi%len(glyphs)]
			gi++
			b.Set(x, y, Cell{State: StateOccupied, Glyph: g, Style: style})
			x += maxInt(g.Width, 1)
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
