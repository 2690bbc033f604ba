package paint

import "github.com/loomtui/loom/internal/geom"

// ChangeKind discriminates a diff entry (spec §4.8 "Change").
type ChangeKind int

const (
	// ChangeGlyph updates both the glyph and, if present, the style.
	ChangeGlyph ChangeKind = iota
	// ChangeClear blanks a cell that is now StateEmpty.
	ChangeClear
)

// Change is one emitted diff entry: a screen position, an optional style
// (present only when it differs from the previously-emitted style, so the
// emitter can skip redundant SGR sequences), and what changed (spec §4.8
// "(ScreenPos, Option<Style>, Change) entries in top-to-bottom,
// left-to-right order").
type Change struct {
	Pos   geom.Pos
	Style *Style
	Kind  ChangeKind
	Glyph Glyph
}

// Diff compares previous against current cell-by-cell in top-to-bottom,
// left-to-right order and returns the minimal set of Changes needed to
// bring previous up to date (spec §4.8, testable property 5: "given two
// identical buffers, diff produces zero entries"). previous and current
// must share the same dimensions. Continuation cells never emit their own
// Change (spec §9): a diff on a continuation cell is folded into the
// occupied glyph that owns it.
func Diff(previous, current *Buffer) []Change {
	var changes []Change
	var lastStyle *Style

	for y := 0; y < current.Height; y++ {
		for x := 0; x < current.Width; x++ {
			cur, _ := current.Get(x, y)
			if cur.State == StateContinuation {
				continue
			}
			prev, _ := previous.Get(x, y)
			if cellsEqual(prev, cur) {
				continue
			}

			if cur.State == StateEmpty {
				changes = append(changes, Change{Pos: geom.Pos{X: x, Y: y}, Kind: ChangeClear})
				continue
			}

			var style *Style
			if lastStyle == nil || *lastStyle != cur.Style {
				s := cur.Style
				style = &s
				lastStyle = &s
			}
			changes = append(changes, Change{
				Pos:   geom.Pos{X: x, Y: y},
				Style: style,
				Kind:  ChangeGlyph,
				Glyph: cur.Glyph,
			})
		}
	}

	return coalesce(changes)
}

func cellsEqual(a, b Cell) bool {
	if a.State != b.State {
		return false
	}
	if a.State == StateEmpty {
		return true
	}
	return a.Glyph == b.Glyph && a.Style == b.Style
}

// coalesce merges runs of adjacent ChangeGlyph entries on the same row
// that share a style into the emitter's natural "move once, write many"
// shape by leaving Style nil on every entry after the run's first (spec
// §4.8 "Adjacent diffs with the same style should be coalesced to reduce
// emitted bytes"). Position and glyph data for every cell is preserved;
// only the redundant style re-assertions are dropped.
func coalesce(changes []Change) []Change {
	for i := 1; i < len(changes); i++ {
		prev, cur := changes[i-1], changes[i]
		adjacent := cur.Pos.Y == prev.Pos.Y && cur.Pos.X == prev.Pos.X+1
		sameKind := cur.Kind == ChangeGlyph && prev.Kind == ChangeGlyph
		if adjacent && sameKind && cur.Style != nil && prev.Style != nil && *cur.Style == *prev.Style {
			changes[i].Style = nil
		}
	}
	return changes
}
