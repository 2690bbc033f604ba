package paint

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Glyph is the payload of an occupied cell: either a single rune or a
// multi-rune grapheme cluster (spec §4.8 "either Single(char,
// display_width) or a reference into a glyph map for multi-char
// clusters" — Loom stores the cluster inline rather than via an indirect
// map, since Go strings already hold an arbitrary byte sequence cheaply).
type Glyph struct {
	Cluster string
	Width   int
}

// NewGlyph measures s's display width via go-runewidth/uniseg-aware
// StringWidth and wraps it as a Glyph.
func NewGlyph(s string) Glyph {
	return Glyph{Cluster: s, Width: runewidth.StringWidth(s)}
}

// CellState discriminates a Cell's occupancy (spec §4.8).
type CellState int

const (
	// StateEmpty is an untouched cell, painted as a blank.
	StateEmpty CellState = iota
	// StateOccupied holds a Glyph and participates fully in diffing.
	StateOccupied
	// StateContinuation is the right half of a wide glyph: it
	// participates in diffing but is never emitted on its own (spec
	// §4.8, §9 "Wide-glyph continuation styling").
	StateContinuation
)

// Cell is one terminal-grid position (spec §4.8).
type Cell struct {
	State CellState
	Glyph Glyph
	Style Style
}

// splitGlyphs breaks s into grapheme-cluster Glyphs in display order.
func splitGlyphs(s string) []Glyph {
	var out []Glyph
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, NewGlyph(g.Str()))
	}
	return out
}
