// Package query walks a widget arena and filters it by tag, attribute,
// position, or id (spec §2 "Query API"). Runtime.Query hands it to event
// handlers, and it is the inspection surface callers use to find widgets
// without threading ids through their own application code.
package query

import (
	"github.com/loomtui/loom/internal/exprresolve"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/widget"
)

// Query walks a single Arena's live tree.
type Query struct {
	arena *widget.Arena
}

// New wraps arena for querying.
func New(arena *widget.Arena) *Query {
	return &Query{arena: arena}
}

// Predicate reports whether id/c should be included in a Filter's results.
type Predicate func(id widget.Id, c *widget.Container) bool

// All returns every widget reachable from the arena's root, pre-order.
func (q *Query) All() []widget.Id {
	return q.Filter(func(widget.Id, *widget.Container) bool { return true })
}

// Filter walks the tree from its root and returns every id whose Container
// satisfies pred, pre-order.
func (q *Query) Filter(pred Predicate) []widget.Id {
	var out []widget.Id
	q.arena.Walk(q.arena.Root(), func(id widget.Id, c *widget.Container) bool {
		if pred(id, c) {
			out = append(out, id)
		}
		return true
	})
	return out
}

// ByTag returns every element whose Ident equals tag (e.g. "text", "border").
func (q *Query) ByTag(tag string) []widget.Id {
	return q.Filter(func(_ widget.Id, c *widget.Container) bool {
		return c.Kind == widget.KindElement && c.Ident == tag
	})
}

// ByAttribute returns every element that has an attribute named key whose
// resolved Value satisfies match.
func (q *Query) ByAttribute(key string, match func(exprresolve.Value) bool) []widget.Id {
	return q.Filter(func(_ widget.Id, c *widget.Container) bool {
		if c.Kind != widget.KindElement {
			return false
		}
		attr, ok := c.Attributes[key]
		if !ok {
			return false
		}
		return match(attr.Value)
	})
}

// ByComponentID returns every component instance embedded under the given
// registered component id (spec §4.10 "context.components.by_name").
func (q *Query) ByComponentID(id string) []widget.Id {
	return q.Filter(func(_ widget.Id, c *widget.Container) bool {
		return c.Kind == widget.KindComponent && c.ComponentID == id
	})
}

// ByID returns the container at id, if it is still live.
func (q *Query) ByID(id widget.Id) (*widget.Container, bool) {
	return q.arena.Get(id)
}

// AtPosition returns the deepest (innermost) widget whose InnerBounds
// contains p, for mouse-event routing (spec §4.10 "position-hit via Query
// by AtPosition"). Children are visited after their parent, so a later,
// deeper match overwrites an earlier, shallower one.
func (q *Query) AtPosition(p geom.Pos) (widget.Id, bool) {
	var hit widget.Id
	found := false
	q.arena.Walk(q.arena.Root(), func(id widget.Id, c *widget.Container) bool {
		if c.InnerBounds.Contains(p) {
			hit, found = id, true
		}
		return true
	})
	return hit, found
}
