package widget

import "github.com/loomtui/loom/internal/ast"

// CollectionKind discriminates a For node's data source (spec §4.6).
type CollectionKind int

const (
	CollectionStatic CollectionKind = iota
	CollectionDyn
	CollectionFuture
)

// Collection is the data source a For node iterates. Static holds the
// per-iteration element expressions directly: for a literal template list
// these are the template's own Expression nodes (re-evaluated per
// iteration against the current scope, spec §4.6); for a reactive list
// pulled from state, they are the list's current elements re-wrapped as
// ast.ExprPrimitive/ExprStr/ExprList/ExprMap literals at the point the
// collection was last (re)resolved, which is sufficient to drive
// generator expansion without requiring per-field OwnedKeys for every
// state list (see DESIGN.md for why Dyn does not track an OwnedKey).
type Collection struct {
	Kind   CollectionKind
	Static []ast.Expression
}

// Count returns the number of child iterations this collection currently
// resolves to.
func (c Collection) Count() int {
	if c.Kind == CollectionFuture {
		return 0
	}
	return len(c.Static)
}
