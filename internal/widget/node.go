package widget

import (
	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/exprresolve"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/scope"
	"github.com/loomtui/loom/internal/valuestore"
)

// Kind discriminates a Container's payload (spec §3.3 WidgetKind).
type Kind int

const (
	KindElement Kind = iota
	KindFor
	KindIteration
	KindControlFlow
	KindControlFlowContainer
	KindComponent
)

// Cache is a widget's memoised layout result (spec §3.3 LayoutCache).
type Cache struct {
	Size        geom.Size
	Constraints geom.Constraints
	HasSize     bool
	Valid       bool
}

// Attribute is one resolved attribute: its originating expression plus its
// last-resolved Value (spec §3.4).
type Attribute struct {
	Expr  ast.Expression
	Value exprresolve.Value
}

// Container is the per-widget payload stored in the Arena (spec §3.3
// WidgetContainer). Children is the ordered list of this node's live
// children in the layout-index tree.
type Container struct {
	Kind Kind
	Path string

	Cache       Cache
	Pos         geom.Pos
	InnerBounds geom.Region

	Children []Id

	// Frames is a snapshot of the scope live when this node was evaluated
	// (spec §4.10 re-resolution needs the original binding chain; see
	// scope.Scope.Snapshot). Populated for Element, For, and ControlFlow
	// nodes, whose Attributes/Collection/Branches can change later.
	Frames []scope.Frame

	// Element fields.
	Ident      string
	Attributes map[string]Attribute
	Value      *Attribute
	Object     any // constructed by the Factory for Ident; consumed by layout/paint

	// For fields.
	ForBinding string
	ForData    ast.Expression
	Collection Collection
	ForBody    []ast.Blueprint // re-used to materialise iterations inserted after eval time

	// Iteration fields.
	IterBinding string
	IterIndex   int

	// ControlFlow fields.
	Branches      []CompiledBranch
	ActiveBranch  int // index into Branches, or -1 if none are live
	ActiveChild   Id  // the ControlFlowContainer child for ActiveBranch

	// ControlFlowContainer fields.
	BranchID int

	// Component fields.
	ComponentID string
	State       scope.StateId
	HasState    bool
}

// StateKey returns the OwnedKey backing this component instance's state
// value, for application code driving mutations through
// valuestore.Store.WithOwned/PushBack/etc. Reports ok=false for any
// Container that isn't a live component instance.
func (c *Container) StateKey() (valuestore.OwnedKey, bool) {
	if c.Kind != KindComponent || !c.HasState {
		return 0, false
	}
	return valuestore.OwnedKey(c.State), true
}

// CompiledBranch mirrors ast.IfBranch but with its condition already
// resolvable against the enclosing scope at eval time.
type CompiledBranch struct {
	Cond ast.Expression // nil for a bare else
	Body []ast.Blueprint
}
