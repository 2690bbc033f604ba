package widget

import (
	"fmt"

	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/compile"
	"github.com/loomtui/loom/internal/exprresolve"
	"github.com/loomtui/loom/internal/scope"
	"github.com/loomtui/loom/internal/valuestore"
)

// Evaluator turns a compiled Blueprint tree into live widget instances in
// an Arena (spec §4.5).
type Evaluator struct {
	Arena    *Arena
	Store    *valuestore.Store
	Registry *compile.Registry
	Factory  *Factory

	// refreshGlobals is reused by RefreshAttributes/RefreshBranch/
	// RefreshCollection, which rebuild a scope.Context from a captured
	// Frames snapshot rather than the one threaded through EvalBody.
	refreshGlobals scope.Globals
}

// NewEvaluator wires an Evaluator against the given collaborators.
func NewEvaluator(arena *Arena, store *valuestore.Store, reg *compile.Registry, factory *Factory, globals scope.Globals) *Evaluator {
	return &Evaluator{Arena: arena, Store: store, Registry: reg, Factory: factory, refreshGlobals: globals}
}

// EvalBody evaluates a sibling run of Blueprints under ctx, returning the
// Ids of the instantiated widgets in order.
func (e *Evaluator) EvalBody(body []ast.Blueprint, ctx *scope.Context) ([]Id, error) {
	ids := make([]Id, 0, len(body))
	for _, bp := range body {
		id, err := e.evalOne(bp, ctx)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (e *Evaluator) evalOne(bp ast.Blueprint, ctx *scope.Context) (Id, error) {
	switch n := bp.(type) {
	case ast.Single:
		return e.evalSingle(n, ctx)
	case ast.For:
		return e.evalFor(n, ctx)
	case ast.ControlFlow:
		return e.evalControlFlow(n, ctx)
	case ast.Component:
		return e.evalComponent(n, ctx)
	case ast.Slot:
		// A Slot reached here means it had no filler supplied by any
		// embedding component; render it as an empty element so the tree
		// stays structurally sound.
		return e.Arena.Insert(Container{Kind: KindElement, Ident: "slot:" + n.ID}), nil
	}
	return Id{}, fmt.Errorf("widget: unhandled blueprint %T", bp)
}

func (e *Evaluator) evalSingle(n ast.Single, ctx *scope.Context) (Id, error) {
	id := e.Arena.Insert(Container{Kind: KindElement, Ident: n.Ident, Attributes: map[string]Attribute{}})
	c, _ := e.Arena.Get(id)
	c.Frames = ctx.Scope.Snapshot()

	subCtx := *ctx
	subCtx.Subscriber = valuestore.Subscriber(id.String())

	for _, attr := range n.Attributes {
		v := exprresolve.Resolve(&subCtx, attr.Value)
		c.Attributes[attr.Key] = Attribute{Expr: attr.Value, Value: v}
	}
	if n.Value != nil {
		v := exprresolve.Resolve(&subCtx, n.Value)
		c.Value = &Attribute{Expr: n.Value, Value: v}
	}
	c.Object = e.Factory.Build(n.Ident)

	children, err := e.EvalBody(n.Children, ctx)
	if err != nil {
		return Id{}, err
	}
	e.Arena.SetChildren(id, children)
	return id, nil
}

// evalFor creates the For node, resolves its Collection once, and
// materialises one Iteration child per element right away; iterations are
// not deferred to layout. Later Inserted/Removed changes to the collection
// are applied by RefreshCollection.
func (e *Evaluator) evalFor(n ast.For, ctx *scope.Context) (Id, error) {
	id := e.Arena.Insert(Container{
		Kind:       KindFor,
		ForBinding: n.Binding,
		ForData:    n.Data,
		ForBody:    n.Body,
		Frames:     ctx.Scope.Snapshot(),
	})

	// The collection expression must be resolved with this For's own id as
	// subscriber, not whatever ancestor was resolving when evalFor was
	// called — internal/runtime.reresolve parses each drained subscriber
	// string straight back into a widget.Id, so a wrong (or stale, since id
	// didn't exist until the Insert above) subscriber would route a later
	// state change to the wrong node or nowhere at all (spec §4.2 "Every
	// dependency read during resolution subscribes subscriber").
	subCtx := *ctx
	subCtx.Subscriber = valuestore.Subscriber(id.String())
	coll := resolveCollection(&subCtx, n.Data)
	c, _ := e.Arena.Get(id)
	c.Collection = coll

	children := make([]Id, 0, coll.Count())
	for i, elem := range coll.Static {
		iterID, err := e.evalIteration(n.Binding, i, elem, n.Body, ctx)
		if err != nil {
			return Id{}, err
		}
		children = append(children, iterID)
	}
	e.Arena.SetChildren(id, children)
	return id, nil
}

func (e *Evaluator) evalIteration(binding string, index int, elem ast.Expression, body []ast.Blueprint, ctx *scope.Context) (Id, error) {
	id := e.Arena.Insert(Container{Kind: KindIteration, IterBinding: binding, IterIndex: index})

	ctx.Scope.PushBinding(binding, scope.Binding{Expr: elem, Index: index})
	ctx.Scope.PushBinding("loop", scope.Binding{Expr: ast.ExprPrimitive{Value: float64(index)}, Index: index})
	children, err := e.EvalBody(body, ctx)
	ctx.Scope.Pop()
	ctx.Scope.Pop()
	if err != nil {
		return Id{}, err
	}
	e.Arena.SetChildren(id, children)
	return id, nil
}

// resolveCollection classifies a For's data expression (spec §4.6).
func resolveCollection(ctx *scope.Context, data ast.Expression) Collection {
	if list, ok := data.(ast.ExprList); ok {
		return Collection{Kind: CollectionStatic, Static: list.Items}
	}
	v := exprresolve.Resolve(ctx, data)
	switch v.Kind {
	case exprresolve.KindList:
		items := make([]ast.Expression, len(v.List))
		for i, elem := range v.List {
			items[i] = valueToExpr(elem)
		}
		return Collection{Kind: CollectionDyn, Static: items}
	case exprresolve.KindDeferred:
		return Collection{Kind: CollectionFuture}
	default:
		return Collection{Kind: CollectionStatic}
	}
}

func valueToExpr(v exprresolve.Value) ast.Expression {
	switch v.Kind {
	case exprresolve.KindString:
		return ast.ExprStr{Value: v.Str}
	case exprresolve.KindPrimitive:
		return ast.ExprPrimitive{Value: v.Primitive}
	case exprresolve.KindList:
		items := make([]ast.Expression, len(v.List))
		for i, e := range v.List {
			items[i] = valueToExpr(e)
		}
		return ast.ExprList{Items: items}
	case exprresolve.KindMap:
		entries := make(map[string]ast.Expression, len(v.Map))
		for k, e := range v.Map {
			entries[k] = valueToExpr(e)
		}
		return ast.ExprMap{Entries: entries}
	}
	return ast.ExprPrimitive{Value: nil}
}

// evalControlFlow picks exactly one live branch and instantiates its body
// under a ControlFlowContainer child (spec §4.5).
func (e *Evaluator) evalControlFlow(n ast.ControlFlow, ctx *scope.Context) (Id, error) {
	branches := make([]CompiledBranch, len(n.Branches))
	for i, br := range n.Branches {
		branches[i] = CompiledBranch{Cond: br.Cond, Body: br.Body}
	}

	id := e.Arena.Insert(Container{Kind: KindControlFlow, Branches: branches, ActiveBranch: -1, Frames: ctx.Scope.Snapshot()})
	c, _ := e.Arena.Get(id)

	// Same reasoning as evalFor: the condition chain must subscribe under
	// this ControlFlow's own id so a later drain routes back here.
	subCtx := *ctx
	subCtx.Subscriber = valuestore.Subscriber(id.String())
	active := activeBranch(&subCtx, branches)
	c.ActiveBranch = active
	if active < 0 {
		return id, nil
	}

	containerID := e.Arena.Insert(Container{Kind: KindControlFlowContainer, BranchID: active})
	children, err := e.EvalBody(branches[active].Body, ctx)
	if err != nil {
		return Id{}, err
	}
	e.Arena.SetChildren(containerID, children)

	c, _ = e.Arena.Get(id)
	c.ActiveChild = containerID
	e.Arena.SetChildren(id, []Id{containerID})
	return id, nil
}

// activeBranch returns the index of the first branch whose condition
// resolves true, or the first bare-else branch, or -1 if none match.
func activeBranch(ctx *scope.Context, branches []CompiledBranch) int {
	for i, br := range branches {
		if br.Cond == nil {
			return i
		}
		if b, ok := exprresolve.Resolve(ctx, br.Cond).AsBool(); ok && b {
			return i
		}
	}
	return -1
}

// evalComponent looks up the registered definition, gives it a fresh state
// instance, pushes a scope with that state, evaluates its body
// (substituting Slot nodes with the embedding Component's own Body), then
// pops the scope (spec §4.5). The embedding site's attributes are neither
// resolved nor pushed, so `attributes` resolves to null inside the body.
func (e *Evaluator) evalComponent(n ast.Component, ctx *scope.Context) (Id, error) {
	def, ok := e.Registry.Lookup(n.ID)
	if !ok {
		return Id{}, fmt.Errorf("widget: unknown component %q", n.ID)
	}

	state := map[string]any{}
	for k, expr := range def.State {
		state[k] = exprresolve.ToRaw(exprresolve.Resolve(ctx, expr))
	}
	for k, expr := range n.State {
		state[k] = exprresolve.ToRaw(exprresolve.Resolve(ctx, expr))
	}
	stateKey := ctx.Store.NewValue(state, "component-state:"+n.ID)

	id := e.Arena.Insert(Container{
		Kind:        KindComponent,
		ComponentID: n.ID,
		State:       scope.StateId(stateKey),
		HasState:    true,
	})

	ctx.Scope.PushState(scope.StateId(stateKey))
	children, err := e.EvalBody(substituteSlots(def.Body, n.Body), ctx)
	ctx.Scope.Pop()
	if err != nil {
		return Id{}, err
	}
	e.Arena.SetChildren(id, children)
	return id, nil
}

// substituteSlots walks a component definition's body, replacing every
// Slot with the filler body supplied at the embedding site (spec §4.5
// "Slot(id) -> replace with the slot's body blueprints as supplied by the
// embedding component").
func substituteSlots(body []ast.Blueprint, filler []ast.Blueprint) []ast.Blueprint {
	out := make([]ast.Blueprint, 0, len(body))
	for _, bp := range body {
		switch n := bp.(type) {
		case ast.Slot:
			out = append(out, filler...)
		case ast.Single:
			n.Children = substituteSlots(n.Children, filler)
			out = append(out, n)
		case ast.For:
			n.Body = substituteSlots(n.Body, filler)
			out = append(out, n)
		case ast.ControlFlow:
			branches := make([]ast.IfBranch, len(n.Branches))
			for i, br := range n.Branches {
				br.Body = substituteSlots(br.Body, filler)
				branches[i] = br
			}
			n.Branches = branches
			out = append(out, n)
		default:
			out = append(out, bp)
		}
	}
	return out
}

// RefreshAttributes re-resolves every attribute and the positional Value
// of id's element against its originally-captured scope frames, and
// reports whether any resolved Value actually changed (spec §4.10: a
// drained subscriber means "re-resolve dirty attributes"). It is the
// runtime's job to invalidate id's layout cache (and its ancestors) when
// this reports true.
func (e *Evaluator) RefreshAttributes(id Id) bool {
	c, ok := e.Arena.Get(id)
	if !ok || c.Kind != KindElement {
		return false
	}
	subCtx := scope.NewContext(e.Store, e.refreshGlobals, valuestore.Subscriber(id.String()))
	subCtx.Scope = scope.FromFrames(c.Frames)

	changed := false
	for key, attr := range c.Attributes {
		v := exprresolve.Resolve(subCtx, attr.Expr)
		if !valuesEqual(attr.Value, v) {
			changed = true
		}
		c.Attributes[key] = Attribute{Expr: attr.Expr, Value: v}
	}
	if c.Value != nil {
		v := exprresolve.Resolve(subCtx, c.Value.Expr)
		if !valuesEqual(c.Value.Value, v) {
			changed = true
		}
		c.Value = &Attribute{Expr: c.Value.Expr, Value: v}
	}
	return changed
}

// RefreshBranch re-evaluates id's ControlFlow condition chain and, if a
// different branch is now active, replaces its ControlFlowContainer child
// with the new branch's body (spec §4.5 re-evaluation on dependency
// change). Reports whether the active branch changed.
func (e *Evaluator) RefreshBranch(id Id) (bool, error) {
	c, ok := e.Arena.Get(id)
	if !ok || c.Kind != KindControlFlow {
		return false, nil
	}
	subCtx := scope.NewContext(e.Store, e.refreshGlobals, valuestore.Subscriber(id.String()))
	subCtx.Scope = scope.FromFrames(c.Frames)

	active := activeBranch(subCtx, c.Branches)
	if active == c.ActiveBranch {
		return false, nil
	}

	if !c.ActiveChild.Zero() {
		e.Arena.RemoveSubtree(c.ActiveChild)
	}
	c.ActiveBranch = active
	if active < 0 {
		c.ActiveChild = Id{}
		e.Arena.SetChildren(id, nil)
		return true, nil
	}

	containerID := e.Arena.Insert(Container{Kind: KindControlFlowContainer, BranchID: active, Frames: c.Frames})
	children, err := e.EvalBody(c.Branches[active].Body, subCtx)
	if err != nil {
		return false, err
	}
	e.Arena.SetChildren(containerID, children)

	c, _ = e.Arena.Get(id)
	c.ActiveChild = containerID
	e.Arena.SetChildren(id, []Id{containerID})
	return true, nil
}

// RefreshCollection re-resolves id's For data expression and applies an
// Inserted/Removed valuestore.Change by materialising or tearing down the
// corresponding iteration child, keeping Container.Children and each
// surviving iteration's IterIndex in step with the new collection (spec
// §4.6, SPEC_FULL supplemented feature 5's Inserted/Removed semantics).
func (e *Evaluator) RefreshCollection(id Id, change valuestore.Change) error {
	c, ok := e.Arena.Get(id)
	if !ok || c.Kind != KindFor {
		return nil
	}
	subCtx := scope.NewContext(e.Store, e.refreshGlobals, valuestore.Subscriber(id.String()))
	subCtx.Scope = scope.FromFrames(c.Frames)

	switch change.Kind {
	case valuestore.ChangeInserted:
		coll := resolveCollection(subCtx, c.ForData)
		idx := change.Index
		if idx < 0 || idx > len(coll.Static) {
			idx = len(coll.Static)
		}
		var elem ast.Expression
		if idx < len(coll.Static) {
			elem = coll.Static[idx]
		}
		iterID, err := e.evalIteration(c.ForBinding, idx, elem, c.ForBody, subCtx)
		if err != nil {
			return err
		}
		children := append([]Id(nil), c.Children...)
		children = append(children, Id{})
		copy(children[idx+1:], children[idx:])
		children[idx] = iterID
		e.Arena.SetChildren(id, children)
		c, _ = e.Arena.Get(id)
		c.Collection = coll
		reindex(e.Arena, c.Children)
	case valuestore.ChangeRemoved:
		idx := change.Index
		if idx < 0 || idx >= len(c.Children) {
			return nil
		}
		e.Arena.RemoveSubtree(c.Children[idx])
		children := append(c.Children[:idx:idx], c.Children[idx+1:]...)
		e.Arena.SetChildren(id, children)
		c, _ = e.Arena.Get(id)
		c.Collection = resolveCollection(subCtx, c.ForData)
		reindex(e.Arena, c.Children)
	}
	return nil
}

func reindex(arena *Arena, children []Id) {
	for i, childID := range children {
		cc, ok := arena.Get(childID)
		if !ok {
			continue
		}
		cc.IterIndex = i
	}
}

func valuesEqual(a, b exprresolve.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case exprresolve.KindString:
		return a.Str == b.Str
	case exprresolve.KindPrimitive:
		return a.Primitive == b.Primitive
	default:
		return false
	}
}
