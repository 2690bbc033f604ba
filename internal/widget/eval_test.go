package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/compile"
	"github.com/loomtui/loom/internal/scope"
	"github.com/loomtui/loom/internal/valuestore"
)

func newEvaluator() (*Evaluator, *scope.Context) {
	store := valuestore.New()
	arena := New()
	factory := NewFactory()
	reg := compile.NewRegistry()
	ev := NewEvaluator(arena, store, reg, factory, scope.Globals{})
	ctx := scope.NewContext(store, scope.Globals{}, "root")
	return ev, ctx
}

func TestEvalSingleBuildsAttributesAndValue(t *testing.T) {
	ev, ctx := newEvaluator()
	bp := ast.Single{
		Ident:      "text",
		Attributes: []ast.Attribute{{Key: "bold", Value: ast.ExprPrimitive{Value: true}}},
		Value:      ast.ExprStr{Value: "hi"},
	}
	id, err := ev.evalOne(bp, ctx)
	require.NoError(t, err)

	c, ok := ev.Arena.Get(id)
	require.True(t, ok)
	assert.Equal(t, "text", c.Ident)
	b, ok := c.Attributes["bold"].Value.AsBool()
	require.True(t, ok)
	assert.True(t, b)
	assert.Equal(t, "hi", c.Value.Value.Str)
}

func TestEvalSingleWithChildren(t *testing.T) {
	ev, ctx := newEvaluator()
	bp := ast.Single{
		Ident: "vstack",
		Children: []ast.Blueprint{
			ast.Single{Ident: "text", Value: ast.ExprStr{Value: "a"}},
			ast.Single{Ident: "text", Value: ast.ExprStr{Value: "b"}},
		},
	}
	id, err := ev.evalOne(bp, ctx)
	require.NoError(t, err)
	c, _ := ev.Arena.Get(id)
	require.Len(t, c.Children, 2)
	child, _ := ev.Arena.Get(c.Children[0])
	assert.Equal(t, "a", child.Value.Value.Str)
}

func TestEvalForMaterialisesStaticIterations(t *testing.T) {
	ev, ctx := newEvaluator()
	bp := ast.For{
		Binding: "item",
		Data: ast.ExprList{Items: []ast.Expression{
			ast.ExprStr{Value: "x"}, ast.ExprStr{Value: "y"},
		}},
		Body: []ast.Blueprint{ast.Single{Ident: "text", Value: ast.ExprIdent{Name: "item"}}},
	}
	id, err := ev.evalOne(bp, ctx)
	require.NoError(t, err)
	c, _ := ev.Arena.Get(id)
	require.Len(t, c.Children, 2)

	iter0, _ := ev.Arena.Get(c.Children[0])
	assert.Equal(t, KindIteration, iter0.Kind)
	require.Len(t, iter0.Children, 1)
	text0, _ := ev.Arena.Get(iter0.Children[0])
	assert.Equal(t, "x", text0.Value.Value.Str)

	assert.Equal(t, 0, ctx.Scope.Len(), "bindings must be popped after the loop")
}

func TestEvalControlFlowPicksTrueBranch(t *testing.T) {
	ev, ctx := newEvaluator()
	cf := ast.ControlFlow{Branches: []ast.IfBranch{
		{Cond: ast.ExprPrimitive{Value: false}, Body: []ast.Blueprint{ast.Single{Ident: "a"}}},
		{Cond: nil, Body: []ast.Blueprint{ast.Single{Ident: "b"}}},
	}}
	id, err := ev.evalOne(cf, ctx)
	require.NoError(t, err)
	c, _ := ev.Arena.Get(id)
	assert.Equal(t, 1, c.ActiveBranch)
	require.Len(t, c.Children, 1)
	container, _ := ev.Arena.Get(c.Children[0])
	require.Len(t, container.Children, 1)
	leaf, _ := ev.Arena.Get(container.Children[0])
	assert.Equal(t, "b", leaf.Ident)
}

func TestEvalComponentSubstitutesSlotAndState(t *testing.T) {
	ev, ctx := newEvaluator()
	require.NoError(t, ev.Registry.Register(ast.ComponentDef{
		ID: "button",
		State: map[string]ast.Expression{
			"label": ast.ExprStr{Value: "ok"},
		},
		Body: []ast.Blueprint{
			ast.Single{Ident: "text", Value: ast.ExprIndex{Lhs: ast.ExprIdent{Name: "state"}, Rhs: ast.ExprStr{Value: "label"}}},
			ast.Slot{ID: "default"},
		},
	}))

	comp := ast.Component{
		ID:   "button",
		Body: []ast.Blueprint{ast.Single{Ident: "icon"}},
	}
	id, err := ev.evalOne(comp, ctx)
	require.NoError(t, err)
	c, _ := ev.Arena.Get(id)
	require.Len(t, c.Children, 2)

	textNode, _ := ev.Arena.Get(c.Children[0])
	assert.Equal(t, "ok", textNode.Value.Value.Str)

	iconNode, _ := ev.Arena.Get(c.Children[1])
	assert.Equal(t, "icon", iconNode.Ident)
}

func TestArenaStaleIdFailsAfterRemove(t *testing.T) {
	a := New()
	id := a.Insert(Container{Ident: "x"})
	a.Remove(id)
	_, ok := a.Get(id)
	assert.False(t, ok)

	id2 := a.Insert(Container{Ident: "y"})
	assert.Equal(t, id.Index, id2.Index)
	assert.NotEqual(t, id.Generation, id2.Generation)
}
