package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/compile"
	"github.com/loomtui/loom/internal/exprresolve"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/scope"
	"github.com/loomtui/loom/internal/valuestore"
	"github.com/loomtui/loom/internal/widget"
)

// buildTree builds:
//
//	vstack
//	  text(bold=true)  "a"
//	  text             "b"
func buildTree(t *testing.T) (*widget.Arena, widget.Id, widget.Id, widget.Id) {
	t.Helper()
	store := valuestore.New()
	arena := widget.New()
	factory := widget.NewFactory()
	reg := compile.NewRegistry()
	ev := widget.NewEvaluator(arena, store, reg, factory, scope.Globals{})
	ctx := scope.NewContext(store, scope.Globals{}, "root")

	bp := ast.Single{
		Ident: "vstack",
		Children: []ast.Blueprint{
			ast.Single{
				Ident:      "text",
				Attributes: []ast.Attribute{{Key: "bold", Value: ast.ExprPrimitive{Value: true}}},
				Value:      ast.ExprStr{Value: "a"},
			},
			ast.Single{Ident: "text", Value: ast.ExprStr{Value: "b"}},
		},
	}
	ids, err := ev.EvalBody([]ast.Blueprint{bp}, ctx)
	require.NoError(t, err)
	root := ids[0]
	arena.SetRoot(root)

	rootC, ok := arena.Get(root)
	require.True(t, ok)
	require.Len(t, rootC.Children, 2)
	return arena, root, rootC.Children[0], rootC.Children[1]
}

func TestAllWalksEveryWidget(t *testing.T) {
	arena, root, a, b := buildTree(t)
	ids := New(arena).All()
	assert.ElementsMatch(t, []widget.Id{root, a, b}, ids)
}

func TestByTagFiltersElementKind(t *testing.T) {
	arena, _, a, b := buildTree(t)
	ids := New(arena).ByTag("text")
	assert.ElementsMatch(t, []widget.Id{a, b}, ids)

	stacks := New(arena).ByTag("vstack")
	assert.Len(t, stacks, 1)
}

func TestByAttributeMatchesResolvedValue(t *testing.T) {
	arena, _, a, _ := buildTree(t)
	bold := New(arena).ByAttribute("bold", func(v exprresolve.Value) bool {
		b, ok := v.AsBool()
		return ok && b
	})
	require.Len(t, bold, 1)
	assert.Equal(t, a, bold[0])
}

func TestByAttributeAbsentKeyExcludesWidget(t *testing.T) {
	arena, _, _, _ := buildTree(t)
	matches := New(arena).ByAttribute("missing", func(exprresolve.Value) bool { return true })
	assert.Empty(t, matches)
}

func TestByIDRoundTripsLiveContainer(t *testing.T) {
	arena, _, a, _ := buildTree(t)
	c, ok := New(arena).ByID(a)
	require.True(t, ok)
	assert.Equal(t, "text", c.Ident)
}

func TestByIDFailsOnRemovedWidget(t *testing.T) {
	arena, _, a, _ := buildTree(t)
	arena.Remove(a)
	_, ok := New(arena).ByID(a)
	assert.False(t, ok)
}

func TestAtPositionReturnsDeepestContainingWidget(t *testing.T) {
	arena, root, a, b := buildTree(t)

	rootC, _ := arena.Get(root)
	rootC.InnerBounds = geom.Region{Pos: geom.Pos{X: 0, Y: 0}, Size: geom.Size{Width: 10, Height: 2}}

	aC, _ := arena.Get(a)
	aC.InnerBounds = geom.Region{Pos: geom.Pos{X: 0, Y: 0}, Size: geom.Size{Width: 10, Height: 1}}

	bC, _ := arena.Get(b)
	bC.InnerBounds = geom.Region{Pos: geom.Pos{X: 0, Y: 1}, Size: geom.Size{Width: 10, Height: 1}}

	hit, ok := New(arena).AtPosition(geom.Pos{X: 3, Y: 0})
	require.True(t, ok)
	assert.Equal(t, a, hit)

	hit, ok = New(arena).AtPosition(geom.Pos{X: 3, Y: 1})
	require.True(t, ok)
	assert.Equal(t, b, hit)
}

func TestAtPositionMissesOutsideAnyBounds(t *testing.T) {
	arena, root, _, _ := buildTree(t)
	rootC, _ := arena.Get(root)
	rootC.InnerBounds = geom.Region{Pos: geom.Pos{X: 0, Y: 0}, Size: geom.Size{Width: 10, Height: 2}}

	_, ok := New(arena).AtPosition(geom.Pos{X: 100, Y: 100})
	assert.False(t, ok)
}
