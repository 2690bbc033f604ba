package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomtui/loom/backend"
	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/compile"
	"github.com/loomtui/loom/internal/defaultwidgets"
	"github.com/loomtui/loom/internal/focus"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/paint"
	"github.com/loomtui/loom/internal/scope"
	"github.com/loomtui/loom/internal/valuestore"
	"github.com/loomtui/loom/internal/widget"
)

// fakeBackend is an in-memory Backend recording every Render call, for
// assertions without a real terminal.
type fakeBackend struct {
	size    geom.Size
	events  []backend.Event
	renders [][]paint.Change
}

func (f *fakeBackend) Size() geom.Size { return f.size }

func (f *fakeBackend) NextEvent(time.Duration) (backend.Event, bool) {
	if len(f.events) == 0 {
		return backend.Event{}, false
	}
	e := f.events[0]
	f.events = f.events[1:]
	return e, true
}

func (f *fakeBackend) Render(changes []paint.Change) error {
	f.renders = append(f.renders, changes)
	return nil
}

func (f *fakeBackend) Clear() error    { return nil }
func (f *fakeBackend) Finalize() error { return nil }
func (f *fakeBackend) Shutdown() error { return nil }
func (f *fakeBackend) QuitTest(e backend.Event) bool {
	return e.Kind == backend.EventStop
}

// buildStatefulText builds a single "text" element whose content is
// `state.label`, evaluated under a pushed state frame so RefreshAttributes
// can later re-resolve it against the same binding after a mutation.
func buildStatefulText(t *testing.T) (*widget.Evaluator, *widget.Arena, *valuestore.Store, widget.Id, valuestore.OwnedKey) {
	t.Helper()
	store := valuestore.New()
	arena := widget.New()
	factory := widget.NewFactory()
	reg := compile.NewRegistry()
	ev := widget.NewEvaluator(arena, store, reg, factory, scope.Globals{})

	stateKey := store.NewValue(map[string]any{"label": "hello"}, "state")

	ctx := scope.NewContext(store, scope.Globals{}, "root")
	ctx.Scope.PushState(scope.StateId(stateKey))

	bp := ast.Single{
		Ident: "text",
		Value: ast.ExprIndex{Lhs: ast.ExprIdent{Name: "state"}, Rhs: ast.ExprStr{Value: "label"}},
	}
	id, err := ev.EvalBody([]ast.Blueprint{bp}, ctx)
	require.NoError(t, err)
	arena.SetRoot(id[0])

	return ev, arena, store, id[0], stateKey
}

func newTestPipeline(arena *widget.Arena) *layout.Pipeline {
	reg := layout.NewRegistry()
	defaultwidgets.Register(reg)
	return layout.New(arena, reg)
}

// buildComponents evaluates n sibling "marker" component embeds under a
// vstack root, each with its own `label` state field, for tests exercising
// TabIndex wiring end to end through Runtime rather than focus's own unit
// tests in isolation.
func buildComponents(t *testing.T, n int) (*widget.Evaluator, *widget.Arena, *valuestore.Store, []valuestore.OwnedKey) {
	t.Helper()
	store := valuestore.New()
	arena := widget.New()
	factory := widget.NewFactory()
	reg := compile.NewRegistry()
	require.NoError(t, reg.Register(ast.ComponentDef{
		ID: "marker",
		Body: []ast.Blueprint{ast.Single{
			Ident: "text",
			Value: ast.ExprIndex{Lhs: ast.ExprIdent{Name: "state"}, Rhs: ast.ExprStr{Value: "label"}},
		}},
		State: map[string]ast.Expression{"label": ast.ExprStr{Value: " "}},
	}))
	ev := widget.NewEvaluator(arena, store, reg, factory, scope.Globals{})

	ctx := scope.NewContext(store, scope.Globals{}, "root")
	var embeds []ast.Blueprint
	for i := 0; i < n; i++ {
		embeds = append(embeds, ast.Component{ID: "marker", State: map[string]ast.Expression{}})
	}
	root := ast.Single{Ident: "vstack", Children: embeds}
	ids, err := ev.EvalBody([]ast.Blueprint{root}, ctx)
	require.NoError(t, err)
	arena.SetRoot(ids[0])

	rootC, _ := arena.Get(ids[0])
	stateKeys := make([]valuestore.OwnedKey, 0, n)
	for _, childID := range rootC.Children {
		c, ok := arena.Get(childID)
		require.True(t, ok)
		key, ok := c.StateKey()
		require.True(t, ok)
		stateKeys = append(stateKeys, key)
	}
	return ev, arena, store, stateKeys
}

func TestTickRendersInitialFrame(t *testing.T) {
	ev, arena, store, _, _ := buildStatefulText(t)
	pipeline := newTestPipeline(arena)
	be := &fakeBackend{size: geom.Size{Width: 10, Height: 2}}

	rt := New(arena, store, ev, pipeline, be, focus.NewTabIndex(focus.Hooks{}), 10, 2)

	keepRunning := rt.Tick()
	assert.True(t, keepRunning)
	require.Len(t, be.renders, 1, "first tick always has a nonempty diff against a blank buffer")
}

func TestTickReresolvesOnStoreChangeAndRepaints(t *testing.T) {
	ev, arena, store, textID, stateKey := buildStatefulText(t)
	pipeline := newTestPipeline(arena)
	be := &fakeBackend{size: geom.Size{Width: 10, Height: 2}}
	rt := New(arena, store, ev, pipeline, be, focus.NewTabIndex(focus.Hooks{}), 10, 2)

	require.True(t, rt.Tick())
	require.Len(t, be.renders, 1)

	store.WithOwned(stateKey, func(v any) any {
		m := v.(map[string]any)
		m["label"] = "goodbye"
		return m
	})
	store.Changed(stateKey, valuestore.Updated())

	require.True(t, rt.Tick())
	require.Len(t, be.renders, 2, "a resolved attribute change must always produce a second render")

	c, ok := arena.Get(textID)
	require.True(t, ok)
	assert.Equal(t, "goodbye", c.Value.Value.Str)
}

func TestTickHonoursQuitTestOverInput(t *testing.T) {
	ev, arena, store, _, _ := buildStatefulText(t)
	pipeline := newTestPipeline(arena)
	be := &fakeBackend{
		size:   geom.Size{Width: 10, Height: 2},
		events: []backend.Event{backend.Stop()},
	}
	rt := New(arena, store, ev, pipeline, be, focus.NewTabIndex(focus.Hooks{}), 10, 2)

	assert.False(t, rt.Tick())
}

func TestTickDispatchesEventToOnEventHook(t *testing.T) {
	ev, arena, store, _, _ := buildStatefulText(t)
	pipeline := newTestPipeline(arena)
	pressed := backend.Key(backend.KeyEvent{Code: backend.KeyCode{Named: backend.KeyEnter}})
	be := &fakeBackend{
		size:   geom.Size{Width: 10, Height: 2},
		events: []backend.Event{pressed},
	}
	rt := New(arena, store, ev, pipeline, be, focus.NewTabIndex(focus.Hooks{}), 10, 2)

	var seen backend.Event
	rt.OnEvent = func(e backend.Event) bool {
		seen = e
		return false
	}

	assert.True(t, rt.Tick(), "OnEvent declining to quit must keep the loop running")
	assert.Equal(t, backend.EventKey, seen.Kind)
	assert.Equal(t, backend.KeyEnter, seen.Key.Code.Named)
}

func TestRunCallsFinalizeAndShutdown(t *testing.T) {
	ev, arena, store, _, _ := buildStatefulText(t)
	pipeline := newTestPipeline(arena)
	be := &fakeBackend{
		size:   geom.Size{Width: 10, Height: 2},
		events: []backend.Event{backend.Stop()},
	}
	rt := New(arena, store, ev, pipeline, be, focus.NewTabIndex(focus.Hooks{}), 10, 2)

	require.NoError(t, rt.Run())
}

func TestNewRebuildsTabIndexFromComponentTree(t *testing.T) {
	ev, arena, store, _ := buildComponents(t, 3)
	pipeline := newTestPipeline(arena)
	be := &fakeBackend{size: geom.Size{Width: 10, Height: 3}}
	rt := New(arena, store, ev, pipeline, be, focus.NewTabIndex(focus.Hooks{}), 10, 3)

	assert.Equal(t, 3, rt.TabIndex.Len())
}

func TestTabKeyAdvancesFocusWithoutReachingOnEvent(t *testing.T) {
	ev, arena, store, _ := buildComponents(t, 3)
	pipeline := newTestPipeline(arena)
	tabPress := backend.Key(backend.KeyEvent{Code: backend.KeyCode{Named: backend.KeyTab}})
	be := &fakeBackend{
		size:   geom.Size{Width: 10, Height: 3},
		events: []backend.Event{tabPress},
	}
	rt := New(arena, store, ev, pipeline, be, focus.NewTabIndex(focus.Hooks{}), 10, 3)

	onEventCalled := false
	rt.OnEvent = func(backend.Event) bool { onEventCalled = true; return false }

	rt.Tick()

	_, hadFocus := rt.TabIndex.Current()
	assert.True(t, hadFocus, "Tab with no prior focus should focus the first component")
	assert.False(t, onEventCalled, "Tab must be handled by focus traversal, never reach OnEvent")
}

func TestKeyRoutesToFocusedComponentBeforeOnEvent(t *testing.T) {
	ev, arena, store, stateKeys := buildComponents(t, 2)
	pipeline := newTestPipeline(arena)
	tabPress := backend.Key(backend.KeyEvent{Code: backend.KeyCode{Named: backend.KeyTab}})
	charPress := backend.Key(backend.KeyEvent{Code: backend.KeyCode{Named: backend.KeyChar, Char: 'x'}})
	be := &fakeBackend{
		size:   geom.Size{Width: 10, Height: 3},
		events: []backend.Event{tabPress, charPress},
	}
	rt := New(arena, store, ev, pipeline, be, focus.NewTabIndex(focus.Hooks{}), 10, 3)

	var onKeyFocused widget.Id
	rt.OnKey = func(focused widget.Id, k backend.KeyEvent) bool {
		onKeyFocused = focused
		store.WithOwned(stateKeys[0], func(v any) any {
			m := v.(map[string]any)
			m["label"] = string(k.Code.Char)
			return m
		})
		store.Changed(stateKeys[0], valuestore.Updated())
		return true
	}
	onEventCalled := false
	rt.OnEvent = func(backend.Event) bool { onEventCalled = true; return false }

	rt.Tick() // Tab -> focus first component
	rt.Tick() // 'x' -> routed to the focused component via OnKey

	first, ok := arena.Get(arena.Root())
	require.True(t, ok)
	focusedID := first.Children[0]
	assert.Equal(t, focusedID, onKeyFocused)
	assert.False(t, onEventCalled, "a key consumed by OnKey must not also reach OnEvent")

	c, ok := arena.Get(focusedID)
	require.True(t, ok)
	state, _ := store.Value(valuestore.OwnedKey(c.State))
	assert.Equal(t, "x", state.(map[string]any)["label"])
}
