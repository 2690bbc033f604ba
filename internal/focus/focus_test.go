package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomtui/loom/internal/widget"
)

func ids(arena *widget.Arena, n int) []widget.Id {
	out := make([]widget.Id, n)
	for i := range out {
		out[i] = arena.Insert(widget.Container{Kind: widget.KindElement})
	}
	return out
}

func acceptAll() func() bool { return func() bool { return true } }

func TestTabCyclesThroughAllAndWrapsAround(t *testing.T) {
	arena := widget.New()
	all := ids(arena, 3)
	a, ws := all[0], all[1:]
	entries := []Entry{
		{Widget: a, AcceptFocus: acceptAll()},
		{Widget: ws[0], AcceptFocus: acceptAll()},
		{Widget: ws[1], AcceptFocus: acceptAll()},
	}

	ti := NewTabIndex(Hooks{})
	ti.Rebuild(entries)

	ti.Tab()
	cur, ok := ti.Current()
	require.True(t, ok)
	assert.Equal(t, a, cur)

	ti.Tab()
	ti.Tab()
	cur, ok = ti.Current()
	require.True(t, ok)
	assert.Equal(t, ws[1], cur)

	ti.Tab()
	cur, ok = ti.Current()
	require.True(t, ok)
	assert.Equal(t, a, cur, "4th Tab from 3 entries wraps back to the first")
}

func TestTabSkipsNonAcceptingEntries(t *testing.T) {
	arena := widget.New()
	entryIDs := ids(arena, 3)
	entries := []Entry{
		{Widget: entryIDs[0], AcceptFocus: acceptAll()},
		{Widget: entryIDs[1], AcceptFocus: func() bool { return false }},
		{Widget: entryIDs[2], AcceptFocus: acceptAll()},
	}
	ti := NewTabIndex(Hooks{})
	ti.Rebuild(entries)

	ti.Tab()
	ti.Tab()
	cur, ok := ti.Current()
	require.True(t, ok)
	assert.Equal(t, entryIDs[2], cur)
}

func TestBackTabMovesBackward(t *testing.T) {
	arena := widget.New()
	entryIDs := ids(arena, 2)
	entries := []Entry{
		{Widget: entryIDs[0], AcceptFocus: acceptAll()},
		{Widget: entryIDs[1], AcceptFocus: acceptAll()},
	}
	ti := NewTabIndex(Hooks{})
	ti.Rebuild(entries)

	ti.Tab()
	ti.Tab()
	cur, _ := ti.Current()
	assert.Equal(t, entryIDs[1], cur)

	ti.BackTab()
	cur, _ = ti.Current()
	assert.Equal(t, entryIDs[0], cur)
}

func TestFocusFiresBlurAndFocusHooks(t *testing.T) {
	arena := widget.New()
	entryIDs := ids(arena, 2)
	entries := []Entry{
		{Widget: entryIDs[0], AcceptFocus: acceptAll()},
		{Widget: entryIDs[1], AcceptFocus: acceptAll()},
	}

	var blurred, focused []widget.Id
	ti := NewTabIndex(Hooks{
		OnBlur:  func(id widget.Id) { blurred = append(blurred, id) },
		OnFocus: func(id widget.Id) { focused = append(focused, id) },
	})
	ti.Rebuild(entries)

	ti.Tab()
	ti.Tab()

	assert.Equal(t, []widget.Id{entryIDs[0]}, blurred)
	assert.Equal(t, []widget.Id{entryIDs[0], entryIDs[1]}, focused)
}

func TestNoAcceptingComponentLeavesCursorNone(t *testing.T) {
	arena := widget.New()
	entryIDs := ids(arena, 2)
	entries := []Entry{
		{Widget: entryIDs[0], AcceptFocus: func() bool { return false }},
		{Widget: entryIDs[1], AcceptFocus: func() bool { return false }},
	}
	ti := NewTabIndex(Hooks{})
	ti.Rebuild(entries)

	ti.Tab()
	_, ok := ti.Current()
	assert.False(t, ok)
}

func TestRebuildPreservesFocusedWidgetAtNewIndex(t *testing.T) {
	arena := widget.New()
	entryIDs := ids(arena, 3)
	ti := NewTabIndex(Hooks{})
	ti.Rebuild([]Entry{
		{Widget: entryIDs[0], AcceptFocus: acceptAll()},
		{Widget: entryIDs[1], AcceptFocus: acceptAll()},
	})
	ti.Tab()
	ti.Tab()
	cur, _ := ti.Current()
	require.Equal(t, entryIDs[1], cur)

	ti.Rebuild([]Entry{
		{Widget: entryIDs[2], AcceptFocus: acceptAll()},
		{Widget: entryIDs[0], AcceptFocus: acceptAll()},
		{Widget: entryIDs[1], AcceptFocus: acceptAll()},
	})

	cur, ok := ti.Current()
	require.True(t, ok)
	assert.Equal(t, entryIDs[1], cur)
}

func TestRemovingFocusedComponentAdvancesToNext(t *testing.T) {
	arena := widget.New()
	entryIDs := ids(arena, 3)
	ti := NewTabIndex(Hooks{})
	ti.Rebuild([]Entry{
		{Widget: entryIDs[0], AcceptFocus: acceptAll()},
		{Widget: entryIDs[1], AcceptFocus: acceptAll()},
		{Widget: entryIDs[2], AcceptFocus: acceptAll()},
	})
	ti.Tab()
	ti.Tab()
	cur, _ := ti.Current()
	require.Equal(t, entryIDs[1], cur)

	// entryIDs[1] is removed; entryIDs[2] now occupies its old slot.
	ti.Rebuild([]Entry{
		{Widget: entryIDs[0], AcceptFocus: acceptAll()},
		{Widget: entryIDs[2], AcceptFocus: acceptAll()},
	})

	cur, ok := ti.Current()
	require.True(t, ok)
	assert.Equal(t, entryIDs[2], cur)
}

func TestDeferredRequestFocusesOverridingAcceptFocus(t *testing.T) {
	arena := widget.New()
	entryIDs := ids(arena, 2)
	ti := NewTabIndex(Hooks{})
	ti.Rebuild([]Entry{
		{Widget: entryIDs[0], AcceptFocus: acceptAll()},
		{Widget: entryIDs[1], AcceptFocus: func() bool { return false }},
	})

	var d DeferredRequests
	d.Request(entryIDs[1])
	d.Flush(ti)

	cur, ok := ti.Current()
	require.True(t, ok)
	assert.Equal(t, entryIDs[1], cur)
}
