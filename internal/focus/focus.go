// Package focus implements the tab index: ordered focusable widgets,
// forward/backward traversal skipping non-accepting entries, blur/focus
// hook firing, and deferred focus requests (spec §4.9).
package focus

import "github.com/loomtui/loom/internal/widget"

// Entry is one focusable participant in tree order (spec §4.9 "Tab index
// stores components in declaration/tree order").
type Entry struct {
	Widget      widget.Id
	AcceptFocus func() bool
}

// Hooks are invoked on a focus transition.
type Hooks struct {
	OnBlur  func(widget.Id)
	OnFocus func(widget.Id)
}

// None is the sentinel cursor value meaning no component is focused.
const None = -1

// TabIndex tracks the focus cursor over an ordered list of Entries.
type TabIndex struct {
	entries []Entry
	cursor  int
	hooks   Hooks
}

// NewTabIndex returns an empty TabIndex with cursor None.
func NewTabIndex(hooks Hooks) *TabIndex {
	return &TabIndex{cursor: None, hooks: hooks}
}

// Rebuild replaces the entry list, e.g. after a conditional branch adds or
// removes components (spec §4.9 "the tab list must be rebuilt... to
// preserve this order"). If the previously-focused widget is still
// present, the cursor follows it to its new index. If it is gone —
// typically because the focused component itself was removed — focus
// advances to whatever entry now occupies its old position (testable
// property 6: "removing the currently focused component advances focus to
// the next"), skipping forward past any entry that declines focus. If the
// new list is empty the cursor resets to None.
func (t *TabIndex) Rebuild(entries []Entry) {
	var focused widget.Id
	oldCursor := t.cursor
	hadFocus := t.cursor != None && t.cursor < len(t.entries)
	if hadFocus {
		focused = t.entries[t.cursor].Widget
	}

	t.entries = entries
	t.cursor = None
	if !hadFocus {
		return
	}

	for i, e := range entries {
		if e.Widget == focused {
			t.cursor = i
			return
		}
	}

	t.advanceFromRemovedPosition(oldCursor)
}

// advanceFromRemovedPosition picks the first accepting entry at or after
// the removed widget's old index, wrapping around once.
func (t *TabIndex) advanceFromRemovedPosition(oldIndex int) {
	n := len(t.entries)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		idx := normalize(oldIndex+i, n)
		if t.entries[idx].AcceptFocus == nil || t.entries[idx].AcceptFocus() {
			t.cursor = idx
			if t.hooks.OnFocus != nil {
				t.hooks.OnFocus(t.entries[idx].Widget)
			}
			return
		}
	}
}

// Current returns the currently focused widget and whether any component
// is focused.
func (t *TabIndex) Current() (widget.Id, bool) {
	if t.cursor == None || t.cursor >= len(t.entries) {
		return widget.Id{}, false
	}
	return t.entries[t.cursor].Widget, true
}

// Tab advances the cursor forward to the next entry accepting focus,
// wrapping around; if none accept, the cursor becomes None and key events
// are consumed globally (spec §4.9).
func (t *TabIndex) Tab() {
	t.move(1)
}

// BackTab moves the cursor backward to the previous accepting entry.
func (t *TabIndex) BackTab() {
	t.move(-1)
}

func (t *TabIndex) move(step int) {
	n := len(t.entries)
	if n == 0 {
		t.setCursor(None)
		return
	}
	start := t.cursor
	for i := 1; i <= n; i++ {
		next := normalize(start+step*i, n)
		if t.entries[next].AcceptFocus == nil || t.entries[next].AcceptFocus() {
			t.setCursor(next)
			return
		}
	}
	t.setCursor(None)
}

func normalize(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func (t *TabIndex) setCursor(next int) {
	if t.cursor == next {
		return
	}
	if prev, ok := t.Current(); ok && t.hooks.OnBlur != nil {
		t.hooks.OnBlur(prev)
	}
	t.cursor = next
	if cur, ok := t.Current(); ok && t.hooks.OnFocus != nil {
		t.hooks.OnFocus(cur)
	}
}

// Len reports the number of focusable entries.
func (t *TabIndex) Len() int { return len(t.entries) }
