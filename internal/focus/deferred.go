package focus

import "github.com/loomtui/loom/internal/widget"

// DeferredRequests queues focus() calls made from component code so they
// execute at the end of the current event handling, letting blur/focus
// hooks run between events rather than inside a handler call (spec §4.9
// "Focus changes requested from component code... are deferred").
type DeferredRequests struct {
	queue []widget.Id
}

// Request enqueues a focus request for id.
func (d *DeferredRequests) Request(id widget.Id) {
	d.queue = append(d.queue, id)
}

// Flush applies every queued request, in order, against t, then clears the
// queue. A request for a widget not present in t's current entries is a
// no-op.
func (d *DeferredRequests) Flush(t *TabIndex) {
	for _, id := range d.queue {
		t.focusID(id)
	}
	d.queue = d.queue[:0]
}

// focusID moves the cursor directly to id's entry, firing the usual
// blur/focus hooks, regardless of accept_focus (an explicit focus()
// request overrides the traversal-time gating).
func (t *TabIndex) focusID(id widget.Id) {
	for i, e := range t.entries {
		if e.Widget == id {
			t.setCursor(i)
			return
		}
	}
}
