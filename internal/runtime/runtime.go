// Package runtime drives the per-tick event loop: drain reactive changes,
// re-resolve the affected widgets, invalidate their layout cache chain,
// re-run layout/position/paint, diff the result, and hand the diff to a
// backend.Backend (spec §4.10, §6).
package runtime

import (
	"time"

	"github.com/loomtui/loom/backend"
	"github.com/loomtui/loom/internal/focus"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/monitoring"
	"github.com/loomtui/loom/internal/paint"
	"github.com/loomtui/loom/internal/query"
	"github.com/loomtui/loom/internal/valuestore"
	"github.com/loomtui/loom/internal/widget"
	"github.com/loomtui/loom/observability"
)

// PollTimeout bounds how long a single Tick waits for an input event
// before giving up and painting whatever the reactive drain produced on
// its own (spec §4.10 "a tick is not blocked indefinitely on input").
const PollTimeout = 16 * time.Millisecond

// Runtime owns one application's full widget tree and drives it forward
// one tick at a time.
type Runtime struct {
	Arena     *widget.Arena
	Store     *valuestore.Store
	Evaluator *widget.Evaluator
	Pipeline  *layout.Pipeline
	Backend   backend.Backend
	TabIndex  *focus.TabIndex
	Deferred  *focus.DeferredRequests

	front, back *paint.Buffer

	// OnEvent handles an input Event that reaches the runtime after focus
	// and the backend's own QuitTest have had a chance to consume it.
	// Returning true requests a clean shutdown.
	OnEvent func(backend.Event) bool

	// OnKey, if set, is offered every non-Tab/BackTab key event before
	// OnEvent, along with the currently focused component's widget.Id
	// (spec §4.10 "Key -> route to the focused component, then to global
	// handlers if unconsumed"). Returning true means the focused component
	// consumed the key, so OnEvent is not also called for it. If no
	// component is focused, or OnKey is nil, or OnKey returns false, the
	// event falls through to OnEvent.
	OnKey func(widget.Id, backend.KeyEvent) bool
}

// New wires a Runtime over an already-evaluated arena. width/height size
// the double buffer used for diffing.
func New(arena *widget.Arena, store *valuestore.Store, ev *widget.Evaluator, pipeline *layout.Pipeline, be backend.Backend, tabs *focus.TabIndex, width, height int) *Runtime {
	r := &Runtime{
		Arena:     arena,
		Store:     store,
		Evaluator: ev,
		Pipeline:  pipeline,
		Backend:   be,
		TabIndex:  tabs,
		Deferred:  &focus.DeferredRequests{},
		front:     paint.NewBuffer(width, height),
		back:      paint.NewBuffer(width, height),
	}
	r.RebuildTabIndex()
	return r
}

// RebuildTabIndex walks the arena in tree order and replaces the
// TabIndex's entry list with every live KindComponent node found (spec
// §4.9 "Tab index stores components in declaration/tree order"). Every
// component currently accepts focus unconditionally; a future per-
// component accept_focus policy would populate focus.Entry.AcceptFocus
// here instead of leaving it nil.
func (r *Runtime) RebuildTabIndex() {
	var entries []focus.Entry
	root := r.Arena.Root()
	if !root.Zero() {
		r.Arena.Walk(root, func(id widget.Id, c *widget.Container) bool {
			if c.Kind == widget.KindComponent {
				entries = append(entries, focus.Entry{Widget: id})
			}
			return true
		})
	}
	r.TabIndex.Rebuild(entries)
}

// Query returns a Query over the runtime's current arena, letting a caller
// (e.g. an OnEvent handler routing a mouse click) resolve a screen position
// to the widget it hit (spec §4.10 "position-hit via Query by AtPosition").
func (r *Runtime) Query() *query.Query {
	return query.New(r.Arena)
}

// Front returns the buffer holding the last frame actually rendered,
// letting a test harness inspect what a backend would have drawn without
// re-deriving it from the diff Changes it received.
func (r *Runtime) Front() *paint.Buffer {
	return r.front
}

// Resize reallocates both of the runtime's diff buffers, e.g. in response
// to a backend.EventResize, but only when size actually differs from the
// buffers' current dimensions — paint.Buffer.Resize always zeroes the
// buffer it touches (spec §4.8 "previous is set to empty so the next
// render repaints everything"), so resizing on every tick regardless of
// whether the viewport changed would wipe front before each diff and
// defeat incremental rendering entirely (every tick would read back as a
// full repaint against an empty front, and never emit a clear for a cell
// that goes from occupied to empty).
func (r *Runtime) Resize(size geom.Size) {
	w, h := int(size.Width), int(size.Height)
	if r.front.Width == w && r.front.Height == h {
		return
	}
	r.front.Resize(w, h)
	r.back.Resize(w, h)
}

// Tick runs one full iteration of the loop: reactive re-resolution, a
// fresh layout/position/paint pass, diffing against the previous frame,
// rendering the diff, and polling for (and dispatching) at most one input
// event. It returns true if the application should keep running.
func (r *Runtime) Tick() bool {
	start := time.Now()
	metrics := monitoring.GetGlobalMetrics()

	dirty := r.reresolve()
	if dirty {
		r.RebuildTabIndex()
	}

	layoutStart := time.Now()
	size := r.Backend.Size()
	constraints := geom.Tight(size)
	r.Resize(size)
	// back was last used as a paint target two ticks ago (front/back only
	// swap, never reallocate, on an unchanged size) and Paint only ever
	// writes cells a live widget actually covers, so a cell vacated since
	// then would otherwise carry that stale glyph straight into this
	// frame's diff. Clearing first makes back an exact snapshot of the
	// current tree, matching front's own same-discipline snapshot from one
	// tick ago (spec §4.8's double-buffer diff).
	r.back.Clear()
	r.Pipeline.Run(constraints, geom.Pos{}, r.back)
	metrics.RecordLayoutDuration(time.Since(layoutStart))

	changes := paint.Diff(r.front, r.back)
	metrics.RecordDiffSize(len(changes))
	if len(changes) > 0 || dirty {
		if err := r.Backend.Render(changes); err != nil {
			r.reportError(err, "Render")
		}
		r.front, r.back = r.back, r.front
	}

	keepRunning := r.pollInput()

	r.Deferred.Flush(r.TabIndex)
	metrics.RecordTickDuration(time.Since(start))
	return keepRunning
}

// reresolve drains every pending reactive change and re-resolves the
// widget each targets, bubbling a layout invalidation up the ancestor
// chain for anything that actually changed (spec §4.7 bubble-up, §4.10).
// It reports whether at least one widget changed, so Tick still renders a
// frame even when the diff itself happens to be empty (e.g. a collection
// change that adds then immediately removes a row).
func (r *Runtime) reresolve() bool {
	metrics := monitoring.GetGlobalMetrics()
	batches := r.Store.DrainChanges()

	dirty := false
	for _, batch := range batches {
		metrics.RecordSubscriberFanout(len(batch.Subscribers))
		for _, sub := range batch.Subscribers {
			id, ok := widget.ParseID(string(sub))
			if !ok {
				continue
			}
			if r.reresolveOne(id, batch.Change) {
				dirty = true
			}
		}
	}
	return dirty
}

// reresolveOne dispatches a single subscriber's change to the right
// Evaluator.Refresh* method based on what kind of node it targets, then
// invalidates the layout cache along id's ancestor chain if anything
// actually changed.
func (r *Runtime) reresolveOne(id widget.Id, change valuestore.Change) bool {
	c, ok := r.Arena.Get(id)
	if !ok {
		return false
	}

	changed := false
	switch c.Kind {
	case widget.KindElement:
		changed = r.Evaluator.RefreshAttributes(id)
	case widget.KindControlFlow:
		var err error
		changed, err = r.Evaluator.RefreshBranch(id)
		if err != nil {
			r.reportError(err, "RefreshBranch")
		}
	case widget.KindFor:
		if err := r.Evaluator.RefreshCollection(id, change); err != nil {
			r.reportError(err, "RefreshCollection")
		}
		changed = true
	default:
		return false
	}

	if changed {
		r.Pipeline.Invalidate(id, r.Arena.AncestorChain(id)...)
	}
	return changed
}

// pollInput waits up to PollTimeout for one input Event and dispatches
// it (spec §4.10 step 7): Resize reallocates the diff buffers, Tab/
// BackTab drive focus traversal directly rather than reaching OnEvent,
// Key is offered to the focused component via OnKey before falling
// through to OnEvent as a global handler. The backend's own QuitTest
// always takes priority, so e.g. Ctrl-C reliably terminates the
// application even if OnEvent would otherwise swallow it.
func (r *Runtime) pollInput() bool {
	event, ok := r.Backend.NextEvent(PollTimeout)
	if !ok {
		return true
	}
	if r.Backend.QuitTest(event) {
		return false
	}

	switch {
	case event.Kind == backend.EventResize:
		r.Resize(event.Resize)
		return true
	case event.Kind == backend.EventKey && event.Key.Code.Named == backend.KeyTab:
		r.TabIndex.Tab()
		return true
	case event.Kind == backend.EventKey && event.Key.Code.Named == backend.KeyBackTab:
		r.TabIndex.BackTab()
		return true
	case event.Kind == backend.EventKey:
		if focused, ok := r.TabIndex.Current(); ok && r.OnKey != nil && r.OnKey(focused, event.Key) {
			return true
		}
	}

	if r.OnEvent != nil && r.OnEvent(event) {
		return false
	}
	return true
}

// Run drives Tick in a loop, calling Finalize before the first tick and
// Shutdown after the last one, until Tick reports the application should
// stop.
func (r *Runtime) Run() error {
	if err := r.Backend.Finalize(); err != nil {
		return err
	}
	defer r.Backend.Shutdown()

	for r.Tick() {
	}
	return nil
}

func (r *Runtime) reportError(err error, stage string) {
	reporter := observability.GetErrorReporter()
	if reporter == nil {
		return
	}
	kind := observability.KindRefresh
	if stage == "Render" {
		kind = observability.KindBackendIO
	}
	reporter.ReportError(err, &observability.ErrorContext{
		Kind:      kind,
		Stage:     stage,
		Timestamp: time.Now(),
	})
}
