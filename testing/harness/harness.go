// Package harness drives a compiled loom.Program against an in-memory
// FakeBackend, for tests that exercise a full tick — reactive drain,
// layout/position/paint, and diff — without a real terminal.
//
// It is grounded on internal/runtime's own fakeBackend test double
// (internal/runtime/runtime_test.go), promoted here as an exported type so
// application code outside the module can write the same kind of test.
package harness

import (
	"strings"
	"time"

	"github.com/loomtui/loom"
	"github.com/loomtui/loom/backend"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/paint"
	"github.com/loomtui/loom/internal/runtime"
)

// FakeBackend is an in-memory backend.Backend: events are queued by the
// test and drained FIFO, every Render call is recorded verbatim, and
// Finalize/Shutdown/Clear are no-ops.
type FakeBackend struct {
	size    geom.Size
	events  []backend.Event
	renders [][]paint.Change
	cleared int
}

// NewFakeBackend returns a FakeBackend reporting the given viewport size.
func NewFakeBackend(size geom.Size) *FakeBackend {
	return &FakeBackend{size: size}
}

// QueueEvent appends e to the FIFO NextEvent will drain from.
func (f *FakeBackend) QueueEvent(e backend.Event) { f.events = append(f.events, e) }

// QueueKey queues a plain, unmodified key event.
func (f *FakeBackend) QueueKey(code backend.KeyCode) {
	f.QueueEvent(backend.Key(backend.KeyEvent{Code: code}))
}

// QueueMouse queues a mouse event at (x, y).
func (f *FakeBackend) QueueMouse(x, y int, state backend.MouseState) {
	f.QueueEvent(backend.Mouse(backend.MouseEvent{X: x, Y: y, State: state}))
}

// Resize updates the size NextEvent and Size report, and queues an
// EventResize so a running Runtime observes it on its next poll.
func (f *FakeBackend) Resize(size geom.Size) {
	f.size = size
	f.QueueEvent(backend.Resize(size))
}

func (f *FakeBackend) Size() geom.Size { return f.size }

func (f *FakeBackend) NextEvent(time.Duration) (backend.Event, bool) {
	if len(f.events) == 0 {
		return backend.Event{}, false
	}
	e := f.events[0]
	f.events = f.events[1:]
	return e, true
}

func (f *FakeBackend) Render(changes []paint.Change) error {
	f.renders = append(f.renders, changes)
	return nil
}

func (f *FakeBackend) Clear() error    { f.cleared++; return nil }
func (f *FakeBackend) Finalize() error { return nil }
func (f *FakeBackend) Shutdown() error { return nil }

func (f *FakeBackend) QuitTest(e backend.Event) bool {
	return e.Kind == backend.EventStop
}

// Renders returns every []paint.Change passed to Render so far, in order.
func (f *FakeBackend) Renders() [][]paint.Change { return f.renders }

// LastRender returns the most recent Render call's Changes, or nil if
// Render was never called.
func (f *FakeBackend) LastRender() []paint.Change {
	if len(f.renders) == 0 {
		return nil
	}
	return f.renders[len(f.renders)-1]
}

// Harness compiles a template and drives its runtime.Runtime forward one
// tick at a time against a FakeBackend, for assertions on the resulting
// widget tree, paint diff, or rendered text without a real terminal loop.
type Harness struct {
	Program *loom.Program
	Backend *FakeBackend
	Runtime *runtime.Runtime
}

// New compiles source (with the default widget registry) and wires a
// Harness around it, sized w by h.
func New(source string, w, h int) (*Harness, error) {
	return NewWithComponents(source, nil, w, h)
}

// NewWithComponents is New plus a set of named component templates,
// registered before source is compiled so its `@id` embeds resolve.
func NewWithComponents(source string, components []loom.ComponentSource, w, h int) (*Harness, error) {
	prog, err := loom.CompileProgram(source, components, nil)
	if err != nil {
		return nil, err
	}
	be := NewFakeBackend(geom.Size{Width: uint16(w), Height: uint16(h)})
	rt := prog.Runtime(be)
	return &Harness{Program: prog, Backend: be, Runtime: rt}, nil
}

// Tick runs exactly one Runtime.Tick, draining at most one queued event.
func (h *Harness) Tick() bool { return h.Runtime.Tick() }

// TickN runs n ticks, stopping early if Tick reports the application
// should shut down.
func (h *Harness) TickN(n int) bool {
	keepRunning := true
	for i := 0; i < n && keepRunning; i++ {
		keepRunning = h.Tick()
	}
	return keepRunning
}

// Snapshot renders the runtime's front buffer as plain text, one line per
// row, trailing blank cells trimmed — useful for asserting on what a
// terminal would actually show without depending on paint.Change ordering.
func (h *Harness) Snapshot() string {
	return Snapshot(h.Runtime)
}

// Snapshot renders rt's current front buffer, obtained through
// Runtime.Front, as plain text row by row.
func Snapshot(rt *runtime.Runtime) string {
	buf := rt.Front()
	var rows []string
	for y := 0; y < buf.Height; y++ {
		var sb strings.Builder
		for x := 0; x < buf.Width; x++ {
			cell, ok := buf.Get(x, y)
			if !ok || cell.State != paint.StateOccupied {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(cell.Glyph.Cluster)
		}
		rows = append(rows, strings.TrimRight(sb.String(), " "))
	}
	return strings.Join(rows, "\n")
}
