// Package btesting provides low-level backend-event testing helpers: an
// in-memory backend.Backend (FakeBackend) and constructors for the key
// and mouse events a test wants to feed it, without needing a real
// terminal.
//
// This package is a thin alias over github.com/loomtui/loom/testing/harness,
// giving callers a shorter import path for the backend-facing half of that
// package; testing/testutil re-exports the fuller Harness on top of it.
package btesting

import (
	"github.com/loomtui/loom/backend"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/testing/harness"
)

// FakeBackend is an in-memory backend.Backend recording every Render call,
// with events queued by the test and drained FIFO.
type FakeBackend = harness.FakeBackend

// NewFakeBackend returns a FakeBackend reporting the given viewport size.
func NewFakeBackend(size geom.Size) *FakeBackend {
	return harness.NewFakeBackend(size)
}

// Key returns a plain, unmodified key event for code.
func Key(code backend.KeyCode) backend.Event {
	return backend.Key(backend.KeyEvent{Code: code})
}

// Char returns a plain character key event.
func Char(r rune) backend.Event {
	return Key(backend.KeyCode{Named: backend.KeyChar, Char: r})
}

// Mouse returns a mouse event at (x, y) in the given state.
func Mouse(x, y int, state backend.MouseState) backend.Event {
	return backend.Mouse(backend.MouseEvent{X: x, Y: y, State: state})
}

// Resize returns an EventResize carrying size.
func Resize(size geom.Size) backend.Event {
	return backend.Resize(size)
}

// Stop returns the EventStop a backend.Backend.QuitTest always honours.
func Stop() backend.Event {
	return backend.Stop()
}
