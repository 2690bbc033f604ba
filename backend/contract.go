package backend

import (
	"time"

	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/paint"
)

// Backend is the terminal driver the runtime polls and paints through
// (spec §6.1).
type Backend interface {
	// Size returns the current viewport size.
	Size() geom.Size

	// NextEvent blocks up to timeout for the next input Event, returning
	// ok=false if none arrived (FIFO ordering).
	NextEvent(timeout time.Duration) (Event, bool)

	// Render flushes the given diff Changes to the terminal.
	Render(changes []paint.Change) error

	// Clear erases the backend's on-screen buffer.
	Clear() error

	// Finalize sets up alt screen, raw mode, mouse capture, and cursor
	// visibility on startup.
	Finalize() error

	// Shutdown restores the terminal to its pre-Finalize state.
	Shutdown() error

	// QuitTest lets the backend veto or force a quit for a given Event
	// (e.g. always honouring Ctrl-C even if application code would
	// otherwise consume it).
	QuitTest(e Event) bool
}
