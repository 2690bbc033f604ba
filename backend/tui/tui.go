// Package tui implements backend.Backend against a real terminal: raw mode
// and the alternate screen via charmbracelet/x/term, cancellable stdin
// reads via muesli/cancelreader, ANSI/SGR mouse-and-key decoding (decode.go,
// grounded on original_source/anathema-ssh/src/eventmapper.rs's Event
// mapping), and diff rendering through lipgloss (encode.go).
//
// Unlike the teacher's bubbletea-based Runner, which owns its own
// push-driven event loop (tea.Program.Update), Loom's runtime pulls one
// event at a time via NextEvent(timeout) (spec §4.10, §6.1); this package
// exists because bubbletea's Program type cannot be driven that way.
package tui

import (
	"io"
	"os"
	"time"

	xterm "github.com/charmbracelet/x/term"
	"github.com/muesli/cancelreader"

	"github.com/loomtui/loom/backend"
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/paint"
)

// escFlushDelay bounds how long a lone trailing ESC byte waits for a
// following CSI/SS3 byte before being flushed as a standalone Escape key
// (spec §6.2; xterm itself has no authoritative signal to disambiguate the
// two, so every terminal library resolves it with a short timeout).
const escFlushDelay = 30 * time.Millisecond

// Backend drives a real terminal as a backend.Backend.
type Backend struct {
	cfg config

	cr      cancelreader.CancelReader
	state   *xterm.State
	stdinFD int
	haveFD  bool

	width, height int

	dec    decoder
	events chan backend.Event
	done   chan struct{}
}

// New builds a Backend over os.Stdin/os.Stdout unless overridden by opts.
// Finalize must be called before first use.
func New(opts ...Option) *Backend {
	cfg := config{in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Backend{
		cfg:    cfg,
		events: make(chan backend.Event, 64),
		done:   make(chan struct{}),
	}
}

// Finalize enters raw mode and the alternate screen, hides the cursor,
// optionally enables mouse reporting, and starts the background input
// reader (spec §6.1 Finalize).
func (b *Backend) Finalize() error {
	if f, ok := b.cfg.in.(*os.File); ok {
		fd := int(f.Fd())
		if xterm.IsTerminal(fd) {
			state, err := xterm.MakeRaw(fd)
			if err != nil {
				return err
			}
			b.state, b.stdinFD, b.haveFD = state, fd, true
		}
	}

	cr, err := cancelreader.NewReader(b.cfg.in)
	if err != nil {
		return err
	}
	b.cr = cr

	seq := seqEnterAltScreen + seqHideCursor
	if b.cfg.mouse {
		seq += seqEnableMouse
	}
	if _, err := io.WriteString(b.cfg.out, seq); err != nil {
		return err
	}

	b.width, b.height = b.readSize()

	chunks := make(chan []byte)
	go b.pump(chunks)
	go b.readLoop(chunks)
	go b.watchResize()
	return nil
}

func resizeEvent(size geom.Size) backend.Event { return backend.Resize(size) }

// Shutdown restores the terminal to its pre-Finalize state (spec §6.1
// Shutdown). It is safe to call even if Finalize partially failed.
func (b *Backend) Shutdown() error {
	close(b.done)
	if b.cr != nil {
		b.cr.Cancel()
		b.cr.Close()
	}

	seq := seqShowCursor + seqExitAltScreen
	if b.cfg.mouse {
		seq = seqDisableMouse + seq
	}
	_, writeErr := io.WriteString(b.cfg.out, seq)

	if b.haveFD {
		if err := xterm.Restore(b.stdinFD, b.state); err != nil {
			return err
		}
	}
	return writeErr
}

// Size returns the current viewport size, re-measuring the terminal when
// possible and otherwise returning the size observed at Finalize/the last
// EventResize.
func (b *Backend) Size() geom.Size {
	if w, h := b.readSize(); w > 0 || h > 0 {
		b.width, b.height = w, h
	}
	return geom.Size{Width: uint16(b.width), Height: uint16(b.height)}
}

func (b *Backend) readSize() (int, int) {
	f, ok := b.cfg.out.(*os.File)
	if !ok {
		return b.width, b.height
	}
	w, h, err := xterm.GetSize(int(f.Fd()))
	if err != nil {
		return b.width, b.height
	}
	return w, h
}

// Render flushes changes as a single write (spec §6.1 Render).
func (b *Backend) Render(changes []paint.Change) error {
	if len(changes) == 0 {
		return nil
	}
	_, err := io.WriteString(b.cfg.out, encodeChanges(changes))
	return err
}

// Clear erases the on-screen buffer (spec §6.1 Clear).
func (b *Backend) Clear() error {
	_, err := io.WriteString(b.cfg.out, seqClearScreen)
	return err
}

// QuitTest always honours Ctrl-C and the Stop event, regardless of
// whatever an application's own OnEvent handler would otherwise do (spec
// §6.1 QuitTest).
func (b *Backend) QuitTest(e backend.Event) bool {
	if e.Kind == backend.EventStop {
		return true
	}
	return e.Kind == backend.EventKey && e.Key.Ctrl &&
		e.Key.Code.Named == backend.KeyChar && e.Key.Code.Char == 'c'
}

// NextEvent waits up to timeout for the next decoded input Event (spec
// §6.1 NextEvent).
func (b *Backend) NextEvent(timeout time.Duration) (backend.Event, bool) {
	select {
	case e := <-b.events:
		return e, true
	case <-time.After(timeout):
		return backend.Event{}, false
	}
}

func (b *Backend) emit(e backend.Event) {
	select {
	case b.events <- e:
	case <-b.done:
	}
}

// pump copies raw bytes off cr into chunks until Shutdown cancels the
// reader or the underlying stream ends.
func (b *Backend) pump(chunks chan<- []byte) {
	defer close(chunks)
	buf := make([]byte, 4096)
	for {
		n, err := b.cr.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			select {
			case chunks <- cp:
			case <-b.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// readLoop owns the decoder exclusively (no other goroutine touches it),
// feeding it chunks from pump and flushing a lone pending ESC after
// escFlushDelay of silence.
func (b *Backend) readLoop(chunks <-chan []byte) {
	var timerC <-chan time.Time
	for {
		select {
		case data, ok := <-chunks:
			if !ok {
				b.emit(backend.Stop())
				return
			}
			for _, ev := range b.dec.Feed(data) {
				b.emit(ev)
			}
			if b.dec.hasPendingEscape() {
				timerC = time.After(escFlushDelay)
			} else {
				timerC = nil
			}
		case <-timerC:
			if ev, ok := b.dec.FlushPending(); ok {
				b.emit(ev)
			}
			timerC = nil
		case <-b.done:
			return
		}
	}
}
