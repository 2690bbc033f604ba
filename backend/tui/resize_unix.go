//go:build !windows

package tui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/loomtui/loom/internal/geom"
)

// watchResize emits a backend.Resize event on every SIGWINCH until done is
// closed. Terminal resize never arrives as an input byte (unlike key/mouse
// events), so it has no place in decode.go's stream parser.
func (b *Backend) watchResize() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)
	defer signal.Stop(sig)

	for {
		select {
		case <-sig:
			w, h := b.readSize()
			b.width, b.height = w, h
			b.emit(resizeEvent(geom.Size{Width: uint16(w), Height: uint16(h)}))
		case <-b.done:
			return
		}
	}
}
