//go:build windows

package tui

// watchResize is a no-op on platforms with no SIGWINCH equivalent; Size()
// is still re-measured every tick by internal/runtime.Runtime.Tick.
func (b *Backend) watchResize() {
	<-b.done
}
