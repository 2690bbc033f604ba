package observability

import (
	"log"
	"sync"
	"time"
)

// ConsoleReporter logs errors to stderr. Meant for development; verbose
// mode also prints the captured stack trace.
type ConsoleReporter struct {
	verbose bool
	mu      sync.Mutex
}

// NewConsoleReporter returns a reporter that logs to stderr.
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{verbose: verbose}
}

func (r *ConsoleReporter) ReportError(err error, ctx *ErrorContext) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.Printf("[ERROR] %s (%s): %v", ctx.Kind, ctx.Stage, err)
	if r.verbose && len(ctx.StackTrace) > 0 {
		log.Printf("Stack trace:\n%s", ctx.StackTrace)
	}
}

// Flush is a no-op; console output is immediate.
func (r *ConsoleReporter) Flush(timeout time.Duration) error {
	return nil
}
