package tui

import "io"

// config holds a Backend's construction-time options (spec §6.1; pattern
// grounded on the teacher's runner_options.go functional-options style).
type config struct {
	in     io.Reader
	out    io.Writer
	mouse  bool
}

// Option configures a Backend built by New.
type Option func(*config)

// WithInput overrides the backend's input source. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(c *config) { c.in = r }
}

// WithOutput overrides the backend's output destination. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithMouse enables SGR mouse reporting (button, drag, and scroll events)
// for the lifetime of the backend.
func WithMouse() Option {
	return func(c *config) { c.mouse = true }
}
