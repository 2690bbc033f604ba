package widget

import "fmt"

// Constructor builds the opaque widget object for an Element node. What it
// returns is consumed by the layout/paint pipeline via the Widget contract
// that pipeline defines (spec §4.7) — this package only wires idents to
// instances.
type Constructor func() any

var reservedIdents = map[string]bool{
	"if": true, "for": true, "else": true, "component": true,
}

// Factory maps widget ident strings to Constructors (spec §4.5 "The widget
// registry (Factory) maps widget ident strings to constructors").
type Factory struct {
	ctors map[string]Constructor
}

// NewFactory returns an empty Factory.
func NewFactory() *Factory {
	return &Factory{ctors: map[string]Constructor{}}
}

// Register associates ident with ctor. Duplicate registration replaces the
// earlier factory. Registering a reserved ident is an error.
func (f *Factory) Register(ident string, ctor Constructor) error {
	if reservedIdents[ident] {
		return fmt.Errorf("widget: %q is a reserved ident and cannot be registered", ident)
	}
	f.ctors[ident] = ctor
	return nil
}

// Build constructs a new widget object for ident, or nil if no Constructor
// is registered for it.
func (f *Factory) Build(ident string) any {
	ctor, ok := f.ctors[ident]
	if !ok {
		return nil
	}
	return ctor()
}
