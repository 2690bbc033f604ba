package scope

import "github.com/loomtui/loom/internal/valuestore"

// Globals holds file-scope `let` bindings carried over from compilation
// (internal/compile.Globals), available as the expression resolver's
// last-resort lookup (spec §4.3 step 3: "on miss, look in globals").
type Globals map[string]any

// Context bundles everything the expression resolver needs to resolve an
// Expression at a tree position: the current Scope, the value store
// holding states/attributes, the compiled Globals, and the Subscriber
// that any dependency read during resolution should subscribe (spec
// §4.4 "Context object").
type Context struct {
	Scope      *Scope
	Store      *valuestore.Store
	Globals    Globals
	Subscriber valuestore.Subscriber
}

// NewContext builds a Context for resolving expressions on behalf of
// subscriber, with a fresh empty Scope.
func NewContext(store *valuestore.Store, globals Globals, subscriber valuestore.Subscriber) *Context {
	return &Context{Scope: New(), Store: store, Globals: globals, Subscriber: subscriber}
}
