// Package widget implements the flat, generation-tagged arena that holds
// live widget instances plus the layout-index tree over them, and turns
// compiled ast.Blueprint nodes into those instances (spec §3.3, §4.5).
package widget

import "fmt"

// Id is a generation-tagged handle into the Arena. A stale Id (whose slot
// was removed and its index reused) fails the generation check on lookup
// rather than silently resolving to the wrong widget (spec §3.3, §7
// "Cyclic references... a stale WidgetId... fails generation check").
type Id struct {
	Index      uint32
	Generation uint32
}

func (id Id) String() string { return fmt.Sprintf("#%d.%d", id.Index, id.Generation) }

// Zero reports whether id is the unset zero value.
func (id Id) Zero() bool { return id == Id{} }

// ParseID reverses Id.String(), recovering the Id a Subscriber string was
// minted from (spec §4.3: attributes subscribe to values under their own
// widget's Id, so the runtime needs to map a drained Subscriber back to
// the widget whose attributes must be re-resolved).
func ParseID(s string) (Id, bool) {
	var idx, gen uint32
	if _, err := fmt.Sscanf(s, "#%d.%d", &idx, &gen); err != nil {
		return Id{}, false
	}
	return Id{Index: idx, Generation: gen}, true
}
