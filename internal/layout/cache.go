package layout

import (
	"github.com/loomtui/loom/internal/geom"
	"github.com/loomtui/loom/internal/widget"
)

// cacheHit reports whether c's cached size can be reused for constraints
// without recursing into layout again (spec §4.7 "if constraints equal and
// valid, returns the cached size without recursion").
func cacheHit(c *widget.Container, constraints geom.Constraints, w Widget) bool {
	if !c.Cache.Valid || !c.Cache.HasSize {
		return false
	}
	if c.Cache.Constraints != constraints {
		return false
	}
	return !w.NeedsReflow()
}

// storeCache records size as the memoised layout result for constraints.
func storeCache(c *widget.Container, constraints geom.Constraints, size geom.Size) (changed bool) {
	changed = !c.Cache.HasSize || c.Cache.Size != size
	c.Cache = Cache{Size: size, Constraints: constraints, HasSize: true, Valid: true}
	return changed
}

// Cache mirrors widget.Cache; kept as a local alias so callers in this
// package read naturally as layout.Cache while the arena still owns the
// canonical widget.Cache field.
type Cache = widget.Cache

// invalidate marks id's own cache stale so the next layout pass recomputes
// it. It does not touch ancestors; Pipeline.Invalidate calls it along the
// ancestor chain for the bubble-up (spec §4.7).
func invalidate(arena *widget.Arena, id widget.Id) {
	c, ok := arena.Get(id)
	if !ok {
		return
	}
	c.Cache.Valid = false
}
