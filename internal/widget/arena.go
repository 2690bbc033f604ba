package widget

// slot is one arena entry: a generation counter plus the live Container,
// or an empty slot on the free list.
type slot struct {
	generation uint32
	occupied   bool
	container  Container
}

// Arena is the flat, generation-tagged slab of live widget instances
// (spec §3.3 WidgetTree.values). Its layout-index tree is represented
// implicitly: each Container carries its own Children []Id, so the arena
// itself only needs to store and fetch by Id. A side map of child->parent
// links is maintained alongside (kept current only through SetChildren, not
// direct mutation of a fetched Container's Children field) so the layout
// pipeline can bubble a cache invalidation up to the root (spec §4.7).
type Arena struct {
	slots  []slot
	free   []uint32
	root   Id
	parent map[Id]Id
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{parent: map[Id]Id{}}
}

// Insert allocates a new Id for container and stores it.
func (a *Arena) Insert(container Container) Id {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.occupied = true
		s.container = container
		return Id{Index: idx, Generation: s.generation}
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot{generation: 1, occupied: true, container: container})
	return Id{Index: idx, Generation: 1}
}

// Get returns the container for id, failing the generation check for a
// stale Id (spec §3.3, §7).
func (a *Arena) Get(id Id) (*Container, bool) {
	if int(id.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[id.Index]
	if !s.occupied || s.generation != id.Generation {
		return nil, false
	}
	return &s.container, true
}

// Remove drops id's container, bumping its generation so any outstanding
// stale Id can never resolve again.
func (a *Arena) Remove(id Id) {
	if int(id.Index) >= len(a.slots) {
		return
	}
	s := &a.slots[id.Index]
	if !s.occupied || s.generation != id.Generation {
		return
	}
	s.occupied = false
	s.container = Container{}
	s.generation++
	a.free = append(a.free, id.Index)
	delete(a.parent, id)
}

// RemoveSubtree removes id and every descendant reachable through
// Children, depth-first.
func (a *Arena) RemoveSubtree(id Id) {
	c, ok := a.Get(id)
	if !ok {
		return
	}
	children := append([]Id(nil), c.Children...)
	for _, child := range children {
		a.RemoveSubtree(child)
	}
	a.Remove(id)
}

// SetRoot records the tree's root Id.
func (a *Arena) SetRoot(id Id) { a.root = id }

// Root returns the tree's root Id.
func (a *Arena) Root() Id { return a.root }

// SetChildren assigns id's Children and records each child's parent link,
// so the arena's parent index stays in sync. Callers building or
// re-evaluating the tree should use this instead of mutating a fetched
// Container's Children field directly.
func (a *Arena) SetChildren(id Id, children []Id) {
	c, ok := a.Get(id)
	if !ok {
		return
	}
	c.Children = children
	for _, child := range children {
		a.parent[child] = id
	}
}

// Parent returns id's parent, or ok=false if id is the root or unknown.
func (a *Arena) Parent(id Id) (Id, bool) {
	p, ok := a.parent[id]
	return p, ok
}

// AncestorChain returns id's ancestors from nearest parent up to (and
// including) the root, in that order.
func (a *Arena) AncestorChain(id Id) []Id {
	var out []Id
	cur := id
	for {
		p, ok := a.parent[cur]
		if !ok {
			return out
		}
		out = append(out, p)
		cur = p
	}
}

// Len reports the number of live (occupied) containers.
func (a *Arena) Len() int {
	n := 0
	for _, s := range a.slots {
		if s.occupied {
			n++
		}
	}
	return n
}

// Walk visits id and every descendant, depth-first pre-order, stopping
// early if visit returns false.
func (a *Arena) Walk(id Id, visit func(Id, *Container) bool) {
	c, ok := a.Get(id)
	if !ok {
		return
	}
	if !visit(id, c) {
		return
	}
	for _, child := range c.Children {
		a.Walk(child, visit)
	}
}
