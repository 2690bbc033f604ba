package valuestore

// entryState is the tri-state an owned slot can be in. Grounded on
// anathema-store/src/store/owned.rs's OwnedEntry<T>: a value is either
// Occupied, checked out Unique (mutable), or Shared behind a SharedKey —
// never more than one of these at once.
type entryState int

const (
	stateOccupied entryState = iota
	stateUnique
	stateShared
)

type ownedEntry struct {
	state     entryState
	value     any
	typeInfo  string
	sharedKey SharedKey
}

// slab is a generation-free dense slot storage keyed by a monotonically
// issued index. Removed slots are tracked separately for reuse; reuse is
// not generation-tagged here because OwnedKey/SharedKey identity is never
// compared across removal boundaries by the store's own contract (the
// widget arena, not the value store, is what needs generation tags — see
// internal/widget/arena.go).
type slab struct {
	entries []*ownedEntry
	free    []uint32
}

func newSlab() *slab {
	return &slab{}
}

func (s *slab) insert(e *ownedEntry) uint32 {
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		s.entries[idx] = e
		return idx
	}
	s.entries = append(s.entries, e)
	return uint32(len(s.entries) - 1)
}

func (s *slab) get(idx uint32) *ownedEntry {
	if int(idx) >= len(s.entries) {
		return nil
	}
	return s.entries[idx]
}

func (s *slab) remove(idx uint32) *ownedEntry {
	e := s.get(idx)
	if e == nil {
		return nil
	}
	s.entries[idx] = nil
	s.free = append(s.free, idx)
	return e
}
