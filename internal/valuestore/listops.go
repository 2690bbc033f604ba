package valuestore

// List-mutation helpers used by application/component state to drive a
// `for` loop's generator-driven expansion (spec §4.6, testable property 7:
// "issuing push_front(v1); push_back(v2); remove(1) against a list bound to
// a for"). Grounded on anathema-state's Value<List<T>> push_back/
// push_front/remove/pop_front/pop_back, which each perform the mutation
// then enqueue exactly one Change::Inserted/Removed carrying the affected
// index — ports of that pattern onto this store's WithOwned/Changed pair.
//
// field selects which map key inside the owned value (expected to be a
// map[string]any, matching component state) holds the list; pass "" when
// the owned value is itself the list ([]any) rather than a field within a
// larger map.

func listAt(v any, field string) ([]any, func([]any) any) {
	if field == "" {
		list, _ := v.([]any)
		return list, func(l []any) any { return l }
	}
	m, _ := v.(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	list, _ := m[field].([]any)
	return list, func(l []any) any {
		m[field] = l
		return m
	}
}

// PushBack appends value to the end of the list at key/field, enqueuing an
// Inserted change at the new last index.
func (s *Store) PushBack(key OwnedKey, field string, value any) {
	idx := -1
	s.WithOwned(key, func(v any) any {
		list, set := listAt(v, field)
		idx = len(list)
		list = append(list, value)
		return set(list)
	})
	s.Changed(key, Inserted(idx, value))
}

// PushFront prepends value to the list at key/field, enqueuing an Inserted
// change at index 0.
func (s *Store) PushFront(key OwnedKey, field string, value any) {
	s.WithOwned(key, func(v any) any {
		list, set := listAt(v, field)
		list = append([]any{value}, list...)
		return set(list)
	})
	s.Changed(key, Inserted(0, value))
}

// RemoveAt removes the element at index from the list at key/field,
// enqueuing a Removed change at that index. Out-of-range indices are a
// no-op and enqueue nothing.
func (s *Store) RemoveAt(key OwnedKey, field string, index int) {
	removed := false
	s.WithOwned(key, func(v any) any {
		list, set := listAt(v, field)
		if index < 0 || index >= len(list) {
			return v
		}
		removed = true
		list = append(list[:index:index], list[index+1:]...)
		return set(list)
	})
	if removed {
		s.Changed(key, Removed(index))
	}
}

// PopFront removes the first element of the list at
// key/field, enqueuing a Removed change at index 0.
func (s *Store) PopFront(key OwnedKey, field string) {
	s.RemoveAt(key, field, 0)
}

// PopBack removes the last element of the list at key/field, enqueuing a
// Removed change at its (pre-removal) last index.
func (s *Store) PopBack(key OwnedKey, field string) {
	idx := -1
	s.WithOwned(key, func(v any) any {
		list, set := listAt(v, field)
		if len(list) == 0 {
			return v
		}
		idx = len(list) - 1
		list = list[:idx:idx]
		return set(list)
	})
	if idx >= 0 {
		s.Changed(key, Removed(idx))
	}
}
