package valuestore

import (
	"fmt"
	"sync"
)

// Store is the process-wide, single-threaded reactive value store (spec
// §4.2). It is not safe to share across goroutines (spec §5) — the mutex
// below guards against accidental concurrent misuse rather than enabling
// real concurrent access, matching the teacher's Signal[T] which uses the
// same belt-and-braces pattern in pkg/core/signal.go.
type Store struct {
	mu sync.Mutex

	owned     *slab
	nextIdx   uint32
	sharedRef map[SharedKey]*sharedInfo
	nextShare uint32

	subs    map[OwnedKey]map[Subscriber]struct{}
	futures map[string]map[Subscriber]struct{}

	queue []pendingChange
}

type sharedInfo struct {
	owner    OwnedKey
	refcount int
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		owned:     newSlab(),
		sharedRef: make(map[SharedKey]*sharedInfo),
		subs:      make(map[OwnedKey]map[Subscriber]struct{}),
		futures:   make(map[string]map[Subscriber]struct{}),
	}
}

// NewValue creates an OwnedValue holding v, returning its key.
func (s *Store) NewValue(v any, typeInfo string) OwnedKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.owned.insert(&ownedEntry{state: stateOccupied, value: v, typeInfo: typeInfo})
	return OwnedKey(idx)
}

// WithOwned checks out key uniquely, runs f on the current value, and
// returns the (possibly replaced) value to the slot. Panics if the value
// is not currently Occupied (double-checkout or shared access is an
// internal invariant violation per spec §4.2).
func (s *Store) WithOwned(key OwnedKey, f func(v any) any) {
	s.mu.Lock()
	e := s.owned.get(uint32(key))
	if e == nil {
		s.mu.Unlock()
		panic(fmt.Sprintf("valuestore: WithOwned on missing key %v", key))
	}
	if e.state != stateOccupied {
		s.mu.Unlock()
		panic(fmt.Sprintf("valuestore: value %v is already checked out", key))
	}
	e.state = stateUnique
	old := e.value
	s.mu.Unlock()

	// f runs without the lock held, mirroring the teacher's pattern of
	// releasing during user callbacks — exit paths below always restore.
	newVal := f(old)

	s.mu.Lock()
	e.state = stateOccupied
	e.value = newVal
	s.mu.Unlock()
}

// TryMakeShared transitions an owned value to shared, or returns the
// existing shared key if it is already shared. Returns ok=false if the
// value is absent or currently checked out unique.
func (s *Store) TryMakeShared(key OwnedKey) (SharedKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.owned.get(uint32(key))
	if e == nil {
		return 0, false
	}
	if e.state == stateShared {
		return e.sharedKey, true
	}
	if e.state != stateOccupied {
		return 0, false
	}

	sk := SharedKey(s.nextShare)
	s.nextShare++
	s.sharedRef[sk] = &sharedInfo{owner: key, refcount: 1}
	e.state = stateShared
	e.sharedKey = sk
	return sk, true
}

// AcquireShared increments the refcount on an existing shared handle.
func (s *Store) AcquireShared(sk SharedKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info, ok := s.sharedRef[sk]; ok {
		info.refcount++
	}
}

// ReturnShared drops one shared handle; when the last one drops the value
// reverts to Owned.
func (s *Store) ReturnShared(sk SharedKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.sharedRef[sk]
	if !ok {
		return
	}
	info.refcount--
	if info.refcount > 0 {
		return
	}
	delete(s.sharedRef, sk)
	if e := s.owned.get(uint32(info.owner)); e != nil && e.state == stateShared {
		e.state = stateOccupied
	}
}

// SharedValue reads the current value behind a SharedKey without checking
// it out (shared values are read-only to all but the owner transition).
func (s *Store) SharedValue(sk SharedKey) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.sharedRef[sk]
	if !ok {
		return nil, false
	}
	e := s.owned.get(uint32(info.owner))
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// Value reads the current owned value without checking it out. Panics if
// the value is checked out unique (spec: mutation requires unique access;
// reading through the owner key while unique is also an invariant
// violation since the value is logically absent from the slot).
func (s *Store) Value(key OwnedKey) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.owned.get(uint32(key))
	if e == nil {
		return nil, false
	}
	if e.state == stateUnique {
		panic(fmt.Sprintf("valuestore: value %v is checked out", key))
	}
	return e.value, true
}

// DropValue removes both the value and its subscriber set, enqueuing
// Dropped for every subscriber that was registered.
func (s *Store) DropValue(key OwnedKey) {
	s.mu.Lock()
	e := s.owned.remove(uint32(key))
	if e == nil {
		s.mu.Unlock()
		return
	}
	subs := s.subsSnapshotLocked(key)
	delete(s.subs, key)
	if len(subs) > 0 {
		s.queue = append(s.queue, pendingChange{key: Owned(key), subs: subs, change: Dropped()})
	}
	s.mu.Unlock()
}

// Subscribe registers sub against key. Idempotent.
func (s *Store) Subscribe(key OwnedKey, sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.subs[key]
	if !ok {
		set = make(map[Subscriber]struct{})
		s.subs[key] = set
	}
	set[sub] = struct{}{}
}

// Unsubscribe removes sub from key's subscriber set. Idempotent.
func (s *Store) Unsubscribe(key OwnedKey, sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.subs[key]; ok {
		delete(set, sub)
	}
}

func (s *Store) subsSnapshotLocked(key OwnedKey) []Subscriber {
	set := s.subs[key]
	out := make([]Subscriber, 0, len(set))
	for sub := range set {
		out = append(out, sub)
	}
	return out
}

// Changed records a change against key's current subscriber set for later
// draining. DropValue does not go through this method: it queues its
// Dropped change directly.
func (s *Store) Changed(key OwnedKey, change Change) {
	s.mu.Lock()
	subs := s.subsSnapshotLocked(key)
	s.queue = append(s.queue, pendingChange{key: Owned(key), subs: subs, change: change})
	s.mu.Unlock()
}

// RegisterFuture registers sub as waiting for a value at the named path to
// come into existence.
func (s *Store) RegisterFuture(path string, sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.futures[path]
	if !ok {
		set = make(map[Subscriber]struct{})
		s.futures[path] = set
	}
	set[sub] = struct{}{}
}

// ResolveFuture fires whenever a value is inserted at the given path name,
// enqueuing an Updated change for every waiting subscriber and clearing
// the future registration.
func (s *Store) ResolveFuture(path string) {
	s.mu.Lock()
	set, ok := s.futures[path]
	if !ok || len(set) == 0 {
		s.mu.Unlock()
		return
	}
	subs := make([]Subscriber, 0, len(set))
	for sub := range set {
		subs = append(subs, sub)
	}
	delete(s.futures, path)
	s.queue = append(s.queue, pendingChange{subs: subs, change: Updated()})
	s.mu.Unlock()
}

// DrainChanges returns and clears all changes recorded since the last
// drain, in the order they were recorded.
func (s *Store) DrainChanges() []ChangeBatch {
	s.mu.Lock()
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	out := make([]ChangeBatch, 0, len(pending))
	for _, p := range pending {
		out = append(out, ChangeBatch{Key: p.key, Subscribers: p.subs, Change: p.change})
	}
	return out
}
