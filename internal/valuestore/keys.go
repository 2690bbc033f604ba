// Package valuestore implements the reactive value store: owned/shared
// value storage with per-value subscriber sets, a change queue, and
// future-value subscriptions for paths that do not yet exist.
package valuestore

import "fmt"

// OwnedKey identifies a value authoritatively owned by the store.
type OwnedKey uint32

// SharedKey identifies a reference-counted shared view of an owned value.
type SharedKey uint32

// ValueKey is either an OwnedKey or a SharedKey; both resolve to the same
// underlying storage slot.
type ValueKey struct {
	owned  OwnedKey
	shared SharedKey
	isOwn  bool
}

// Owned wraps an OwnedKey as a ValueKey.
func Owned(k OwnedKey) ValueKey { return ValueKey{owned: k, isOwn: true} }

// Shared wraps a SharedKey as a ValueKey.
func Shared(k SharedKey) ValueKey { return ValueKey{shared: k, isOwn: false} }

func (k ValueKey) String() string {
	if k.isOwn {
		return fmt.Sprintf("owned:%d", k.owned)
	}
	return fmt.Sprintf("shared:%d", k.shared)
}

// Subscriber is an opaque identifier registered against a ValueKey to be
// notified on change. In practice this is a widget or attribute id.
type Subscriber string
