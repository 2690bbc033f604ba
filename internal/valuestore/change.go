package valuestore

// ChangeKind distinguishes the variants of Change described in spec §3.1.
type ChangeKind int

const (
	// ChangeInserted records a list insertion at Index carrying Value.
	ChangeInserted ChangeKind = iota
	// ChangeRemoved records a list removal at Index.
	ChangeRemoved
	// ChangeUpdated records an in-place value mutation with no structural
	// change (spec's "Changed").
	ChangeUpdated
	// ChangeDropped records that the value itself was removed from the
	// store. Always the last change emitted for a given ValueKey.
	ChangeDropped
)

// Change is one structural or value mutation record for a ValueKey.
type Change struct {
	Kind  ChangeKind
	Index int // meaningful only for Inserted/Removed
	Value any // meaningful only for Inserted
}

// Inserted builds an Inserted change (spec: Inserted(index, PendingValue)).
func Inserted(index int, value any) Change {
	return Change{Kind: ChangeInserted, Index: index, Value: value}
}

// Removed builds a Removed change.
func Removed(index int) Change {
	return Change{Kind: ChangeRemoved, Index: index}
}

// Updated builds a plain value-changed change.
func Updated() Change {
	return Change{Kind: ChangeUpdated}
}

// Dropped builds a value-dropped change.
func Dropped() Change {
	return Change{Kind: ChangeDropped}
}

// pendingChange pairs a change with the subscriber set it targets, in the
// order the mutation that produced it was recorded.
type pendingChange struct {
	key        ValueKey
	subs       []Subscriber
	change     Change
}

// ChangeBatch is one drained entry: the subscriber set and the change that
// targets it, preserving insertion order (spec §4.2 ordering guarantees).
type ChangeBatch struct {
	Key        ValueKey
	Subscribers []Subscriber
	Change     Change
}
