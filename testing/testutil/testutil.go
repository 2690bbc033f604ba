// Package testutil re-exports the full testing.Harness surface — a
// compiled template driven against an in-memory backend, plus golden-file
// snapshot matching — under a single shorter import path.
//
// It used to alias github.com/loomtui/loom/pkg/bubbly/testutil, a tester
// and mock library built entirely around that package's Component/
// composable/router model (MockComponent, MockRouter, UseStateTester, and
// so on). Loom has no components, composables, or router — a template
// compiles straight to a widget tree — so none of that surface transfers.
// What survives is the one domain-agnostic piece, golden-file snapshot
// comparison, now backed by testing/harness.SnapshotManager.
//
// # Example
//
//	import "github.com/loomtui/loom/testing/testutil"
//
//	func TestGreeting(t *testing.T) {
//	    h, err := testutil.New("text 'hello'\n", 20, 3)
//	    require.NoError(t, err)
//	    h.Tick()
//	    h.MatchSnapshot(t, "testdata")
//	}
package testutil

import (
	"github.com/loomtui/loom/testing/harness"
)

// Harness compiles a template and drives it one tick at a time against an
// in-memory FakeBackend.
type Harness = harness.Harness

// New compiles source with the default widget registry and wires a
// Harness around it, sized w by h.
func New(source string, w, h int) (*Harness, error) {
	return harness.New(source, w, h)
}

// FakeBackend is an in-memory backend.Backend for driving a Harness (or a
// runtime.Runtime directly) without a real terminal.
type FakeBackend = harness.FakeBackend

// NewFakeBackend returns a FakeBackend reporting the given viewport size.
var NewFakeBackend = harness.NewFakeBackend

// SnapshotManager compares rendered text against golden ".snap" files on
// disk, creating them on first run.
type SnapshotManager = harness.SnapshotManager

// NewSnapshotManager stores snapshots under testDir/__snapshots__. When
// update is true, a mismatch overwrites the golden file instead of
// failing the test.
var NewSnapshotManager = harness.NewSnapshotManager
