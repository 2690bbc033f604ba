// Package scope implements the LIFO frame stack expression resolution
// walks against: component state, component attributes, loop bindings,
// and file-scope globals (spec §4.4).
package scope

import (
	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/valuestore"
)

// StateId identifies the owned value holding a component's state map.
type StateId valuestore.OwnedKey

// AttributesId identifies a component's resolved-attribute handle.
type AttributesId valuestore.OwnedKey

// Binding is one loop variable bound within a frame: either a concrete
// already-resolved expression (literal list iteration) or a reactive
// collection element looked up lazily by index at resolve time.
type Binding struct {
	Expr  ast.Expression
	Index int
}

// Frame is one scope level, matching the "may carry" list in spec §4.4.
// Every field is optional; a frame pushed solely to add a loop binding
// leaves State/Attributes at their zero value.
type Frame struct {
	State      StateId
	HasState   bool
	Attributes AttributesId
	HasAttrs   bool
	Bindings   map[string]Binding
}

// Scope is the LIFO stack of Frames live at a tree position during eval,
// layout, or expression resolution. Not safe for concurrent use — a Scope
// is owned by a single traversal, matching the single-threaded-by-contract
// discipline used throughout the runtime (see DESIGN.md).
type Scope struct {
	frames []Frame
}

// New returns an empty Scope.
func New() *Scope {
	return &Scope{}
}

// PushState opens a new frame carrying a component's state id.
func (s *Scope) PushState(id StateId) {
	s.frames = append(s.frames, Frame{State: id, HasState: true})
}

// PushAttributes opens a new frame carrying a component's attribute
// handle.
func (s *Scope) PushAttributes(id AttributesId) {
	s.frames = append(s.frames, Frame{Attributes: id, HasAttrs: true})
}

// PushBinding opens a new frame binding name to a loop value.
func (s *Scope) PushBinding(name string, b Binding) {
	s.frames = append(s.frames, Frame{Bindings: map[string]Binding{name: b}})
}

// Pop removes the top frame. Calling Pop on an empty Scope is a program
// error and panics, mirroring the checkout discipline in
// internal/valuestore — scope push/pop must always be balanced by the
// caller.
func (s *Scope) Pop() {
	if len(s.frames) == 0 {
		panic("scope: Pop on empty scope")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Len reports the current stack depth, useful for asserting balanced
// push/pop pairs around a traversal.
func (s *Scope) Len() int { return len(s.frames) }

// Snapshot copies the current frame stack so it can be replayed later
// (spec §4.10: re-resolving a widget's attributes after a store change
// needs the same binding chain that was live when it was first evaluated,
// but the live Scope has long since popped back past that point).
func (s *Scope) Snapshot() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// FromFrames rebuilds a Scope from a snapshot taken by Snapshot.
func FromFrames(frames []Frame) *Scope {
	return &Scope{frames: append([]Frame(nil), frames...)}
}

// LookupBinding walks the frame stack top-down for a loop binding named
// name, returning the first hit (spec §4.3 lookup rule step 3).
func (s *Scope) LookupBinding(name string) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].Bindings[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// CurrentState returns the nearest enclosing component's StateId, walking
// top-down (spec: "state" resolves to "a handle to the current
// component's state").
func (s *Scope) CurrentState() (StateId, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].HasState {
			return s.frames[i].State, true
		}
	}
	return 0, false
}

// CurrentAttributes returns the nearest enclosing component's attribute
// handle.
func (s *Scope) CurrentAttributes() (AttributesId, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].HasAttrs {
			return s.frames[i].Attributes, true
		}
	}
	return 0, false
}
