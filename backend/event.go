// Package backend defines the contract between the Loom runtime and a
// concrete terminal driver: the Backend/WidgetRenderer interfaces it must
// implement, and the Event surface it produces (spec §6.1, §6.2).
package backend

import "github.com/loomtui/loom/internal/geom"

// EventKind discriminates an Event's payload.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventResize
	EventFocus
	EventBlur
	EventStop
	EventNoop
)

// KeyState discriminates a KeyEvent's press phase.
type KeyState int

const (
	KeyPress KeyState = iota
	KeyRelease
	KeyRepeat
)

// KeyCode is a closed sum of named keys plus Char/F-key variants (spec
// §6.2). Named keys use the Key* constants; Char holds an arbitrary rune
// and FN holds a function-key number.
type KeyCode struct {
	Named KeyName
	Char  rune
	FN    int
}

// KeyName enumerates the non-character keys.
type KeyName int

const (
	KeyNone KeyName = iota
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyChar
	KeyFunction
)

// KeyEvent is a single keypress (spec §6.2).
type KeyEvent struct {
	Code                                  KeyCode
	Ctrl, Shift, Alt, Super, Hyper, Meta  bool
	State                                 KeyState
}

// MouseButton identifies which button a MouseEvent refers to.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// MouseStateKind discriminates a MouseEvent's action.
type MouseStateKind int

const (
	MouseDown MouseStateKind = iota
	MouseUp
	MouseDrag
	MouseMove
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// MouseState is a MouseEvent's action and, for button actions, which
// button.
type MouseState struct {
	Kind   MouseStateKind
	Button MouseButton
}

// MouseEvent is a single mouse action (spec §6.2).
type MouseEvent struct {
	X, Y  int
	State MouseState
}

// Event is the closed sum of inputs the runtime's poll loop consumes (spec
// §6.2).
type Event struct {
	Kind   EventKind
	Key    KeyEvent
	Mouse  MouseEvent
	Resize geom.Size
}

// Key builds an EventKey event.
func Key(k KeyEvent) Event { return Event{Kind: EventKey, Key: k} }

// Mouse builds an EventMouse event.
func Mouse(m MouseEvent) Event { return Event{Kind: EventMouse, Mouse: m} }

// Resize builds an EventResize event.
func Resize(size geom.Size) Event { return Event{Kind: EventResize, Resize: size} }

// Stop builds the normal-termination Event (spec §7 "Stop — normal
// termination signal, not an error").
func Stop() Event { return Event{Kind: EventStop} }
