package tui

import (
	"unicode/utf8"

	"github.com/loomtui/loom/backend"
)

// decoder turns a stream of raw input bytes into backend.Events. It buffers
// across reads so an escape sequence split by the kernel's read boundaries
// still decodes correctly (spec §6.2's Event surface mirrors
// original_source/anathema-ssh/src/eventmapper.rs's KeyCode/MouseEvent
// mapping; the escape-sequence recognition itself follows the xterm/VT100
// conventions bubbletea's own input reader implements against the same
// terminfo).
type decoder struct {
	buf []byte
}

// maxSeqLen bounds how many bytes an unterminated CSI sequence may buffer
// before it is given up on and flushed byte-by-byte, so a corrupt or
// unsupported sequence can never stall the decoder forever.
const maxSeqLen = 32

// Feed appends data and decodes as many complete events as are available,
// leaving any trailing incomplete sequence buffered for the next call.
func (d *decoder) Feed(data []byte) []backend.Event {
	d.buf = append(d.buf, data...)

	var events []backend.Event
	for len(d.buf) > 0 {
		n, ev, ok := decodeOne(d.buf)
		if n == 0 {
			break
		}
		d.buf = d.buf[n:]
		if ok {
			events = append(events, ev)
		}
	}
	return events
}

// hasPendingEscape reports whether buf holds nothing but a lone,
// not-yet-disambiguated ESC byte.
func (d *decoder) hasPendingEscape() bool {
	return len(d.buf) == 1 && d.buf[0] == 0x1b
}

// FlushPending force-decodes a lone buffered ESC as KeyEscape. The read
// loop calls this after a short idle timeout so a real Escape keypress
// (which arrives as a single 0x1b byte) isn't held forever waiting to see
// whether a CSI sequence follows it.
func (d *decoder) FlushPending() (backend.Event, bool) {
	if len(d.buf) != 1 || d.buf[0] != 0x1b {
		return backend.Event{}, false
	}
	d.buf = nil
	return keyEvent(backend.KeyCode{Named: backend.KeyEscape}, 0), true
}

// decodeOne decodes the single event at the front of buf, returning the
// number of bytes consumed. consumed==0 means buf holds an incomplete
// sequence; the caller should wait for more data.
func decodeOne(buf []byte) (consumed int, ev backend.Event, ok bool) {
	b := buf[0]

	switch {
	case b == 0x1b:
		return decodeEscape(buf)
	case b == 0x09:
		return 1, keyEvent(backend.KeyCode{Named: backend.KeyTab}, 0), true
	case b == 0x0d || b == 0x0a:
		return 1, keyEvent(backend.KeyCode{Named: backend.KeyEnter}, 0), true
	case b == 0x7f || b == 0x08:
		return 1, keyEvent(backend.KeyCode{Named: backend.KeyBackspace}, 0), true
	case b >= 0x01 && b <= 0x1a:
		// Ctrl+<letter>: 0x01 is Ctrl-A, ... 0x1a is Ctrl-Z.
		ch := rune('a' + b - 1)
		e := keyEvent(backend.KeyCode{Named: backend.KeyChar, Char: ch}, 0)
		e.Key.Ctrl = true
		return 1, e, true
	default:
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size <= 1 {
			if len(buf) < utf8.UTFMax {
				return 0, backend.Event{}, false
			}
			return 1, backend.Event{}, false
		}
		return size, keyEvent(backend.KeyCode{Named: backend.KeyChar, Char: r}, 0), true
	}
}

func decodeEscape(buf []byte) (int, backend.Event, bool) {
	if len(buf) < 2 {
		return 0, backend.Event{}, false
	}
	switch buf[1] {
	case '[':
		return decodeCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return 0, backend.Event{}, false
		}
		if fn, ok := ss3Keys[buf[2]]; ok {
			return 3, keyEvent(backend.KeyCode{Named: backend.KeyFunction}, fn), true
		}
		return 3, backend.Event{}, false
	default:
		// A lone ESC followed by an unrelated byte: treat the ESC as its
		// own Escape key and let the next byte decode independently.
		return 1, keyEvent(backend.KeyCode{Named: backend.KeyEscape}, 0), true
	}
}

var ss3Keys = map[byte]int{
	'P': 1, 'Q': 2, 'R': 3, 'S': 4,
}

// csiFinal maps a parameterless CSI final byte directly to a KeyName.
var csiFinal = map[byte]backend.KeyName{
	'A': backend.KeyUp,
	'B': backend.KeyDown,
	'C': backend.KeyRight,
	'D': backend.KeyLeft,
	'H': backend.KeyHome,
	'F': backend.KeyEnd,
	'Z': backend.KeyBackTab,
}

// csiTilde maps the numeric parameter of a '~'-terminated CSI sequence
// (e.g. "\x1b[3~") to a KeyName.
// Code 2 (Insert) has no corresponding KeyName and is intentionally
// absent: decodeCSI falls through and drops it.
var csiTilde = map[int]backend.KeyName{
	1: backend.KeyHome, 7: backend.KeyHome,
	3: backend.KeyDelete,
	4: backend.KeyEnd, 8: backend.KeyEnd,
	5: backend.KeyPageUp,
	6: backend.KeyPageDown,
}

func decodeCSI(buf []byte) (int, backend.Event, bool) {
	if len(buf) < 3 {
		return 0, backend.Event{}, false
	}
	if buf[2] == '<' {
		return decodeMouse(buf)
	}

	i := 2
	for i < len(buf) && i < maxSeqLen {
		if isCSIFinal(buf[i]) {
			break
		}
		i++
	}
	if i >= len(buf) {
		return 0, backend.Event{}, false
	}
	if i >= maxSeqLen {
		return 2, backend.Event{}, false
	}

	params := string(buf[2:i])
	final := buf[i]
	consumed := i + 1

	_, mod := splitParams(params)
	ctrl, shift, alt, meta := modifiersFromCode(mod)

	if final == '~' {
		num, _ := splitParams(params)
		if named, ok := csiTilde[num]; ok {
			e := keyEvent(backend.KeyCode{Named: named}, 0)
			applyMods(&e, ctrl, shift, alt, meta)
			return consumed, e, true
		}
		if fn, ok := functionKeyTilde[num]; ok {
			e := keyEvent(backend.KeyCode{Named: backend.KeyFunction, FN: fn}, 0)
			applyMods(&e, ctrl, shift, alt, meta)
			return consumed, e, true
		}
		return consumed, backend.Event{}, false
	}

	if named, ok := csiFinal[final]; ok {
		e := keyEvent(backend.KeyCode{Named: named}, 0)
		applyMods(&e, ctrl, shift, alt, meta)
		return consumed, e, true
	}
	return consumed, backend.Event{}, false
}

// functionKeyTilde maps '~'-terminated numeric codes to an F-key number.
var functionKeyTilde = map[int]int{
	11: 1, 12: 2, 13: 3, 14: 4, 15: 5,
	17: 6, 18: 7, 19: 8, 20: 9, 21: 10,
	23: 11, 24: 12,
}

func isCSIFinal(b byte) bool {
	return (b >= 0x40 && b <= 0x7e)
}

// splitParams parses a CSI parameter string of the form "N" or "N;M",
// returning the leading numeric parameter and the modifier code (M), each
// defaulting to 0 when absent.
func splitParams(params string) (int, int) {
	if params == "" {
		return 0, 0
	}
	first, second := params, ""
	for i := 0; i < len(params); i++ {
		if params[i] == ';' {
			first, second = params[:i], params[i+1:]
			break
		}
	}
	return atoiOr(first, 0), atoiOr(second, 0)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return def
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// modifiersFromCode decodes xterm's modifyOtherKeys modifier parameter
// (1=none, then bit0=shift bit1=alt bit2=ctrl bit3=meta over code-1).
func modifiersFromCode(code int) (ctrl, shift, alt, meta bool) {
	if code < 1 {
		return false, false, false, false
	}
	bits := code - 1
	return bits&4 != 0, bits&1 != 0, bits&2 != 0, bits&8 != 0
}

func applyMods(e *backend.Event, ctrl, shift, alt, meta bool) {
	e.Key.Ctrl, e.Key.Shift, e.Key.Alt, e.Key.Meta = ctrl, shift, alt, meta
}

// decodeMouse parses an SGR mouse report: "\x1b[<Cb;Cx;CyM" (press/motion)
// or "...m" (release).
func decodeMouse(buf []byte) (int, backend.Event, bool) {
	i := 3
	for i < len(buf) && i < maxSeqLen {
		if buf[i] == 'M' || buf[i] == 'm' {
			break
		}
		i++
	}
	if i >= len(buf) {
		return 0, backend.Event{}, false
	}
	if i >= maxSeqLen {
		return 3, backend.Event{}, false
	}

	body := string(buf[3:i])
	release := buf[i] == 'm'
	consumed := i + 1

	parts := splitAll(body, ';')
	if len(parts) != 3 {
		return consumed, backend.Event{}, false
	}
	code := atoiOr(parts[0], -1)
	x := atoiOr(parts[1], 1) - 1
	y := atoiOr(parts[2], 1) - 1
	if code < 0 {
		return consumed, backend.Event{}, false
	}

	me := backend.MouseEvent{X: x, Y: y}
	switch {
	case code&0x40 != 0:
		switch code & 0x3 {
		case 0:
			me.State = backend.MouseState{Kind: backend.MouseScrollUp}
		case 1:
			me.State = backend.MouseState{Kind: backend.MouseScrollDown}
		case 2:
			me.State = backend.MouseState{Kind: backend.MouseScrollLeft}
		default:
			me.State = backend.MouseState{Kind: backend.MouseScrollRight}
		}
	case code&0x20 != 0:
		me.State = backend.MouseState{Kind: backend.MouseDrag, Button: mouseButton(code)}
	case release:
		me.State = backend.MouseState{Kind: backend.MouseUp, Button: mouseButton(code)}
	default:
		me.State = backend.MouseState{Kind: backend.MouseDown, Button: mouseButton(code)}
	}
	return consumed, backend.Mouse(me), true
}

func mouseButton(code int) backend.MouseButton {
	switch code & 0x3 {
	case 1:
		return backend.MouseMiddle
	case 2:
		return backend.MouseRight
	default:
		return backend.MouseLeft
	}
}

func splitAll(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// keyEvent builds a plain KeyEvent from code. fn, when nonzero, overrides
// code.FN (used by callers that don't set it inline).
func keyEvent(code backend.KeyCode, fn int) backend.Event {
	if fn != 0 {
		code.FN = fn
	}
	return backend.Key(backend.KeyEvent{Code: code})
}
