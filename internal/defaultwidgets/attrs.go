// Package defaultwidgets implements the built-in Widget idents the
// compiler and runtime ship out of the box: text, stack containers, and a
// bordered frame (spec §4.7's Widget contract, fleshed out with the set of
// elements needed to satisfy the end-to-end scenarios in spec §8).
package defaultwidgets

import (
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/widget"
)

func attrString(attrs map[string]widget.Attribute, key, fallback string) string {
	a, ok := attrs[key]
	if !ok {
		return fallback
	}
	if s := a.Value.String(); s != "" {
		return s
	}
	return fallback
}

func attrUint16(attrs map[string]widget.Attribute, key string, fallback uint16) uint16 {
	a, ok := attrs[key]
	if !ok {
		return fallback
	}
	f, ok := a.Value.AsFloat()
	if !ok {
		return fallback
	}
	if f < 0 {
		return 0
	}
	return uint16(f)
}

func attrAlign(attrs map[string]widget.Attribute, key string) layout.Align {
	switch attrString(attrs, key, "left") {
	case "centre", "center":
		return layout.AlignCenter
	case "right":
		return layout.AlignRight
	default:
		return layout.AlignLeft
	}
}
