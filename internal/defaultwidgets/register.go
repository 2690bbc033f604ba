package defaultwidgets

import "github.com/loomtui/loom/internal/layout"

// Register installs every built-in ident (text, vstack, hstack, border,
// border-thick, align) into reg. Idents left unregistered fall back to
// layout.DefaultWidget's vertical stacking.
func Register(reg *layout.Registry) {
	reg.Register("text", Text{})
	reg.Register("vstack", Stack{Axis: AxisVertical})
	reg.Register("hstack", Stack{Axis: AxisHorizontal})
	reg.Register("border", Border{})
	reg.Register("border-thick", Border{Thick: true})
	reg.Register("align", Align{})
}
