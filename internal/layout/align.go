package layout

import "github.com/mattn/go-runewidth"

// Align is a horizontal text alignment, grounded on the `Align` enum in
// anathema-default-widgets/src/widgets/alignment.rs.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// PadLine pads line with spaces to width according to align. A line wider
// than width is returned unchanged (the caller's wrap step is responsible
// for ensuring lines fit).
func PadLine(line string, width int, align Align) string {
	w := runewidth.StringWidth(line)
	if w >= width {
		return line
	}
	gap := width - w
	switch align {
	case AlignRight:
		return spaces(gap) + line
	case AlignCenter:
		left := gap / 2
		right := gap - left
		return spaces(left) + line + spaces(right)
	default:
		return line + spaces(gap)
	}
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
