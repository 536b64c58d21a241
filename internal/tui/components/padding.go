package components

import "strings"

// maxCachedPad covers the widest terminal rows the board lays out.
const maxCachedPad = 256

var spaces = strings.Repeat(" ", maxCachedPad)

// Pad returns n spaces. Widths up to maxCachedPad slice a shared string.
func Pad(n int) string {
	switch {
	case n <= 0:
		return ""
	case n <= maxCachedPad:
		return spaces[:n]
	default:
		return strings.Repeat(" ", n)
	}
}

// PadRight appends spaces to s until it is width cells wide, measured with
// measure. Strings already at or past width are returned unchanged.
func PadRight(s string, width int, measure func(string) int) string {
	return s + Pad(width-measure(s))
}
