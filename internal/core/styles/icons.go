package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconChecked   = "" // nf-fa-check_square
	IconUnchecked = "" // nf-fa-square_o
	IconOverdue   = "" // nf-fa-warning
	IconCalendar  = "" // nf-fa-calendar
	IconSearch    = "" // nf-fa-search
)

// Checkbox returns the marker for a task's completion state. Plain ASCII
// is used when nerd fonts are disabled.
func Checkbox(completed, nerdFonts bool) string {
	switch {
	case nerdFonts && completed:
		return IconChecked
	case nerdFonts:
		return IconUnchecked
	case completed:
		return "[x]"
	default:
		return "[ ]"
	}
}
