package tui

import (
	"image/color"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
)

const (
	barFull  = "█"
	barEmpty = "░"
)

// segmentWidths splits width cells between counts proportionally using
// largest remainders, so the widths always sum to width when any count is
// positive. All zero counts yield all zero widths.
func segmentWidths(counts []int, width int) []int {
	widths := make([]int, len(counts))
	total := 0
	for _, c := range counts {
		total += max(c, 0)
	}
	if total == 0 || width <= 0 {
		return widths
	}

	used := 0
	remainders := make([]int, len(counts))
	for i, c := range counts {
		c = max(c, 0)
		widths[i] = c * width / total
		remainders[i] = c * width % total
		used += widths[i]
	}

	for used < width {
		best := -1
		for i, r := range remainders {
			if counts[i] > 0 && (best < 0 || r > remainders[best]) {
				best = i
			}
		}
		widths[best]++
		remainders[best] = -1
		used++
	}

	return widths
}

// stackedBar renders counts as one bar of colored segments. An all-zero
// input renders an empty track.
func stackedBar(counts []int, colors []color.Color, width int) string {
	widths := segmentWidths(counts, width)

	var b strings.Builder
	filled := 0
	for i, w := range widths {
		if w == 0 {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(strings.Repeat(barFull, w)))
		filled += w
	}
	if filled < width {
		b.WriteString(lipgloss.NewStyle().Foreground(colors[len(colors)-1]).Faint(true).Render(strings.Repeat(barEmpty, width-filled)))
	}
	return b.String()
}

// progressBar renders percent (0-100) as a filled track.
func progressBar(percent, width int, fill, track color.Color) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat(barFull, filled)) +
		lipgloss.NewStyle().Foreground(track).Render(strings.Repeat(barEmpty, width-filled))
}
