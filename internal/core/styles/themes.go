package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// Mode is the persisted theme choice.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// DefaultMode is used when no theme has been stored.
const DefaultMode = ModeLight

// ParseMode returns the mode named s. ok is false for anything other than
// "light" or "dark".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLight, ModeDark:
		return Mode(s), true
	default:
		return DefaultMode, false
	}
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

var palettes = map[Mode]Palette{
	ModeLight: {
		Primary:    lipgloss.Color("#4a6cf7"),
		Secondary:  lipgloss.Color("#0f9bb5"),
		Foreground: lipgloss.Color("#1f2933"),
		Muted:      lipgloss.Color("#7b8794"),
		Background: lipgloss.Color("#f5f7fa"),
		Surface:    lipgloss.Color("#e4e7eb"),
		Success:    lipgloss.Color("#1dbf73"),
		Warning:    lipgloss.Color("#ffa726"),
		Error:      lipgloss.Color("#ff4757"),
	},
	ModeDark: {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
}

// PaletteFor returns the palette for m, falling back to the default mode.
func PaletteFor(m Mode) Palette {
	if p, ok := palettes[m]; ok {
		return p
	}
	return palettes[DefaultMode]
}
