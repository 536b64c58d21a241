// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/colonyops/taskboard/internal/core/task"
)

// CurrentMode and CurrentPalette hold the active theme.
var (
	CurrentMode    Mode
	CurrentPalette Palette
)

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	DividerStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	ErrorStyle   lipgloss.Style

	// TUI shared styles.
	TitleStyle        lipgloss.Style
	TabActiveStyle    lipgloss.Style
	TabInactiveStyle  lipgloss.Style
	RowSelectedStyle  lipgloss.Style
	RowNormalStyle    lipgloss.Style
	RowCompletedStyle lipgloss.Style
	BadgeStyle        lipgloss.Style
	OverdueStyle      lipgloss.Style
	PanelStyle        lipgloss.Style
	StatValueStyle    lipgloss.Style
	StatLabelStyle    lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormLabelStyle        lipgloss.Style
	FormErrorStyle        lipgloss.Style

	ToastSuccessStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ToastInfoStyle    lipgloss.Style
)

// SetTheme sets the active mode and rebuilds all global styles.
func SetTheme(m Mode) {
	p := PaletteFor(m)
	if _, ok := ParseMode(string(m)); !ok {
		m = DefaultMode
	}
	CurrentMode = m
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	TabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	RowSelectedStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorForeground).
		Bold(true)
	RowNormalStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	RowCompletedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Strikethrough(true)
	BadgeStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	OverdueStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	StatValueStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	StatLabelStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormLabelStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastSuccessStyle = toast.BorderForeground(ColorSuccess).Foreground(ColorSuccess)
	ToastErrorStyle = toast.BorderForeground(ColorError).Foreground(ColorError)
	ToastInfoStyle = toast.BorderForeground(ColorPrimary).Foreground(ColorForeground)
}

// PriorityColor returns the fixed display color for p. Unknown priorities
// render in the muted color.
func PriorityColor(p task.Priority) color.Color {
	if hex := p.Color(); hex != "" {
		return lipgloss.Color(hex)
	}
	return ColorMuted
}

// PriorityStyle returns a foreground style in the priority's color.
func PriorityStyle(p task.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PriorityColor(p)).Bold(p == task.PriorityUrgent)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(DefaultMode)
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	if CurrentMode == ModeLight {
		cfg = glamourstyles.LightStyleConfig
	}

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Code.Color = secondary
	cfg.Table.Color = fg

	return cfg
}
