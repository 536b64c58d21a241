// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/taskboard/internal/core/styles"
)

// HelpEntry represents a single keyboard shortcut entry.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
	width    int
}

// NewHelpDialog creates a new help dialog with the given sections. width
// bounds the rendered markdown.
func NewHelpDialog(title string, sections []HelpDialogSection, width int) *HelpDialog {
	return &HelpDialog{
		title:    title,
		sections: sections,
		width:    width,
	}
}

// Markdown returns the shortcut reference as a markdown document.
func (h *HelpDialog) Markdown() string {
	var b strings.Builder
	for i, section := range h.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if section.Title != "" {
			fmt.Fprintf(&b, "## %s\n\n", section.Title)
		}
		for _, entry := range section.Entries {
			fmt.Fprintf(&b, "- `%s` %s\n", entry.Key, entry.Desc)
		}
	}
	return b.String()
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	title := styles.ModalTitleStyle.Render(h.title)
	help := styles.ModalHelpStyle.Render("esc/? close")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", h.body(), help)
	return styles.ModalStyle.Render(content)
}

// body renders the markdown with glamour, falling back to aligned plain
// lines if the renderer fails.
func (h *HelpDialog) body() string {
	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	wrap := max(h.width-8, 20)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		var rendered string
		rendered, err = renderer.Render(h.Markdown())
		if err == nil {
			return strings.Trim(rendered, "\n")
		}
	}

	log.Debug().Err(err).Msg("failed to render help markdown, showing plain text")
	return h.plain()
}

func (h *HelpDialog) plain() string {
	var lines []string
	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HeaderStyle.Render(section.Title))
		}
		for _, entry := range section.Entries {
			lines = append(lines, formatKeyDesc(entry.Key, entry.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// Overlay renders the help dialog as a layer over the given background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	centerX := max((width-modalW)/2, 0)
	centerY := max((height-modalH)/2, 0)
	modalLayer.X(centerX).Y(centerY).Z(1)

	compositor := lipgloss.NewCompositor(bgLayer, modalLayer)
	return compositor.Render()
}

// formatKeyDesc formats a key-description pair with consistent alignment.
func formatKeyDesc(key, desc string) string {
	const keyWidth = 12

	paddedKey := PadRight(key, keyWidth, lipgloss.Width)
	return styles.HeaderStyle.Render(paddedKey) + styles.RowNormalStyle.Render(desc)
}
