// Package form provides the focusable input fields and the dialog that
// hosts them for the add and edit task forms.
package form

import tea "charm.land/bubbletea/v2"

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() any    // string for text and select fields
	Label() string // Display label for the field
}
