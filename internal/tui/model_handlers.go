package tui

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/taskboard/internal/core/dates"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/view"
)

// Toast messages.
const (
	msgTaskAdded     = "Task added successfully!"
	msgTaskUpdated   = "Task updated successfully!"
	msgTaskDeleted   = "Task deleted."
	msgAddEmptyText  = "Please enter a task description."
	msgEditEmptyText = "Task description cannot be empty."
	msgBadDeadline   = "Deadline must be a date like 2026-01-31."
)

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == keyCtrlC {
		return m.quit()
	}

	switch m.uiState {
	case stateFormInput:
		return m.handleFormKey(msg)
	case stateSearching:
		return m.handleSearchKey(msg, keyStr)
	case stateShowingHelp:
		return m.handleHelpKey(keyStr)
	}

	return m.handleNormalKey(keyStr)
}

func (m Model) handleNormalKey(keyStr string) (tea.Model, tea.Cmd) {
	if p, ok := periodKeys[keyStr]; ok {
		m.state.Period = p
		m.refresh()
		return m, nil
	}

	switch keyStr {
	case keyQuit:
		return m.quit()
	case keyEsc:
		m.toastController.Dismiss()
		return m, nil

	case "j", keyDown:
		m.moveCursor(1)
	case "k", keyUp:
		m.moveCursor(-1)
	case "g", keyHome:
		m.moveCursor(-len(m.snapshot.Tasks))
	case "G", keyEnd:
		m.moveCursor(len(m.snapshot.Tasks))

	case "a":
		m.form = newAddForm()
		m.uiState = stateFormInput
		return m, nil
	case "e":
		t, ok := m.app.Tasks.Get(m.selected)
		if !ok {
			return m, nil
		}
		m.form = newEditForm(t)
		m.uiState = stateFormInput
		return m, nil
	case keySpace, " ", "x":
		return m.toggleSelected()
	case "d":
		return m.deleteSelected()

	case keyTab:
		m.state.Period = view.Next(view.Periods(), m.state.Period)
		m.refresh()
	case keyShiftTab:
		m.state.Period = prev(view.Periods(), m.state.Period)
		m.refresh()
	case "f":
		m.state.Status = view.Next(view.Statuses(), m.state.Status)
		m.refresh()
	case "s":
		m.state.Sort = view.Next(view.Sorts(), m.state.Sort)
		m.refresh()
	case "c":
		m.state.Chart = view.Next(view.Charts(), m.state.Chart)
		m.refresh()
	case "/":
		m.uiState = stateSearching
		m.search.SetValue(m.state.Query)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "t":
		return m.toggleTheme()
	case "?":
		m.uiState = stateShowingHelp
	}

	return m, nil
}

func (m Model) handleHelpKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEsc, "?", keyQuit, keyEnter:
		m.uiState = stateNormal
	}
	return m, nil
}

// handleSearchKey filters live as the query is typed. enter keeps the
// query, esc clears it.
func (m Model) handleSearchKey(msg tea.KeyPressMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		m.uiState = stateNormal
		m.search.Blur()
		return m, nil
	case keyEsc:
		m.uiState = stateNormal
		m.search.Blur()
		m.search.SetValue("")
		m.state.Query = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.state.Query {
		m.state.Query = q
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	cmd := m.form.Update(msg, m.now())

	switch {
	case m.form.dialog.Cancelled():
		m.form = nil
		m.uiState = stateNormal
		return m, nil
	case m.form.dialog.Submitted():
		return m.submitForm()
	}

	return m, cmd
}

// updateFocused forwards non-key messages (cursor blink and the like) to
// whichever input owns focus.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.uiState {
	case stateFormInput:
		cmd = m.form.Update(msg, m.now())
	case stateSearching:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

// submitForm applies the form. Rejected input keeps the form open with an
// error toast.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	in := m.form.Input()

	deadline, err := dates.ParseDate(in.Deadline, m.now().Location())
	if err != nil {
		return m.rejectForm(msgBadDeadline)
	}

	if m.form.Adding() {
		t, err := m.app.Tasks.Create(m.ctx, in.Text, in.Type, in.Priority, deadline)
		switch {
		case errors.Is(err, task.ErrEmptyText):
			return m.rejectForm(msgAddEmptyText)
		case err != nil:
			return m.closeForm(ToastError, err.Error())
		}
		m.selected = t.ID
		return m.closeForm(ToastSuccess, msgTaskAdded)
	}

	err = m.app.Tasks.Update(m.ctx, m.form.editingID, in.Text, in.Type, in.Priority, deadline)
	switch {
	case errors.Is(err, task.ErrEmptyText):
		return m.rejectForm(msgEditEmptyText)
	case err != nil:
		return m.closeForm(ToastError, err.Error())
	}
	return m.closeForm(ToastSuccess, msgTaskUpdated)
}

func (m Model) rejectForm(message string) (tea.Model, tea.Cmd) {
	return m, tea.Batch(m.form.dialog.Resume(), m.notify(ToastError, message))
}

func (m Model) closeForm(level ToastLevel, message string) (tea.Model, tea.Cmd) {
	m.form = nil
	m.uiState = stateNormal
	m.refresh()
	return m, m.notify(level, message)
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	if m.selected == 0 {
		return m, nil
	}
	err := m.app.Tasks.Toggle(m.ctx, m.selected)
	m.refresh()
	if err != nil {
		return m, m.notify(ToastError, err.Error())
	}
	return m, nil
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	if m.selected == 0 {
		return m, nil
	}
	err := m.app.Tasks.Delete(m.ctx, m.selected)
	m.selected = 0
	m.refresh()
	if err != nil {
		return m, m.notify(ToastError, err.Error())
	}
	return m, m.notify(ToastSuccess, msgTaskDeleted)
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	next := styles.CurrentMode.Toggle()
	styles.SetTheme(next)
	if err := m.app.Theme.SetTheme(m.ctx, next); err != nil {
		return m, m.notify(ToastError, err.Error())
	}
	return m, nil
}

// prev returns the value before cur in values, wrapping around.
func prev[T comparable](values []T, cur T) T {
	for i, v := range values {
		if v == cur {
			return values[(i-1+len(values))%len(values)]
		}
	}
	return values[0]
}
