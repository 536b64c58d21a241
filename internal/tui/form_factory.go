package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/taskboard/internal/core/dates"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/tui/components/form"
)

// Form variable names.
const (
	fieldText     = "text"
	fieldType     = "type"
	fieldPriority = "priority"
	fieldDeadline = "deadline"
)

// taskForm is the add or edit dialog plus the fields it reads back.
type taskForm struct {
	dialog    *form.Dialog
	editingID int // 0 when adding

	deadline *form.TextField
	lastType string
}

// taskInput is the raw content of a submitted form.
type taskInput struct {
	Text     string
	Type     task.Type
	Priority task.Priority
	Deadline string
}

// newAddForm builds the add dialog with the defaults of a fresh task.
func newAddForm() *taskForm {
	return newTaskForm("Add Task", 0, "", task.TypeGeneral, task.PriorityMedium, "")
}

// newEditForm builds the edit dialog pre-filled from t.
func newEditForm(t task.Task) *taskForm {
	deadline := ""
	if t.Deadline != nil {
		deadline = dates.FormatDate(*t.Deadline)
	}
	return newTaskForm("Edit Task", t.ID, t.Text, t.Type, t.Priority, deadline)
}

func newTaskForm(title string, id int, text string, typ task.Type, priority task.Priority, deadline string) *taskForm {
	deadlineField := form.NewTextField("Deadline", dates.DateLayout+" (optional)", deadline)

	fields := []form.Field{
		form.NewTextField("Task", "What needs to be done?", text),
		form.NewSelectField("Type", typeOptions(typ), string(typ)),
		form.NewSelectField("Priority", priorityOptions(priority), string(priority)),
		deadlineField,
	}

	return &taskForm{
		dialog:    form.NewDialog(title, fields, []string{fieldText, fieldType, fieldPriority, fieldDeadline}),
		editingID: id,
		deadline:  deadlineField,
		lastType:  string(typ),
	}
}

// Update forwards msg to the dialog. When adding, picking a daily, weekly
// or monthly type fills an empty deadline with that cadence's default.
func (f *taskForm) Update(msg tea.Msg, now time.Time) tea.Cmd {
	var cmd tea.Cmd
	f.dialog, cmd = f.dialog.Update(msg)

	typ := f.dialog.String(fieldType)
	if typ != f.lastType {
		f.lastType = typ
		if f.editingID == 0 && strings.TrimSpace(f.dialog.String(fieldDeadline)) == "" {
			if d := task.DefaultDeadline(task.Type(typ), now); d != nil {
				f.deadline.SetValue(dates.FormatDate(*d))
			}
		}
	}

	return cmd
}

// Input returns the submitted values.
func (f *taskForm) Input() taskInput {
	return taskInput{
		Text:     f.dialog.String(fieldText),
		Type:     task.Type(f.dialog.String(fieldType)),
		Priority: task.Priority(f.dialog.String(fieldPriority)),
		Deadline: f.dialog.String(fieldDeadline),
	}
}

// Adding reports whether the form creates a new task.
func (f *taskForm) Adding() bool { return f.editingID == 0 }

// Overlay renders the dialog centered over background.
func (f *taskForm) Overlay(background string, width, height int) string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(f.dialog.Title),
		"",
		f.dialog.View(),
	)
	return overlay(background, styles.ModalStyle.Render(content), width, height)
}

func typeOptions(current task.Type) []form.Option {
	opts := make([]form.Option, 0, len(task.Types())+1)
	for _, t := range task.Types() {
		opts = append(opts, form.Option{Label: capitalize(string(t)), Value: string(t)})
	}
	// Stored data may carry a type outside the built-in set; keep it selectable.
	if current != "" && !current.IsKnown() {
		opts = append(opts, form.Option{Label: capitalize(string(current)), Value: string(current)})
	}
	return opts
}

func priorityOptions(current task.Priority) []form.Option {
	opts := make([]form.Option, 0, len(task.Priorities())+1)
	for _, p := range task.Priorities() {
		opts = append(opts, form.Option{Label: capitalize(string(p)), Value: string(p)})
	}
	if current != "" && !current.IsKnown() {
		opts = append(opts, form.Option{Label: capitalize(string(current)), Value: string(current)})
	}
	return opts
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
