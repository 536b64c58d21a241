package form

import (
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/taskboard/internal/core/styles"
)

// SelectField is a single-select form field wrapping list.Model.
type SelectField struct {
	list    list.Model
	options []Option
	label   string
	focused bool
}

// selectDelegate renders one option per line with a cursor marker.
type selectDelegate struct{}

func (d selectDelegate) Height() int                             { return 1 }
func (d selectDelegate) Spacing() int                            { return 0 }
func (d selectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d selectDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(selectItem)
	if !ok {
		return
	}

	style := styles.RowNormalStyle
	cursor := "  "
	if index == m.Index() {
		style = styles.HeaderStyle
		cursor = "> "
	}

	_, _ = io.WriteString(w, cursor)
	_, _ = io.WriteString(w, style.Render(item.option.Label))
}

// NewSelectField creates a single-select field. defaultVal pre-selects the
// option with that value; otherwise the first option is selected.
func NewSelectField(label string, options []Option, defaultVal string) *SelectField {
	items := make([]list.Item, len(options))
	selected := 0
	for i, opt := range options {
		items[i] = selectItem{option: opt, index: i}
		if opt.Value == defaultVal {
			selected = i
		}
	}

	height := max(len(options), 1)

	l := list.New(items, selectDelegate{}, 40, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.Styles.TitleBar = lipgloss.NewStyle()

	if len(options) > 0 {
		l.Select(selected)
	}

	return &SelectField{
		list:    l,
		options: options,
		label:   label,
	}
}

func (f *SelectField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.list, cmd = f.list.Update(msg)
	return f, cmd
}

func (f *SelectField) View() string {
	titleStyle := styles.FormLabelStyle
	if f.focused {
		titleStyle = styles.TitleStyle.Padding(0)
	}
	title := titleStyle.Render(f.label)

	var body string
	if f.focused {
		body = f.list.View()
	} else {
		// Collapsed to the selected option when not focused.
		body = "  " + styles.RowNormalStyle.Render(f.selectedLabel())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)

	borderStyle := styles.FormFieldStyle
	if f.focused {
		borderStyle = styles.FormFieldFocusedStyle
	}

	return borderStyle.Render(content)
}

func (f *SelectField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *SelectField) Blur() {
	f.focused = false
}

func (f *SelectField) Focused() bool { return f.focused }

func (f *SelectField) Value() any {
	if opt, ok := f.selected(); ok {
		return opt.Value
	}
	return ""
}

func (f *SelectField) Label() string { return f.label }

func (f *SelectField) selectedLabel() string {
	if opt, ok := f.selected(); ok {
		return opt.Label
	}
	return ""
}

func (f *SelectField) selected() (Option, bool) {
	item := f.list.SelectedItem()
	if item == nil {
		return Option{}, false
	}
	si, ok := item.(selectItem)
	if !ok || si.index < 0 || si.index >= len(f.options) {
		return Option{}, false
	}
	return f.options[si.index], true
}
