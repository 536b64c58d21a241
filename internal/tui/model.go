// Package tui implements the Bubble Tea TUI for taskboard.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/view"
	"github.com/colonyops/taskboard/internal/data/watch"
	"github.com/colonyops/taskboard/internal/taskboard"
)

// UIState is the input mode of the model.
type UIState int

const (
	stateNormal UIState = iota
	stateFormInput
	stateSearching
	stateShowingHelp
)

// Options configures a Model.
type Options struct {
	// Context is passed to store calls. Defaults to context.Background().
	Context context.Context
	// Changes delivers external writes to the data directory. nil disables
	// live reload.
	Changes <-chan watch.Event
}

// storeChangedMsg is delivered when another process wrote the slot store.
type storeChangedMsg struct {
	event watch.Event
}

// Model is the main TUI model.
type Model struct {
	app     *taskboard.App
	ctx     context.Context
	log     zerolog.Logger
	changes <-chan watch.Event

	state    view.State
	snapshot view.Snapshot
	selected int // task id under the cursor, 0 when the list is empty
	cursor   int
	offset   int

	uiState UIState
	form    *taskForm
	search  textinput.Model

	toastController *ToastController
	toastView       *ToastView

	nerdFonts bool
	width     int
	height    int
	quitting  bool
}

// New creates a new TUI model over app.
func New(app *taskboard.App, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	search := textinput.New()
	search.Prompt = styles.IconSearch + " "
	search.Placeholder = "search tasks"
	search.SetWidth(30)

	toasts := NewToastController(app.Config.TUI.ToastDuration)

	m := Model{
		app:             app,
		ctx:             ctx,
		log:             logging.Component("tui"),
		changes:         opts.Changes,
		state:           app.Config.InitialState(),
		search:          search,
		toastController: toasts,
		toastView:       NewToastView(toasts),
		nerdFonts:       app.Config.TUI.NerdFonts,
	}
	m.refresh()
	return m
}

// Init starts listening for external store changes.
func (m Model) Init() tea.Cmd {
	return waitForStoreChange(m.changes)
}

// waitForStoreChange returns a command that blocks until the next external
// write. It returns nil when live reload is disabled.
func waitForStoreChange(ch <-chan watch.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{event: ev}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil
	case storeChangedMsg:
		return m.handleStoreChanged(msg)
	case toastTickMsg:
		return m.handleToastTick(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// View renders the TUI.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the main screen with any active overlay.
func (m Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.size()
	content := m.renderMain(w, h)

	switch m.uiState {
	case stateFormInput:
		content = m.form.Overlay(content, w, h)
	case stateShowingHelp:
		content = newHelpDialog(w).Overlay(content, w, h)
	}

	return m.toastView.Overlay(content, w, h)
}

// State returns the current view state.
func (m Model) State() view.State { return m.state }

// Snapshot returns the projection currently on screen.
func (m Model) Snapshot() view.Snapshot { return m.snapshot }

// SelectedID returns the id of the task under the cursor, or 0.
func (m Model) SelectedID() int { return m.selected }

// Toasts returns the active toasts, oldest first.
func (m Model) Toasts() []Toast { return m.toastController.Toasts() }

// refresh recomputes the snapshot and keeps the cursor on the same task when
// it is still visible.
func (m *Model) refresh() {
	m.snapshot = m.app.Tasks.Snapshot(m.state, m.app.Tasks.Now())

	rows := m.snapshot.Tasks
	if len(rows) == 0 {
		m.cursor, m.offset, m.selected = 0, 0, 0
		return
	}

	for i, row := range rows {
		if row.Task.ID == m.selected {
			m.cursor = i
			m.clampOffset()
			return
		}
	}

	m.cursor = min(max(m.cursor, 0), len(rows)-1)
	m.selected = rows[m.cursor].Task.ID
	m.clampOffset()
}

func (m *Model) moveCursor(delta int) {
	rows := m.snapshot.Tasks
	if len(rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(rows)-1)
	m.selected = rows[m.cursor].Task.ID
	m.clampOffset()
}

// clampOffset scrolls so the cursor row stays visible.
func (m *Model) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	m.offset = max(m.offset, 0)
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w == 0 {
		w = 100
	}
	if h == 0 {
		h = 30
	}
	return w, h
}

// notify pushes a toast and starts the tick timer if it isn't running.
func (m *Model) notify(level ToastLevel, message string) tea.Cmd {
	m.toastController.Push(Toast{Level: level, Message: message})
	if m.toastController.Ticking() {
		return nil
	}
	m.toastController.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) handleToastTick(_ toastTickMsg) (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}

func (m Model) handleStoreChanged(msg storeChangedMsg) (tea.Model, tea.Cmd) {
	m.log.Debug().Str("path", msg.event.Path).Msg("store changed on disk, reloading")

	cmds := []tea.Cmd{waitForStoreChange(m.changes)}

	if err := m.app.Tasks.Reload(m.ctx); err != nil {
		cmds = append(cmds, m.notify(ToastError, "Reload failed: "+err.Error()))
	}

	if mode, err := m.app.Theme.Theme(m.ctx); err == nil && mode != styles.CurrentMode {
		styles.SetTheme(mode)
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// now returns the store clock, so rendering and form defaults agree with
// the timestamps the store assigns.
func (m Model) now() time.Time {
	return m.app.Tasks.Now()
}

// overlay centers a rendered modal over background.
func overlay(background, modal string, width, height int) string {
	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
