package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskboard/internal/core/config"
	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/view"
	"github.com/colonyops/taskboard/internal/data/stores"
	"github.com/colonyops/taskboard/internal/data/watch"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/tuitest"
)

// Wednesday.
var fixedNow = time.Date(2026, time.October, 21, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T, seed bool) *taskboard.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = config.MemoryDataDir
	cfg.SeedDemoTasks = &seed

	app := taskboard.NewApp(&cfg, stores.NewMemoryKV(), nil,
		taskboard.WithClock(func() time.Time { return fixedNow }),
		taskboard.WithLocation(time.UTC),
	)
	require.NoError(t, app.Tasks.Load(context.Background()))
	return app
}

func newTestModel(t *testing.T) (Model, *taskboard.App) {
	t.Helper()
	app := newTestApp(t, true)
	return New(app, Options{}), app
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func rowIDs(m Model) []int {
	ids := make([]int, 0, len(m.Snapshot().Tasks))
	for _, row := range m.Snapshot().Tasks {
		ids = append(ids, row.Task.ID)
	}
	return ids
}

func lastToast(t *testing.T, m Model) Toast {
	t.Helper()
	toasts := m.Toasts()
	require.NotEmpty(t, toasts)
	return toasts[len(toasts)-1]
}

func TestNew_StartsOnSeededList(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, view.DefaultState(), m.State())
	assert.Equal(t, []int{1, 4, 6, 2, 3, 5}, rowIDs(m))
	assert.Equal(t, 1, m.SelectedID())
	assert.Nil(t, m.Init(), "no watcher, no listener")
}

func TestNew_UsesConfiguredDefaults(t *testing.T) {
	app := newTestApp(t, true)
	app.Config.TUI.DefaultSort = view.SortPriority
	app.Config.TUI.DefaultPeriod = view.PeriodToday

	m := New(app, Options{})

	assert.Equal(t, view.SortPriority, m.State().Sort)
	assert.Equal(t, []int{4, 2}, rowIDs(m))
}

func TestCursorMovement(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('j'), tuitest.KeyDown())
	assert.Equal(t, 6, m.SelectedID())

	m = send(t, m, tuitest.KeyPress('k'))
	assert.Equal(t, 4, m.SelectedID())

	m = send(t, m, tuitest.KeyPress('G'))
	assert.Equal(t, 5, m.SelectedID())

	m = send(t, m, tuitest.KeyDown())
	assert.Equal(t, 5, m.SelectedID(), "stops at the last row")

	m = send(t, m, tuitest.KeyPress('g'), tuitest.KeyUp())
	assert.Equal(t, 1, m.SelectedID())
}

func TestToggle(t *testing.T) {
	m, app := newTestModel(t)

	m = send(t, m, tuitest.KeySpace())
	got, _ := app.Tasks.Get(1)
	assert.True(t, got.Completed)

	m = send(t, m, tuitest.KeyPress('x'))
	got, _ = app.Tasks.Get(1)
	assert.False(t, got.Completed)
	assert.Empty(t, m.Toasts(), "toggling is silent")
}

func TestToggle_KeepsCursorPositionWhenRowLeavesFilter(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('f')) // active
	assert.Equal(t, []int{1, 4, 6, 3}, rowIDs(m))

	m = send(t, m, tuitest.KeySpace())
	assert.Equal(t, []int{4, 6, 3}, rowIDs(m))
	assert.Equal(t, 4, m.SelectedID())
}

func TestDelete(t *testing.T) {
	m, app := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('d'))

	assert.Equal(t, 5, app.Tasks.Len())
	_, ok := app.Tasks.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 4, m.SelectedID())
	assert.Equal(t, Toast{Level: ToastSuccess, Message: msgTaskDeleted}, lastToast(t, m))
}

func TestDelete_EmptyListIsNoop(t *testing.T) {
	m := New(newTestApp(t, false), Options{})

	m = send(t, m, tuitest.KeyPress('d'), tuitest.KeySpace(), tuitest.KeyPress('e'))

	assert.Empty(t, m.Toasts())
	assert.Equal(t, stateNormal, m.uiState)
	assert.Contains(t, tuitest.StripANSI(m.render()), "No tasks found")
}

func TestAddForm(t *testing.T) {
	m, app := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('a'))
	require.Equal(t, stateFormInput, m.uiState)

	m = send(t, m, tuitest.Type("Buy milk")...)
	m = send(t, m, tuitest.KeyEnter(), tuitest.KeyEnter(), tuitest.KeyEnter(), tuitest.KeyEnter())

	assert.Equal(t, stateNormal, m.uiState)
	assert.Equal(t, 7, app.Tasks.Len())

	created, ok := app.Tasks.Get(7)
	require.True(t, ok)
	assert.Equal(t, "Buy milk", created.Text)
	assert.Equal(t, task.TypeGeneral, created.Type)
	assert.Equal(t, task.PriorityMedium, created.Priority)
	assert.Nil(t, created.Deadline)
	assert.Equal(t, fixedNow, created.CreatedAt)

	assert.Equal(t, 7, m.SelectedID())
	assert.Equal(t, Toast{Level: ToastSuccess, Message: msgTaskAdded}, lastToast(t, m))
}

func TestAddForm_EmptyTextKeepsFormOpen(t *testing.T) {
	m, app := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('a'))
	m = send(t, m, tuitest.Type("   ")...)
	m = send(t, m, tuitest.KeyCtrl('s'))

	assert.Equal(t, stateFormInput, m.uiState)
	assert.False(t, m.form.dialog.Submitted())
	assert.Equal(t, 6, app.Tasks.Len())
	assert.Equal(t, Toast{Level: ToastError, Message: msgAddEmptyText}, lastToast(t, m))
}

func TestAddForm_TypePrefillsDeadline(t *testing.T) {
	m, app := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('a'))
	m = send(t, m, tuitest.Type("Stand-up")...)
	m = send(t, m, tuitest.KeyTab(), tuitest.KeyDown()) // general -> daily
	assert.Equal(t, "2026-10-21", m.form.Input().Deadline)

	m = send(t, m, tuitest.KeyDown()) // weekly: deadline is no longer empty
	assert.Equal(t, "2026-10-21", m.form.Input().Deadline)

	m = send(t, m, tuitest.KeyCtrl('s'))

	created, ok := app.Tasks.Get(7)
	require.True(t, ok)
	assert.Equal(t, task.TypeWeekly, created.Type)
	require.NotNil(t, created.Deadline)
	assert.Equal(t, time.Date(2026, time.October, 21, 0, 0, 0, 0, time.UTC), *created.Deadline)
}

func TestAddForm_BadDeadline(t *testing.T) {
	m, app := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('a'))
	m = send(t, m, tuitest.Type("Call mom")...)
	m = send(t, m, tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyTab())
	m = send(t, m, tuitest.Type("next week")...)
	m = send(t, m, tuitest.KeyEnter())

	assert.Equal(t, stateFormInput, m.uiState)
	assert.Equal(t, 6, app.Tasks.Len())
	assert.Equal(t, Toast{Level: ToastError, Message: msgBadDeadline}, lastToast(t, m))
}

func TestAddForm_EscCancels(t *testing.T) {
	m, app := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('a'))
	m = send(t, m, tuitest.Type("never mind")...)
	m = send(t, m, tuitest.KeyEsc())

	assert.Equal(t, stateNormal, m.uiState)
	assert.Nil(t, m.form)
	assert.Equal(t, 6, app.Tasks.Len())
	assert.Empty(t, m.Toasts())
}

func TestEditForm(t *testing.T) {
	m, app := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('e'))
	require.Equal(t, stateFormInput, m.uiState)

	in := m.form.Input()
	assert.Equal(t, "Complete project proposal", in.Text)
	assert.Equal(t, task.TypeDaily, in.Type)
	assert.Equal(t, task.PriorityHigh, in.Priority)
	assert.Equal(t, "2026-10-22", in.Deadline)

	// priority: high -> urgent
	m = send(t, m, tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyDown(), tuitest.KeyCtrl('s'))

	got, _ := app.Tasks.Get(1)
	assert.Equal(t, task.PriorityUrgent, got.Priority)
	assert.Equal(t, "Complete project proposal", got.Text)
	assert.Equal(t, Toast{Level: ToastSuccess, Message: msgTaskUpdated}, lastToast(t, m))
}

func TestEditForm_ClearDeadline(t *testing.T) {
	m, app := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('e'))
	m = send(t, m, tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyCtrl('u'), tuitest.KeyEnter())

	got, _ := app.Tasks.Get(1)
	assert.Nil(t, got.Deadline)
}

func TestEditForm_EmptyText(t *testing.T) {
	m, app := newTestModel(t)

	m.form = newTaskForm("Edit Task", 1, "  ", task.TypeDaily, task.PriorityHigh, "")
	m.uiState = stateFormInput
	m = send(t, m, tuitest.KeyCtrl('s'))

	assert.Equal(t, stateFormInput, m.uiState)
	got, _ := app.Tasks.Get(1)
	assert.Equal(t, "Complete project proposal", got.Text)
	assert.Equal(t, Toast{Level: ToastError, Message: msgEditEmptyText}, lastToast(t, m))
}

func TestPeriodKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('2'))
	assert.Equal(t, view.PeriodToday, m.State().Period)
	assert.Equal(t, []int{4, 2}, rowIDs(m))

	m = send(t, m, tuitest.KeyTab())
	assert.Equal(t, view.PeriodWeek, m.State().Period)

	m = send(t, m, tuitest.KeyShiftTab(), tuitest.KeyShiftTab())
	assert.Equal(t, view.PeriodAll, m.State().Period)

	m = send(t, m, tuitest.KeyShiftTab())
	assert.Equal(t, view.PeriodMonth, m.State().Period)
}

func TestCycleKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('f'), tuitest.KeyPress('f'))
	assert.Equal(t, view.StatusCompleted, m.State().Status)
	assert.Equal(t, []int{2, 5}, rowIDs(m))

	m = send(t, m, tuitest.KeyPress('s'))
	assert.Equal(t, view.SortOld, m.State().Sort)
	assert.Equal(t, []int{5, 2}, rowIDs(m))

	m = send(t, m, tuitest.KeyPress('c'))
	assert.Equal(t, view.ChartWeekly, m.State().Chart)
	assert.Equal(t, view.ChartWeekly, m.Snapshot().Stats.Completion.Chart)
}

func TestSearch(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('/'))
	require.Equal(t, stateSearching, m.uiState)

	m = send(t, m, tuitest.Type("review")...)
	assert.Equal(t, "review", m.State().Query)
	assert.Equal(t, []int{4, 6}, rowIDs(m))

	m = send(t, m, tuitest.KeyEnter())
	assert.Equal(t, stateNormal, m.uiState)
	assert.Equal(t, "review", m.State().Query, "enter keeps the query")
	assert.Contains(t, tuitest.StripANSI(m.render()), `search "review"`)

	m = send(t, m, tuitest.KeyPress('/'), tuitest.KeyEsc())
	assert.Empty(t, m.State().Query)
	assert.Len(t, rowIDs(m), 6)
}

func TestSearch_QuitKeyIsText(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('/'), tuitest.KeyPress('q'))

	assert.False(t, m.quitting)
	assert.Equal(t, "q", m.State().Query)
}

func TestHelp(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('?'))
	require.Equal(t, stateShowingHelp, m.uiState)
	assert.Contains(t, tuitest.StripANSI(m.render()), "Keyboard Shortcuts")

	m = send(t, m, tuitest.KeyPress('j'))
	assert.Equal(t, 1, m.SelectedID(), "keys don't reach the list")

	m = send(t, m, tuitest.KeyEsc())
	assert.Equal(t, stateNormal, m.uiState)
}

func TestThemeToggle(t *testing.T) {
	t.Cleanup(func() { styles.SetTheme(styles.DefaultMode) })
	styles.SetTheme(styles.ModeLight)

	m, app := newTestModel(t)
	ctx := context.Background()

	m = send(t, m, tuitest.KeyPress('t'))
	assert.Equal(t, styles.ModeDark, styles.CurrentMode)
	mode, err := app.Theme.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, styles.ModeDark, mode)

	send(t, m, tuitest.KeyPress('t'))
	mode, err = app.Theme.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, styles.ModeLight, mode)
}

func TestQuit(t *testing.T) {
	for _, key := range []tea.Msg{tuitest.KeyPress('q'), tuitest.KeyCtrl('c')} {
		m, _ := newTestModel(t)

		next, cmd := m.Update(key)
		m = next.(Model)

		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.render())
	}
}

func TestStoreChanged_ReloadsExternalWrites(t *testing.T) {
	app := newTestApp(t, true)
	events := make(chan watch.Event, 1)
	m := New(app, Options{Changes: events})
	require.NotNil(t, m.Init())

	other := taskboard.NewTaskStore(app.KV,
		taskboard.WithClock(func() time.Time { return fixedNow.Add(time.Minute) }),
		taskboard.WithLocation(time.UTC),
	)
	ctx := context.Background()
	require.NoError(t, other.Load(ctx))
	_, err := other.Create(ctx, "Added from the CLI", task.TypeGeneral, task.PriorityLow, nil)
	require.NoError(t, err)

	next, cmd := m.Update(storeChangedMsg{event: watch.Event{Path: "taskboard.db"}})
	m = next.(Model)

	assert.NotNil(t, cmd, "keeps listening")
	assert.Equal(t, 7, app.Tasks.Len())
	assert.Equal(t, 7, rowIDs(m)[0])
	assert.Equal(t, 1, m.SelectedID(), "cursor stays on the same task")
}

func TestToastTick(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('d'))
	require.True(t, m.toastController.Ticking())

	ticks := int(m.app.Config.TUI.ToastDuration / toastTickInterval)
	for range ticks {
		m = send(t, m, toastTickMsg(fixedNow))
	}

	assert.Empty(t, m.Toasts())
	assert.False(t, m.toastController.Ticking())
}

func TestEscDismissesToast(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('d'), tuitest.KeyEsc())
	assert.Empty(t, m.Toasts())
}

func TestRender(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, tuitest.WindowSize(120, 40))

	out := tuitest.StripANSI(m.render())

	assert.Contains(t, out, "taskboard")
	assert.Contains(t, out, "This Week")
	assert.Contains(t, out, "Complete project proposal")
	assert.Contains(t, out, "[Daily]")
	assert.Contains(t, out, "High priority")
	assert.Contains(t, out, "2026-10-22")
	assert.Contains(t, out, "Added yesterday")
	assert.Contains(t, out, "[x] Buy groceries for the week")
	assert.Contains(t, out, "Overview")
	assert.Contains(t, out, "Completion")
	assert.Contains(t, out, "Priority")
}

func TestRender_NarrowHidesStats(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, tuitest.WindowSize(60, 20))

	out := tuitest.StripANSI(m.render())
	assert.NotContains(t, out, "Overview")
	assert.Contains(t, out, "Complete project")
}

func TestRender_OverdueMarker(t *testing.T) {
	app := newTestApp(t, false)
	yesterday := fixedNow.AddDate(0, 0, -1)
	_, err := app.Tasks.Create(context.Background(), "Late report", task.TypeGeneral, task.PriorityHigh, &yesterday)
	require.NoError(t, err)

	m := New(app, Options{})
	out := tuitest.StripANSI(m.render())

	assert.Contains(t, out, "! 2026-10-20 overdue")
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, tuitest.WindowSize(60, 9)) // two rows visible

	m = send(t, m, tuitest.KeyPress('G'))
	assert.Equal(t, 4, m.offset)

	out := tuitest.StripANSI(m.render())
	assert.Contains(t, out, "Prepare presentation slides")
	assert.NotContains(t, out, "Complete project proposal")
}
