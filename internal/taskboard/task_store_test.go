package taskboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskboard/internal/core/kv"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/view"
	"github.com/colonyops/taskboard/internal/data/stores"
)

var fixedNow = time.Date(2026, time.October, 21, 9, 30, 0, 0, time.UTC)

func newStore(t *testing.T, backing kv.KV, opts ...TaskStoreOption) *TaskStore {
	t.Helper()
	base := []TaskStoreOption{
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
	}
	return NewTaskStore(backing, append(base, opts...)...)
}

func newEmptyStore(t *testing.T) (*TaskStore, *stores.MemoryKV) {
	t.Helper()
	backing := stores.NewMemoryKV()
	s := newStore(t, backing, WithSeed(false))
	require.NoError(t, s.Load(context.Background()))
	return s, backing
}

func storedRecords(t *testing.T, backing kv.KV) []task.Record {
	t.Helper()
	var records []task.Record
	require.NoError(t, backing.Get(context.Background(), SlotTasks, &records))
	return records
}

func TestLoad_SeedsWhenAbsent(t *testing.T) {
	ctx := context.Background()
	backing := stores.NewMemoryKV()
	s := newStore(t, backing)

	require.NoError(t, s.Load(ctx))

	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 7, s.NextID())
	assert.Len(t, storedRecords(t, backing), 6, "seed is persisted immediately")
}

func TestLoad_EmptyWhenSeedingDisabled(t *testing.T) {
	s, backing := newEmptyStore(t)

	assert.Zero(t, s.Len())
	assert.Equal(t, 1, s.NextID())
	assert.Empty(t, storedRecords(t, backing))
}

func TestLoad_SeedsWhenUnparseable(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":      "{oops",
		"wrong shape":   `{"id":1}`,
		"bad timestamp": `[{"id":1,"text":"x","createdAt":"yesterday-ish"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			backing := stores.NewMemoryKV()
			backing.SetRaw(SlotTasks, []byte(raw))

			s := newStore(t, backing)
			require.NoError(t, s.Load(context.Background()))

			assert.Equal(t, 6, s.Len())
			assert.Len(t, storedRecords(t, backing), 6)
		})
	}
}

func TestLoad_RestoresTasksAndCounter(t *testing.T) {
	backing := stores.NewMemoryKV()
	backing.SetRaw(SlotTasks, []byte(`[
		{"id":4,"text":"later","completed":true,"createdAt":"2026-10-20T08:00:00.000Z","type":"weekly","priority":"high","deadline":"2026-10-25"},
		{"id":2,"text":"earlier","completed":false,"type":"errand","priority":"someday","deadline":null}
	]`))

	s := newStore(t, backing)
	require.NoError(t, s.Load(context.Background()))

	require.Equal(t, 2, s.Len())
	assert.Equal(t, 5, s.NextID())

	got, ok := s.Get(4)
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.Equal(t, time.Date(2026, time.October, 25, 0, 0, 0, 0, time.UTC), *got.Deadline)

	other, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, task.Type("errand"), other.Type)
	assert.Equal(t, fixedNow, other.CreatedAt, "missing createdAt falls back to now")
}

func TestCreate_AssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	s, backing := newEmptyStore(t)

	a, err := s.Create(ctx, "  first  ", task.TypeGeneral, task.PriorityLow, nil)
	require.NoError(t, err)
	b, err := s.Create(ctx, "second", task.TypeDaily, task.PriorityHigh, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, "first", a.Text)
	assert.False(t, a.Completed)
	assert.Equal(t, fixedNow, a.CreatedAt)
	assert.Equal(t, 2, s.Len())
	assert.Len(t, storedRecords(t, backing), 2)
}

func TestCreate_EmptyTextChangesNothing(t *testing.T) {
	ctx := context.Background()
	s, _ := newEmptyStore(t)

	_, err := s.Create(ctx, "   ", task.TypeGeneral, task.PriorityLow, nil)
	require.ErrorIs(t, err, task.ErrEmptyText)
	assert.Zero(t, s.Len())
	assert.Equal(t, 1, s.NextID())
}

func TestCreate_NormalizesDeadline(t *testing.T) {
	ctx := context.Background()
	s, _ := newEmptyStore(t)

	d := time.Date(2026, time.October, 30, 17, 45, 0, 0, time.UTC)
	got, err := s.Create(ctx, "x", task.TypeGeneral, task.PriorityLow, &d)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 30, 0, 0, 0, 0, time.UTC), *got.Deadline)
}

func TestCounterNeverDecreasesAfterDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newEmptyStore(t)

	a, _ := s.Create(ctx, "a", task.TypeGeneral, task.PriorityLow, nil)
	b, _ := s.Create(ctx, "b", task.TypeGeneral, task.PriorityLow, nil)
	require.NoError(t, s.Delete(ctx, b.ID))
	require.NoError(t, s.Delete(ctx, a.ID))

	c, err := s.Create(ctx, "c", task.TypeGeneral, task.PriorityLow, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID)
}

func TestToggle_TwiceIsIdentity(t *testing.T) {
	ctx := context.Background()
	s, _ := newEmptyStore(t)
	created, _ := s.Create(ctx, "x", task.TypeGeneral, task.PriorityLow, nil)

	require.NoError(t, s.Toggle(ctx, created.ID))
	got, _ := s.Get(created.ID)
	assert.True(t, got.Completed)

	require.NoError(t, s.Toggle(ctx, created.ID))
	got, _ = s.Get(created.ID)
	assert.Equal(t, created, got)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	s, _ := newEmptyStore(t)
	_, _ = s.Create(ctx, "x", task.TypeGeneral, task.PriorityLow, nil)
	before := s.Tasks()

	assert.NoError(t, s.Toggle(ctx, 99))
	assert.NoError(t, s.Delete(ctx, 99))
	assert.NoError(t, s.Update(ctx, 99, "y", task.TypeDaily, task.PriorityHigh, nil))

	assert.Equal(t, before, s.Tasks())
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s, backing := newEmptyStore(t)
	d := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	created, _ := s.Create(ctx, "draft", task.TypeGeneral, task.PriorityLow, &d)

	require.NoError(t, s.Update(ctx, created.ID, " final ", task.TypeMonthly, task.PriorityUrgent, nil))

	got, _ := s.Get(created.ID)
	assert.Equal(t, "final", got.Text)
	assert.Equal(t, task.TypeMonthly, got.Type)
	assert.Equal(t, task.PriorityUrgent, got.Priority)
	assert.Nil(t, got.Deadline, "deadline can be cleared")
	assert.Equal(t, created.CreatedAt, got.CreatedAt, "createdAt is immutable")

	records := storedRecords(t, backing)
	require.Len(t, records, 1)
	assert.Equal(t, "final", records[0].Text)
	assert.Nil(t, records[0].Deadline)
}

func TestUpdate_EmptyTextLeavesTask(t *testing.T) {
	ctx := context.Background()
	s, _ := newEmptyStore(t)
	created, _ := s.Create(ctx, "keep", task.TypeGeneral, task.PriorityLow, nil)

	err := s.Update(ctx, created.ID, "\t", task.TypeDaily, task.PriorityHigh, nil)
	require.ErrorIs(t, err, task.ErrEmptyText)

	got, _ := s.Get(created.ID)
	assert.Equal(t, created, got)
}

func TestTasks_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newEmptyStore(t)
	d := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	_, _ = s.Create(ctx, "x", task.TypeGeneral, task.PriorityLow, &d)

	list := s.Tasks()
	list[0].Text = "mutated"
	*list[0].Deadline = d.AddDate(1, 0, 0)

	got, _ := s.Get(list[0].ID)
	assert.Equal(t, "x", got.Text)
	assert.Equal(t, d, *got.Deadline)
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, backing := newEmptyStore(t)
	d := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	_, _ = s.Create(ctx, "a", task.TypeWeekly, task.PriorityMedium, &d)
	b, _ := s.Create(ctx, "b", task.TypeGeneral, task.PriorityUrgent, nil)
	require.NoError(t, s.Toggle(ctx, b.ID))

	reloaded := newStore(t, backing)
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, s.Tasks(), reloaded.Tasks())
	assert.Equal(t, s.NextID(), reloaded.NextID())
}

type failingKV struct {
	*stores.MemoryKV
}

func (failingKV) Set(context.Context, string, any) error { return errors.New("disk full") }

func TestPersistFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, failingKV{stores.NewMemoryKV()}, WithSeed(false))

	err := s.Load(ctx)
	require.Error(t, err)

	created, err := s.Create(ctx, "still here", task.TypeGeneral, task.PriorityLow, nil)
	require.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, 1, s.Len())
}

func TestPersistHookRunsOnEveryWrite(t *testing.T) {
	ctx := context.Background()
	calls := 0
	s := newStore(t, stores.NewMemoryKV(), WithSeed(false), WithPersistHook(func() { calls++ }))

	require.NoError(t, s.Load(ctx))
	created, _ := s.Create(ctx, "x", task.TypeGeneral, task.PriorityLow, nil)
	require.NoError(t, s.Toggle(ctx, created.ID))
	require.NoError(t, s.Toggle(ctx, 42))

	assert.Equal(t, 3, calls)
}

func TestReload_PicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	backing := stores.NewMemoryKV()
	tui := newStore(t, backing, WithSeed(false))
	cli := newStore(t, backing, WithSeed(false))
	require.NoError(t, tui.Load(ctx))
	require.NoError(t, cli.Load(ctx))

	_, _ = tui.Create(ctx, "one", task.TypeGeneral, task.PriorityLow, nil)
	require.NoError(t, cli.Reload(ctx))
	_, _ = cli.Create(ctx, "two", task.TypeGeneral, task.PriorityLow, nil)

	require.NoError(t, tui.Reload(ctx))
	assert.Equal(t, 2, tui.Len())
	assert.Equal(t, 3, tui.NextID())

	backing.SetRaw(SlotTasks, []byte("garbage"))
	require.NoError(t, tui.Reload(ctx))
	assert.Equal(t, 2, tui.Len(), "unreadable external write is ignored")
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	s, _ := newEmptyStore(t)
	_, _ = s.Create(ctx, "a", task.TypeGeneral, task.PriorityLow, nil)
	_, _ = s.Create(ctx, "b", task.TypeGeneral, task.PriorityLow, nil)

	require.NoError(t, s.Replace(ctx, []task.Task{{ID: 1, Text: "imported", CreatedAt: fixedNow}}))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 3, s.NextID(), "counter does not move backwards")
}

func TestReplace_RejectsInvalid(t *testing.T) {
	valid := task.Task{ID: 1, Text: "a", CreatedAt: fixedNow}

	tests := []struct {
		name  string
		tasks []task.Task
		want  error
	}{
		{
			name:  "duplicate id",
			tasks: []task.Task{valid, {ID: 1, Text: "b", CreatedAt: fixedNow}},
			want:  task.ErrInvalidID,
		},
		{
			name:  "zero id",
			tasks: []task.Task{valid, {ID: 0, Text: "b", CreatedAt: fixedNow}},
			want:  task.ErrInvalidID,
		},
		{
			name:  "negative id",
			tasks: []task.Task{{ID: -3, Text: "b", CreatedAt: fixedNow}},
			want:  task.ErrInvalidID,
		},
		{
			name:  "blank text",
			tasks: []task.Task{valid, {ID: 2, Text: "  \t ", CreatedAt: fixedNow}},
			want:  task.ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, backing := newEmptyStore(t)
			_, err := s.Create(ctx, "keep me", task.TypeGeneral, task.PriorityLow, nil)
			require.NoError(t, err)

			err = s.Replace(ctx, tt.tasks)
			require.ErrorIs(t, err, tt.want)

			require.Equal(t, 1, s.Len(), "list is unchanged")
			got, ok := s.Get(1)
			require.True(t, ok)
			assert.Equal(t, "keep me", got.Text)
			assert.Equal(t, 2, s.NextID())
			assert.Len(t, storedRecords(t, backing), 1)
		})
	}
}

func TestReplace_TrimsText(t *testing.T) {
	s, _ := newEmptyStore(t)

	require.NoError(t, s.Replace(context.Background(), []task.Task{{ID: 4, Text: "  padded  ", CreatedAt: fixedNow}}))

	got, ok := s.Get(4)
	require.True(t, ok)
	assert.Equal(t, "padded", got.Text)
	assert.Equal(t, 5, s.NextID())
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newEmptyStore(t)
	require.Zero(t, s.Len())

	first, err := s.Create(ctx, "Buy milk", task.TypeGeneral, task.PriorityLow, nil)
	require.NoError(t, err)

	_, err = s.Create(ctx, "", task.TypeGeneral, task.PriorityLow, nil)
	require.ErrorIs(t, err, task.ErrEmptyText)
	require.Equal(t, 1, s.Len())

	require.NoError(t, s.Toggle(ctx, first.ID))

	completed := s.Snapshot(view.State{Status: view.StatusCompleted}, fixedNow)
	require.Len(t, completed.Tasks, 1)
	assert.Equal(t, first.ID, completed.Tasks[0].Task.ID)

	active := s.Snapshot(view.State{Status: view.StatusActive}, fixedNow)
	assert.Empty(t, active.Tasks)

	require.NoError(t, s.Delete(ctx, first.ID))
	assert.Zero(t, s.Len())
}
