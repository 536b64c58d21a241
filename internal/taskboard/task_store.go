package taskboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskboard/internal/core/kv"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/view"
)

// Slot keys.
const (
	SlotTasks = "tasks"
	SlotTheme = "theme"
)

// TaskStore owns the authoritative task list. Every mutation writes the full
// list back to the tasks slot. It is not safe for concurrent use; the TUI
// and each CLI command drive it from a single goroutine.
type TaskStore struct {
	slot      *kv.Slot[[]task.Record]
	clock     func() time.Time
	loc       *time.Location
	seed      bool
	log       zerolog.Logger
	onPersist func()

	tasks  []task.Task
	nextID int
}

// TaskStoreOption configures a TaskStore.
type TaskStoreOption func(*TaskStore)

// WithClock injects the time source.
func WithClock(clock func() time.Time) TaskStoreOption {
	return func(s *TaskStore) { s.clock = clock }
}

// WithLocation sets the zone dates are reconstructed in. Defaults to time.Local.
func WithLocation(loc *time.Location) TaskStoreOption {
	return func(s *TaskStore) { s.loc = loc }
}

// WithSeed controls whether an absent or unreadable slot is seeded with the
// demonstration tasks. Enabled by default.
func WithSeed(seed bool) TaskStoreOption {
	return func(s *TaskStore) { s.seed = seed }
}

// WithLogger sets the store's logger.
func WithLogger(l zerolog.Logger) TaskStoreOption {
	return func(s *TaskStore) { s.log = l }
}

// WithPersistHook registers fn to run right before each slot write.
func WithPersistHook(fn func()) TaskStoreOption {
	return func(s *TaskStore) { s.onPersist = fn }
}

// OnPersist replaces the hook run right before each slot write.
func (s *TaskStore) OnPersist(fn func()) {
	s.onPersist = fn
}

// NewTaskStore creates an empty store over the tasks slot of store.
// Call Load before use.
func NewTaskStore(store kv.KV, opts ...TaskStoreOption) *TaskStore {
	s := &TaskStore{
		slot:   kv.NewSlot[[]task.Record](store, SlotTasks),
		clock:  time.Now,
		loc:    time.Local,
		seed:   true,
		log:    zerolog.Nop(),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the slot's content. When the slot is
// absent or cannot be decoded, the store starts from the seed tasks (or an
// empty list when seeding is disabled) and persists that immediately.
// Only storage read failures are returned.
func (s *TaskStore) Load(ctx context.Context) error {
	raw, found, err := s.slot.Raw(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	if found {
		tasks, err := s.decode(raw)
		if err == nil {
			s.tasks = tasks
			s.nextID = task.MaxID(tasks) + 1
			s.log.Debug().Ctx(ctx).Int("count", len(tasks)).Msg("tasks loaded")
			return nil
		}
		s.log.Warn().Ctx(ctx).Err(err).Msg("stored tasks are unreadable, starting over")
	}

	s.tasks = nil
	if s.seed {
		s.tasks = task.Seed(s.now())
	}
	s.nextID = task.MaxID(s.tasks) + 1

	return s.persist(ctx)
}

func (s *TaskStore) decode(raw json.RawMessage) ([]task.Task, error) {
	var records []task.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return task.Decode(records, s.now(), s.loc)
}

// Reload re-reads the slot after an external write. Unlike Load, the id
// counter never moves backwards and undecodable content leaves the current
// list untouched.
func (s *TaskStore) Reload(ctx context.Context) error {
	raw, found, err := s.slot.Raw(ctx)
	if err != nil {
		return fmt.Errorf("reload tasks: %w", err)
	}
	if !found {
		return nil
	}

	tasks, err := s.decode(raw)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("ignoring unreadable external write")
		return nil
	}

	s.tasks = tasks
	s.nextID = max(s.nextID, task.MaxID(tasks)+1)
	return nil
}

// Create appends a new task. Blank text returns task.ErrEmptyText and
// changes nothing. A persistence failure is returned but the task remains
// in memory.
func (s *TaskStore) Create(ctx context.Context, text string, typ task.Type, priority task.Priority, deadline *time.Time) (task.Task, error) {
	text, err := task.NormalizeText(text)
	if err != nil {
		return task.Task{}, err
	}

	t := task.Task{
		ID:        s.nextID,
		Text:      text,
		CreatedAt: s.now().Truncate(time.Millisecond),
		Type:      typ,
		Priority:  priority,
		Deadline:  task.NormalizeDeadline(deadline),
	}
	s.nextID++
	s.tasks = append(s.tasks, t)

	s.log.Debug().Ctx(ctx).Int("id", t.ID).Msg("task created")
	return t.Clone(), s.persist(ctx)
}

// Toggle flips a task's completion. Unknown ids are ignored.
func (s *TaskStore) Toggle(ctx context.Context, id int) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.persist(ctx)
}

// Update overwrites a task's editable fields. Blank text returns
// task.ErrEmptyText and leaves the task as it was. Unknown ids are ignored.
func (s *TaskStore) Update(ctx context.Context, id int, text string, typ task.Type, priority task.Priority, deadline *time.Time) error {
	text, err := task.NormalizeText(text)
	if err != nil {
		return err
	}

	i := s.index(id)
	if i < 0 {
		return nil
	}

	t := &s.tasks[i]
	t.Text = text
	t.Type = typ
	t.Priority = priority
	t.Deadline = task.NormalizeDeadline(deadline)

	return s.persist(ctx)
}

// Delete removes a task. Unknown ids are ignored.
func (s *TaskStore) Delete(ctx context.Context, id int) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.persist(ctx)
}

// Replace swaps the whole list, as when importing. Ids are kept as given;
// the counter continues above the highest one. Ids must be positive and
// unique and text must not be blank, otherwise the current list is kept and
// an error wrapping task.ErrInvalidID or task.ErrEmptyText is returned.
func (s *TaskStore) Replace(ctx context.Context, tasks []task.Task) error {
	next := task.CloneAll(tasks)
	seen := make(map[int]struct{}, len(next))
	for i := range next {
		t := &next[i]
		if t.ID <= 0 {
			return fmt.Errorf("task at index %d: %w %d", i, task.ErrInvalidID, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("task at index %d: %w %d (duplicate)", i, task.ErrInvalidID, t.ID)
		}
		seen[t.ID] = struct{}{}

		text, err := task.NormalizeText(t.Text)
		if err != nil {
			return fmt.Errorf("task %d: %w", t.ID, err)
		}
		t.Text = text
	}

	s.tasks = next
	s.nextID = max(s.nextID, task.MaxID(s.tasks)+1)
	s.log.Debug().Ctx(ctx).Int("count", len(next)).Msg("tasks replaced")
	return s.persist(ctx)
}

// Tasks returns a copy of the current list in insertion order.
func (s *TaskStore) Tasks() []task.Task {
	return task.CloneAll(s.tasks)
}

// Get returns a copy of the task with id.
func (s *TaskStore) Get(id int) (task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// NextID returns the id the next created task will get.
func (s *TaskStore) NextID() int {
	return s.nextID
}

// Snapshot runs the view pipeline over the current list.
func (s *TaskStore) Snapshot(state view.State, now time.Time) view.Snapshot {
	return view.Build(s.tasks, state, now)
}

// Now returns the store's clock reading.
func (s *TaskStore) Now() time.Time {
	return s.now()
}

func (s *TaskStore) now() time.Time {
	return s.clock().In(s.loc)
}

func (s *TaskStore) index(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) persist(ctx context.Context) error {
	if s.onPersist != nil {
		s.onPersist()
	}
	if err := s.slot.Save(ctx, task.Encode(s.tasks)); err != nil {
		s.log.Error().Ctx(ctx).Err(err).Msg("failed to persist tasks")
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
