package task

import (
	"fmt"
	"time"

	"github.com/colonyops/taskboard/internal/core/dates"
)

// timestampLayout is ISO-8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is the persisted JSON shape of a task.
type Record struct {
	ID        int     `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	CreatedAt string  `json:"createdAt"`
	Type      string  `json:"type"`
	Priority  string  `json:"priority"`
	Deadline  *string `json:"deadline"`
}

// Encode converts tasks to their persisted form.
func Encode(tasks []Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		r := Record{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.UTC().Format(timestampLayout),
			Type:      string(t.Type),
			Priority:  string(t.Priority),
		}
		if t.Deadline != nil {
			s := t.Deadline.UTC().Format(timestampLayout)
			r.Deadline = &s
		}
		records = append(records, r)
	}
	return records
}

// Decode reconstructs tasks from persisted records. Timestamps are converted
// into loc; deadlines are normalized to midnight. A missing createdAt falls
// back to now.
func Decode(records []Record, now time.Time, loc *time.Location) ([]Task, error) {
	if loc == nil {
		loc = time.Local
	}

	tasks := make([]Task, 0, len(records))
	for i, r := range records {
		t := Task{
			ID:        r.ID,
			Text:      r.Text,
			Completed: r.Completed,
			Type:      Type(r.Type),
			Priority:  Priority(r.Priority),
		}

		if r.CreatedAt == "" {
			t.CreatedAt = now.In(loc)
		} else {
			created, err := parseTimestamp(r.CreatedAt, loc)
			if err != nil {
				return nil, fmt.Errorf("task %d (index %d) createdAt: %w", r.ID, i, err)
			}
			t.CreatedAt = created
		}

		if r.Deadline != nil && *r.Deadline != "" {
			deadline, err := parseTimestamp(*r.Deadline, loc)
			if err != nil {
				return nil, fmt.Errorf("task %d (index %d) deadline: %w", r.ID, i, err)
			}
			t.Deadline = NormalizeDeadline(&deadline)
		}

		tasks = append(tasks, t)
	}

	return tasks, nil
}

// MaxID returns the largest id in tasks, or 0 when empty.
func MaxID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation(dates.DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	return t, nil
}
