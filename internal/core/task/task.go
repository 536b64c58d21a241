// Package task defines the task domain model.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/colonyops/taskboard/internal/core/dates"
)

var (
	// ErrEmptyText is returned when a task is created or saved with blank text.
	ErrEmptyText = errors.New("task text cannot be empty")
	// ErrNotFound is returned by lookups for an id that does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidID is returned when a task list carries a non-positive or
	// duplicate id.
	ErrInvalidID = errors.New("invalid task id")
)

// Type classifies a task's cadence. The set is open; unknown values are kept
// as given.
type Type string

const (
	TypeGeneral Type = "general"
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
)

// Types returns the known types in display order.
func Types() []Type {
	return []Type{TypeGeneral, TypeDaily, TypeWeekly, TypeMonthly}
}

// IsKnown reports whether t is one of the built-in types.
func (t Type) IsKnown() bool {
	switch t {
	case TypeGeneral, TypeDaily, TypeWeekly, TypeMonthly:
		return true
	}
	return false
}

// Task is a single tracked item.
type Task struct {
	ID        int
	Text      string
	Completed bool
	CreatedAt time.Time
	Type      Type
	Priority  Priority
	Deadline  *time.Time
}

// RelevantDate returns the deadline when set, else the creation time.
// ok is false when the task has neither.
func (t Task) RelevantDate() (time.Time, bool) {
	if t.Deadline != nil {
		return *t.Deadline, true
	}
	if t.CreatedAt.IsZero() {
		return time.Time{}, false
	}
	return t.CreatedAt, true
}

// Overdue reports whether an incomplete task's deadline day is before today.
func (t Task) Overdue(now time.Time) bool {
	if t.Completed || t.Deadline == nil {
		return false
	}
	return dates.DateOnly(*t.Deadline).Before(dates.DateOnly(now.In(t.Deadline.Location())))
}

// Clone returns a deep copy so callers never share the deadline pointer.
func (t Task) Clone() Task {
	if t.Deadline != nil {
		d := *t.Deadline
		t.Deadline = &d
	}
	return t
}

// NormalizeText trims text and returns ErrEmptyText when nothing remains.
func NormalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

// NormalizeDeadline strips the time component of a deadline.
func NormalizeDeadline(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	day := dates.DateOnly(*d)
	return &day
}

// DefaultDeadline returns the deadline pre-filled for a task type when the
// user left it empty: daily is due today, weekly in seven days, monthly in a
// month. Other types get none.
func DefaultDeadline(typ Type, now time.Time) *time.Time {
	today := dates.DateOnly(now)
	var d time.Time
	switch typ {
	case TypeDaily:
		d = today
	case TypeWeekly:
		d = today.AddDate(0, 0, 7)
	case TypeMonthly:
		d = today.AddDate(0, 1, 0)
	default:
		return nil
	}
	return &d
}

// CloneAll deep-copies a slice of tasks.
func CloneAll(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
