package view

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/colonyops/taskboard/internal/core/dates"
	"github.com/colonyops/taskboard/internal/core/task"
)

// TaskRow is a task plus the derived fields a row renders.
type TaskRow struct {
	Task         task.Task
	Overdue      bool
	CreatedLabel string // "today", "yesterday", "3 days ago", "10/02/2026"
	DeadlineText string // YYYY-MM-DD or "no deadline"
}

// Build runs the pipeline and computes aggregates for one render.
func Build(tasks []task.Task, state State, now time.Time) Snapshot {
	state = state.normalized()
	return Snapshot{
		Tasks: Rows(Apply(tasks, state, now), now),
		Stats: ComputeStats(tasks, state.Chart, now),
		State: state,
		Now:   now,
	}
}

// Apply filters and sorts a copy of tasks. Stages run in order: period,
// status, search, sort.
func Apply(tasks []task.Task, state State, now time.Time) []task.Task {
	state = state.normalized()

	out := make([]task.Task, 0, len(tasks))
	query := strings.ToLower(strings.TrimSpace(state.Query))
	for _, t := range tasks {
		if !MatchesPeriod(t, state.Period, now) {
			continue
		}
		if !MatchesStatus(t, state.Status) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Text), query) {
			continue
		}
		out = append(out, t.Clone())
	}

	SortTasks(out, state.Sort)
	return out
}

// MatchesPeriod reports whether a task's relevant date falls in period.
func MatchesPeriod(t task.Task, period Period, now time.Time) bool {
	if period == PeriodAll || period == "" {
		return true
	}

	date, ok := t.RelevantDate()
	if !ok {
		return false
	}

	switch period {
	case PeriodToday:
		return dates.SameDay(date, now)
	case PeriodWeek:
		return dates.SameWeek(date, now)
	case PeriodMonth:
		return dates.SameMonth(date, now)
	default:
		return true
	}
}

// MatchesStatus reports whether a task passes the status filter.
func MatchesStatus(t task.Task, status Status) bool {
	switch status {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

// SortTasks orders tasks in place. The sort is stable so equal keys keep
// their input order.
func SortTasks(tasks []task.Task, order Sort) {
	switch order {
	case SortOld:
		slices.SortStableFunc(tasks, func(a, b task.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortPriority:
		slices.SortStableFunc(tasks, func(a, b task.Task) int {
			return cmp.Compare(b.Priority.Rank(), a.Priority.Rank())
		})
	case SortDeadline:
		slices.SortStableFunc(tasks, compareDeadline)
	case SortAZ, SortZA:
		col := collate.New(language.English)
		slices.SortStableFunc(tasks, func(a, b task.Task) int {
			if order == SortZA {
				return col.CompareString(b.Text, a.Text)
			}
			return col.CompareString(a.Text, b.Text)
		})
	default:
		slices.SortStableFunc(tasks, func(a, b task.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// compareDeadline sorts ascending with missing deadlines last.
func compareDeadline(a, b task.Task) int {
	switch {
	case a.Deadline == nil && b.Deadline == nil:
		return 0
	case a.Deadline == nil:
		return 1
	case b.Deadline == nil:
		return -1
	default:
		return a.Deadline.Compare(*b.Deadline)
	}
}

// Rows derives the per-row display fields.
func Rows(tasks []task.Task, now time.Time) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		row := TaskRow{
			Task:         t,
			Overdue:      t.Overdue(now),
			CreatedLabel: dates.FriendlyLabel(t.CreatedAt, now),
			DeadlineText: "no deadline",
		}
		if t.Deadline != nil {
			row.DeadlineText = dates.FormatDate(*t.Deadline)
		}
		rows = append(rows, row)
	}
	return rows
}
