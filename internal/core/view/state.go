// Package view computes the filtered, sorted projection of the task list and
// the aggregate statistics shown alongside it. Nothing here mutates tasks.
package view

import "time"

// Status filters tasks by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Period restricts tasks by their relevant date.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Sort selects the list ordering.
type Sort string

const (
	SortNew      Sort = "new"
	SortOld      Sort = "old"
	SortPriority Sort = "priority"
	SortDeadline Sort = "deadline"
	SortAZ       Sort = "az"
	SortZA       Sort = "za"
)

// Chart selects the bucket used by the completion chart. It is independent
// from the list's period filter.
type Chart string

const (
	ChartDaily  Chart = "daily"
	ChartWeekly Chart = "weekly"
	ChartAll    Chart = "all"
)

// Statuses returns all status filters in display order.
func Statuses() []Status { return []Status{StatusAll, StatusActive, StatusCompleted} }

// Periods returns all period filters in display order.
func Periods() []Period { return []Period{PeriodAll, PeriodToday, PeriodWeek, PeriodMonth} }

// Sorts returns all sort orders in display order.
func Sorts() []Sort {
	return []Sort{SortNew, SortOld, SortPriority, SortDeadline, SortAZ, SortZA}
}

// Charts returns all completion chart buckets in display order.
func Charts() []Chart { return []Chart{ChartDaily, ChartWeekly, ChartAll} }

func (s Status) IsValid() bool { return contains(Statuses(), s) }
func (p Period) IsValid() bool { return contains(Periods(), p) }
func (s Sort) IsValid() bool   { return contains(Sorts(), s) }
func (c Chart) IsValid() bool  { return contains(Charts(), c) }

// Label returns a short human label for the sort order.
func (s Sort) Label() string {
	switch s {
	case SortOld:
		return "oldest"
	case SortPriority:
		return "priority"
	case SortDeadline:
		return "deadline"
	case SortAZ:
		return "A-Z"
	case SortZA:
		return "Z-A"
	default:
		return "newest"
	}
}

// State holds the view parameters chosen by the user.
type State struct {
	Status Status
	Period Period
	Sort   Sort
	Query  string
	Chart  Chart
}

// DefaultState returns the state shown on startup.
func DefaultState() State {
	return State{
		Status: StatusAll,
		Period: PeriodAll,
		Sort:   SortNew,
		Chart:  ChartDaily,
	}
}

// normalized fills zero values with defaults.
func (s State) normalized() State {
	d := DefaultState()
	if s.Status == "" {
		s.Status = d.Status
	}
	if s.Period == "" {
		s.Period = d.Period
	}
	if s.Sort == "" {
		s.Sort = d.Sort
	}
	if s.Chart == "" {
		s.Chart = d.Chart
	}
	return s
}

// Next returns the value following cur in values, wrapping around.
func Next[T comparable](values []T, cur T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// Snapshot bundles everything a presenter needs for one render.
type Snapshot struct {
	Tasks []TaskRow
	Stats Stats
	State State
	Now   time.Time
}

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
