package view

import (
	"math"
	"time"

	"github.com/colonyops/taskboard/internal/core/dates"
	"github.com/colonyops/taskboard/internal/core/task"
)

// Bucket counts completion within a subset of tasks.
type Bucket struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Percent   int `json:"percent"`
}

// PriorityCount is one slice of the priority chart.
type PriorityCount struct {
	Priority task.Priority `json:"priority"`
	Count    int           `json:"count"`
}

// Completion is the completed/pending split for the completion chart.
type Completion struct {
	Chart     Chart `json:"chart"`
	Completed int   `json:"completed"`
	Pending   int   `json:"pending"`
}

// Stats are the aggregates computed over the full, unfiltered task list.
type Stats struct {
	Total      int             `json:"total"`
	Active     int             `json:"active"`
	Completed  int             `json:"completed"`
	Percent    int             `json:"percent"`
	Daily      Bucket          `json:"daily"`
	Weekly     Bucket          `json:"weekly"`
	Priorities []PriorityCount `json:"priorities"`
	Completion Completion      `json:"completion"`
}

// ComputeStats aggregates tasks. chart picks the completion chart bucket.
func ComputeStats(tasks []task.Task, chart Chart, now time.Time) Stats {
	if chart == "" {
		chart = ChartDaily
	}

	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	s.Percent = percent(s.Completed, s.Total)

	s.Daily = bucket(tasks, func(t task.Task) bool { return relevantIn(t, now, dates.SameDay) })
	s.Weekly = bucket(tasks, func(t task.Task) bool { return relevantIn(t, now, dates.SameWeek) })
	s.Priorities = PriorityDistribution(tasks)
	s.Completion = CompletionSplit(tasks, chart, now)

	return s
}

// PriorityDistribution counts tasks per known priority in chart order
// (urgent, high, medium, low). Unknown priorities are not counted.
func PriorityDistribution(tasks []task.Task) []PriorityCount {
	order := task.ChartOrder()
	counts := make(map[task.Priority]int, len(order))
	for _, t := range tasks {
		if t.Priority.IsKnown() {
			counts[t.Priority]++
		}
	}

	out := make([]PriorityCount, 0, len(order))
	for _, p := range order {
		out = append(out, PriorityCount{Priority: p, Count: counts[p]})
	}
	return out
}

// CompletionSplit counts completed and pending tasks in the chart bucket.
func CompletionSplit(tasks []task.Task, chart Chart, now time.Time) Completion {
	c := Completion{Chart: chart}
	for _, t := range tasks {
		switch chart {
		case ChartDaily:
			if !relevantIn(t, now, dates.SameDay) {
				continue
			}
		case ChartWeekly:
			if !relevantIn(t, now, dates.SameWeek) {
				continue
			}
		}
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

func relevantIn(t task.Task, now time.Time, same func(a, b time.Time) bool) bool {
	date, ok := t.RelevantDate()
	return ok && same(date, now)
}

func bucket(tasks []task.Task, include func(task.Task) bool) Bucket {
	var b Bucket
	for _, t := range tasks {
		if !include(t) {
			continue
		}
		b.Total++
		if t.Completed {
			b.Completed++
		}
	}
	b.Percent = percent(b.Completed, b.Total)
	return b
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
