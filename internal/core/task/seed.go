package task

import (
	"time"

	"github.com/colonyops/taskboard/internal/core/dates"
)

const day = 24 * time.Hour

// Seed returns the demonstration tasks shown on first run. Ids start at 1 and
// deadlines are relative to now.
func Seed(now time.Time) []Task {
	today := dates.DateOnly(now)
	tomorrow := today.AddDate(0, 0, 1)
	nextWeek := today.AddDate(0, 0, 7)
	nextMonth := today.AddDate(0, 1, 0)

	created := now.Truncate(time.Millisecond)

	return []Task{
		{
			ID:        1,
			Text:      "Complete project proposal",
			CreatedAt: created,
			Type:      TypeDaily,
			Priority:  PriorityHigh,
			Deadline:  &tomorrow,
		},
		{
			ID:        2,
			Text:      "Buy groceries for the week",
			Completed: true,
			CreatedAt: created.Add(-day),
			Type:      TypeWeekly,
			Priority:  PriorityMedium,
			Deadline:  ptr(today),
		},
		{
			ID:        3,
			Text:      "Schedule team meeting",
			CreatedAt: created.Add(-2 * day),
			Type:      TypeGeneral,
			Priority:  PriorityMedium,
			Deadline:  &nextWeek,
		},
		{
			ID:        4,
			Text:      "Review design mockups",
			CreatedAt: created,
			Type:      TypeDaily,
			Priority:  PriorityUrgent,
			Deadline:  ptr(today),
		},
		{
			ID:        5,
			Text:      "Prepare presentation slides",
			Completed: true,
			CreatedAt: created.Add(-3 * day),
			Type:      TypeWeekly,
			Priority:  PriorityLow,
			Deadline:  ptr(tomorrow),
		},
		{
			ID:        6,
			Text:      "Monthly budget review",
			CreatedAt: created,
			Type:      TypeMonthly,
			Priority:  PriorityHigh,
			Deadline:  &nextMonth,
		},
	}
}

func ptr(t time.Time) *time.Time { return &t }
