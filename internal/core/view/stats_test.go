package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/taskboard/internal/core/task"
)

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil, ChartDaily, now)

	assert.Zero(t, s.Total)
	assert.Zero(t, s.Percent)
	assert.Zero(t, s.Daily.Percent)
	assert.Zero(t, s.Weekly.Percent)
	assert.Len(t, s.Priorities, 4)
	assert.Equal(t, Completion{Chart: ChartDaily}, s.Completion)
}

func TestComputeStats(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Completed: true, CreatedAt: now, Priority: task.PriorityUrgent},
		{ID: 2, CreatedAt: now, Priority: task.PriorityUrgent},
		{ID: 3, Completed: true, CreatedAt: now.AddDate(0, 0, -30), Deadline: at(3), Priority: task.PriorityLow},
		{ID: 4, CreatedAt: now.AddDate(0, 0, -30), Priority: task.Priority("someday")},
	}

	s := ComputeStats(tasks, ChartWeekly, now)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 50, s.Percent)

	assert.Equal(t, Bucket{Total: 2, Completed: 1, Percent: 50}, s.Daily)
	assert.Equal(t, Bucket{Total: 3, Completed: 2, Percent: 67}, s.Weekly)

	assert.Equal(t, []PriorityCount{
		{Priority: task.PriorityUrgent, Count: 2},
		{Priority: task.PriorityHigh, Count: 0},
		{Priority: task.PriorityMedium, Count: 0},
		{Priority: task.PriorityLow, Count: 1},
	}, s.Priorities)

	assert.Equal(t, Completion{Chart: ChartWeekly, Completed: 2, Pending: 1}, s.Completion)
}

func TestCompletionSplit_Modes(t *testing.T) {
	tasks := []task.Task{
		{ID: 1, Completed: true, CreatedAt: now},
		{ID: 2, CreatedAt: now, Deadline: at(2)},
		{ID: 3, CreatedAt: now, Deadline: at(20)},
	}

	assert.Equal(t, Completion{Chart: ChartDaily, Completed: 1}, CompletionSplit(tasks, ChartDaily, now))
	assert.Equal(t, Completion{Chart: ChartWeekly, Completed: 1, Pending: 1}, CompletionSplit(tasks, ChartWeekly, now))
	assert.Equal(t, Completion{Chart: ChartAll, Completed: 1, Pending: 2}, CompletionSplit(tasks, ChartAll, now))
}

func TestPercentRounding(t *testing.T) {
	assert.Equal(t, 33, percent(1, 3))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 50, percent(1, 2))
	assert.Equal(t, 0, percent(0, 0))
	assert.Equal(t, 100, percent(7, 7))
}
