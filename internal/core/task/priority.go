package task

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities returns the known priorities in ascending rank.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// ChartOrder is the order priority counts are reported in for charts.
func ChartOrder() []Priority {
	return []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
}

// Rank returns the sort rank (low=0 .. urgent=3). Unknown priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	default:
		return 0
	}
}

// Color returns the fixed display color as a hex string, or "" when unknown.
func (p Priority) Color() string {
	switch p {
	case PriorityUrgent:
		return "#FF0000"
	case PriorityHigh:
		return "#FF4757"
	case PriorityMedium:
		return "#FFA726"
	case PriorityLow:
		return "#1DBF73"
	default:
		return ""
	}
}

// IsKnown reports whether p is one of the built-in priorities.
func (p Priority) IsKnown() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
