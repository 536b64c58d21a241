// Package validate provides shared validation functions for user input.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskboard/internal/core/dates"
	"github.com/colonyops/taskboard/internal/core/task"
)

// TaskText validates a description is non-empty after trimming whitespace.
func TaskText(text string) error {
	if _, err := task.NormalizeText(text); err != nil {
		return fmt.Errorf("task description cannot be empty")
	}
	return nil
}

// Deadline validates optional YYYY-MM-DD input.
func Deadline(s string) error {
	if _, err := dates.ParseDate(s, time.Local); err != nil {
		return fmt.Errorf("deadline must be YYYY-MM-DD")
	}
	return nil
}

// Priority validates a user-supplied priority. Stored data may carry
// unknown priorities, but new input must use a built-in one.
func Priority(s string) error {
	if !task.Priority(s).IsKnown() {
		return fmt.Errorf("priority must be one of %v", task.Priorities())
	}
	return nil
}

// Type validates a task type is non-blank. Types are an open set.
func Type(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("type is required")
	}
	return nil
}

// TaskInput validates every editable field, reporting each failure by field name.
func TaskInput(text, typ, priority, deadline string) error {
	return criterio.ValidateStruct(
		criterio.Run("text", text, TaskText),
		criterio.Run("type", typ, Type),
		criterio.Run("priority", priority, Priority),
		criterio.Run("deadline", deadline, Deadline),
	)
}
