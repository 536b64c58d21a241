package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/view"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/iojson"
)

// taskLine is the JSON line printed for a task by ls, add and edit.
type taskLine struct {
	task.Record
	Overdue bool   `json:"overdue"`
	Added   string `json:"added"`
}

func newTaskLine(row view.TaskRow) taskLine {
	return taskLine{
		Record:  task.Encode([]task.Task{row.Task})[0],
		Overdue: row.Overdue,
		Added:   row.CreatedLabel,
	}
}

// rowFor derives the display fields of a single task.
func rowFor(app *taskboard.App, t task.Task) view.TaskRow {
	return view.Rows([]task.Task{t}, app.Tasks.Now())[0]
}

// argID parses the first positional argument as a task id.
func argID(c *cli.Command, usage string) (int, error) {
	if c.NArg() < 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", c.Args().First())
	}
	return id, nil
}

// lookup returns the task with id or task.ErrNotFound.
func lookup(app *taskboard.App, id int) (task.Task, error) {
	t, ok := app.Tasks.Get(id)
	if !ok {
		return task.Task{}, fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}
	return t, nil
}

// parseEnum returns value as T when it is one of allowed, or fallback when
// value is empty.
func parseEnum[T ~string](name, value string, allowed []T, fallback T) (T, error) {
	if value == "" {
		return fallback, nil
	}
	for _, a := range allowed {
		if T(value) == a {
			return a, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return fallback, fmt.Errorf("invalid %s %q: must be one of %s", name, value, strings.Join(names, ", "))
}

// writeTasks prints rows as a table on a terminal and as JSON lines
// otherwise.
func writeTasks(w io.Writer, rows []view.TaskRow, asJSON, nerdFonts bool) error {
	if asJSON || !iojson.IsTerminal(w) {
		for _, row := range rows {
			if err := iojson.WriteLine(w, newTaskLine(row)); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	_, err := fmt.Fprintln(w, renderTaskTable(rows, nerdFonts))
	return err
}

func renderTaskTable(rows []view.TaskRow, nerdFonts bool) string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		t := row.Task
		deadline := row.DeadlineText
		if row.Overdue {
			deadline += " (overdue)"
		}
		data = append(data, []string{
			strconv.Itoa(t.ID),
			styles.Checkbox(t.Completed, nerdFonts),
			t.Text,
			string(t.Type),
			string(t.Priority),
			deadline,
			row.CreatedLabel,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.DividerStyle).
		Headers("ID", "", "TASK", "TYPE", "PRIORITY", "DEADLINE", "ADDED").
		Rows(data...).
		StyleFunc(func(r, c int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case r == table.HeaderRow:
				return base.Inherit(styles.HeaderStyle)
			case c == 4:
				return base.Foreground(styles.PriorityColor(rows[r].Task.Priority))
			case c == 5 && rows[r].Overdue:
				return base.Inherit(styles.OverdueStyle)
			case rows[r].Task.Completed:
				return base.Inherit(styles.RowCompletedStyle)
			}
			return base
		}).
		String()
}
