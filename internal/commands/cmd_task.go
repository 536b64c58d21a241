package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/dates"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/validate"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/iojson"
)

// TaskCmd implements the commands that act on a single task by id:
// toggle, edit and rm.
type TaskCmd struct {
	flags *Flags
	app   *taskboard.App

	// edit flags
	editText          string
	editType          string
	editPriority      string
	editDeadline      string
	editClearDeadline bool
	editJSON          bool
}

// NewTaskCmd creates the single-task commands.
func NewTaskCmd(flags *Flags, app *taskboard.App) *TaskCmd {
	return &TaskCmd{flags: flags, app: app}
}

// Register adds toggle, edit and rm to the application.
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		cmd.toggleCmd(),
		cmd.editCmd(),
		cmd.rmCmd(),
	)

	return app
}

func (cmd *TaskCmd) toggleCmd() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"done"},
		Usage:     "Mark a task done, or active again",
		UsageText: "taskboard toggle <id>",
		Action:    cmd.runToggle,
	}
}

func (cmd *TaskCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Change a task",
		UsageText: "taskboard edit <id> [--text <text>] [--type <type>] [--priority <priority>] [--deadline YYYY-MM-DD | --clear-deadline]",
		Description: `Changes the given fields of a task and leaves the others as they are.

Examples:
  taskboard edit 3 --priority urgent
  taskboard edit 3 --text "Schedule team offsite" --deadline 2026-11-02
  taskboard edit 3 --clear-deadline`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "text",
				Usage:       "new task text",
				Destination: &cmd.editText,
			},
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "new task type",
				Destination: &cmd.editType,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "new priority (low, medium, high, urgent)",
				Destination: &cmd.editPriority,
			},
			&cli.StringFlag{
				Name:        "deadline",
				Aliases:     []string{"d"},
				Usage:       "new deadline as YYYY-MM-DD",
				Destination: &cmd.editDeadline,
			},
			&cli.BoolFlag{
				Name:        "clear-deadline",
				Usage:       "remove the deadline",
				Destination: &cmd.editClearDeadline,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the updated task as a JSON line",
				Destination: &cmd.editJSON,
			},
		},
		Action: cmd.runEdit,
	}
}

func (cmd *TaskCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"delete"},
		Usage:     "Delete a task",
		UsageText: "taskboard rm <id>",
		Action:    cmd.runRm,
	}
}

func (cmd *TaskCmd) runToggle(ctx context.Context, c *cli.Command) error {
	id, err := argID(c, "taskboard toggle <id>")
	if err != nil {
		return err
	}
	if _, err := lookup(cmd.app, id); err != nil {
		return err
	}

	if err := cmd.app.Tasks.Toggle(ctx, id); err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}

	t, _ := cmd.app.Tasks.Get(id)
	state := "active"
	if t.Completed {
		state = "completed"
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "task %d %s\n", id, state)
	return nil
}

func (cmd *TaskCmd) runEdit(ctx context.Context, c *cli.Command) error {
	id, err := argID(c, "taskboard edit <id> [flags]")
	if err != nil {
		return err
	}
	t, err := lookup(cmd.app, id)
	if err != nil {
		return err
	}

	if c.IsSet("deadline") && cmd.editClearDeadline {
		return errors.New("--deadline and --clear-deadline are mutually exclusive")
	}

	text, typ, priority := t.Text, string(t.Type), string(t.Priority)
	deadline := ""
	if t.Deadline != nil {
		deadline = dates.FormatDate(*t.Deadline)
	}

	if c.IsSet("text") {
		text = cmd.editText
	}
	if c.IsSet("type") {
		typ = cmd.editType
	}
	if c.IsSet("priority") {
		priority = cmd.editPriority
		if err := validate.Priority(priority); err != nil {
			return err
		}
	}
	if c.IsSet("deadline") {
		deadline = cmd.editDeadline
	}
	if cmd.editClearDeadline {
		deadline = ""
	}

	// Stored tasks may carry an unknown priority; only a new one is checked.
	if err := validate.TaskInput(text, typ, string(task.PriorityMedium), deadline); err != nil {
		return err
	}

	due, err := dates.ParseDate(deadline, cmd.app.Tasks.Now().Location())
	if err != nil {
		return err
	}

	if err := cmd.app.Tasks.Update(ctx, id, text, task.Type(typ), task.Priority(priority), due); err != nil {
		return fmt.Errorf("edit task: %w", err)
	}

	out := c.Root().Writer
	if cmd.editJSON {
		t, _ = cmd.app.Tasks.Get(id)
		return iojson.WriteLine(out, newTaskLine(rowFor(cmd.app, t)))
	}

	_, _ = fmt.Fprintf(out, "task %d updated\n", id)
	return nil
}

func (cmd *TaskCmd) runRm(ctx context.Context, c *cli.Command) error {
	id, err := argID(c, "taskboard rm <id>")
	if err != nil {
		return err
	}
	if _, err := lookup(cmd.app, id); err != nil {
		return err
	}

	if err := cmd.app.Tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "task %d deleted\n", id)
	return nil
}
