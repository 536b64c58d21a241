package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/dates"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/core/validate"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *taskboard.App

	// flags
	typ         string
	priority    string
	deadline    string
	interactive bool
	jsonOutput  bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *taskboard.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "taskboard add <text> [--type <type>] [--priority <priority>] [--deadline YYYY-MM-DD] [-i]",
		Description: `Adds a task to the board. Remaining arguments are joined into the task text.

Daily, weekly and monthly tasks without --deadline get one a day, a week or a
month out, the same default the add form in the board fills in.

Examples:
  taskboard add Water the plants
  taskboard add "Quarterly report" --type monthly --priority high
  taskboard add -i`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "task type (general, daily, weekly, monthly)",
				Value:       string(task.TypeGeneral),
				Destination: &cmd.typ,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (low, medium, high, urgent)",
				Value:       string(task.PriorityMedium),
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "deadline",
				Aliases:     []string{"d"},
				Usage:       "deadline as YYYY-MM-DD",
				Destination: &cmd.deadline,
			},
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "fill in the task with a form",
				Destination: &cmd.interactive,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the created task as a JSON line",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	text := strings.Join(c.Args().Slice(), " ")

	if cmd.interactive {
		if err := cmd.runForm(&text); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if err := validate.TaskInput(text, cmd.typ, cmd.priority, cmd.deadline); err != nil {
		return err
	}

	now := cmd.app.Tasks.Now()
	typ := task.Type(cmd.typ)

	deadline, err := dates.ParseDate(cmd.deadline, now.Location())
	if err != nil {
		return err
	}
	if deadline == nil {
		deadline = task.DefaultDeadline(typ, now)
	}

	t, err := cmd.app.Tasks.Create(ctx, text, typ, task.Priority(cmd.priority), deadline)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, newTaskLine(rowFor(cmd.app, t)))
	}

	_, _ = fmt.Fprintf(out, "added task %d\n", t.ID)
	return nil
}

func (cmd *AddCmd) runForm(text *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("What needs to be done?").
				Validate(validate.TaskText).
				Value(text),
			huh.NewSelect[string]().
				Title("Type").
				Options(stringOptions(task.Types())...).
				Value(&cmd.typ),
			huh.NewSelect[string]().
				Title("Priority").
				Options(stringOptions(task.Priorities())...).
				Value(&cmd.priority),
			huh.NewInput().
				Title("Deadline").
				Description("YYYY-MM-DD, leave empty for the type's default").
				Validate(validate.Deadline).
				Value(&cmd.deadline),
		),
	).WithTheme(huh.ThemeCharm()).Run()
}

func stringOptions[T ~string](values []T) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), string(v))
	}
	return opts
}
