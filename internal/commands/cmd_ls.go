package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/view"
	"github.com/colonyops/taskboard/internal/taskboard"
)

type LsCmd struct {
	flags *Flags
	app   *taskboard.App

	// flags
	status     string
	period     string
	sort       string
	search     string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *taskboard.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks",
		UsageText: "taskboard ls [--status <status>] [--period <period>] [--sort <sort>] [--search <text>] [--json]",
		Description: `Lists tasks through the same filters as the board: period, then status, then
search, then sort. Sort and period default to the configured TUI defaults.

Prints a table on a terminal and JSON lines when piped or with --json.

Examples:
  taskboard ls --period today
  taskboard ls --status active --sort priority
  taskboard ls --search review --json | jq .id`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "filter by status (all, active, completed)",
				Destination: &cmd.status,
			},
			&cli.StringFlag{
				Name:        "period",
				Aliases:     []string{"p"},
				Usage:       "filter by period (all, today, week, month)",
				Destination: &cmd.period,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "sort order (new, old, priority, deadline, az, za)",
				Destination: &cmd.sort,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"q"},
				Usage:       "case-insensitive text search",
				Destination: &cmd.search,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	state, err := cmd.state()
	if err != nil {
		return err
	}

	snap := cmd.app.Tasks.Snapshot(state, cmd.app.Tasks.Now())
	if len(snap.Tasks) == 0 {
		if !cmd.jsonOutput {
			_, _ = fmt.Fprintln(c.Root().ErrWriter, "No tasks found")
		}
		return nil
	}

	return writeTasks(c.Root().Writer, snap.Tasks, cmd.jsonOutput, cmd.app.Config.TUI.NerdFonts)
}

func (cmd *LsCmd) state() (view.State, error) {
	s := cmd.app.Config.InitialState()
	var err error

	if s.Status, err = parseEnum("status", cmd.status, view.Statuses(), view.StatusAll); err != nil {
		return s, err
	}
	if s.Period, err = parseEnum("period", cmd.period, view.Periods(), s.Period); err != nil {
		return s, err
	}
	if s.Sort, err = parseEnum("sort", cmd.sort, view.Sorts(), s.Sort); err != nil {
		return s, err
	}
	s.Query = cmd.search

	return s, nil
}
