package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/core/view"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type StatsCmd struct {
	flags *Flags
	app   *taskboard.App

	// flags
	chart      string
	jsonOutput bool
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *taskboard.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show completion and priority statistics",
		UsageText: "taskboard stats [--chart <daily|weekly|all>] [--json]",
		Description: `Prints the aggregates shown in the board's stats panel. They always cover
every task, regardless of filters. --chart picks which tasks the completion
split counts.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "chart",
				Usage:       "completion chart bucket (daily, weekly, all)",
				Destination: &cmd.chart,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(_ context.Context, c *cli.Command) error {
	state := cmd.app.Config.InitialState()

	var err error
	if state.Chart, err = parseEnum("chart", cmd.chart, view.Charts(), state.Chart); err != nil {
		return err
	}

	stats := cmd.app.Tasks.Snapshot(state, cmd.app.Tasks.Now()).Stats

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, stats)
	}

	writeStats(out, stats)
	return nil
}

func writeStats(w io.Writer, s view.Stats) {
	label := func(name string) string {
		return styles.StatLabelStyle.Render(fmt.Sprintf("%-12s", name))
	}
	bucket := func(b view.Bucket) string {
		return fmt.Sprintf("%d/%d done (%d%%)", b.Completed, b.Total, b.Percent)
	}

	_, _ = fmt.Fprintf(w, "%s%d total, %d active, %d done (%d%%)\n",
		label("tasks"), s.Total, s.Active, s.Completed, s.Percent)
	_, _ = fmt.Fprintf(w, "%s%s\n", label("today"), bucket(s.Daily))
	_, _ = fmt.Fprintf(w, "%s%s\n", label("this week"), bucket(s.Weekly))
	_, _ = fmt.Fprintf(w, "%s%d completed, %d pending (%s)\n",
		label("completion"), s.Completion.Completed, s.Completion.Pending, s.Completion.Chart)

	parts := make([]string, len(s.Priorities))
	for i, pc := range s.Priorities {
		parts[i] = styles.PriorityStyle(pc.Priority).Render(fmt.Sprintf("%s %d", pc.Priority, pc.Count))
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", label("priority"), strings.Join(parts, ", "))
}
