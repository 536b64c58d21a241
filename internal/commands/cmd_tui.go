package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/logging"
	"github.com/colonyops/taskboard/internal/data/db"
	"github.com/colonyops/taskboard/internal/data/watch"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/internal/tui"
	"github.com/colonyops/taskboard/pkg/profiler"
)

// selfWriteWindow is how long the watcher ignores events after the TUI
// writes the slot store itself.
const selfWriteWindow = 300 * time.Millisecond

type TuiCmd struct {
	flags *Flags
	app   *taskboard.App

	profilerPort int
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *taskboard.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("TASKBOARD_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive task board",
		UsageText: "taskboard tui",
		Description: `Opens the full-screen task board. This is also what runs when taskboard
is started without a command. Press ? inside the board for key bindings.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().Str("url", profServer.URL()).Msg("profiler endpoint available")
	}

	opts := tui.Options{Context: ctx}

	if cmd.app.DB != nil && cmd.app.Config.ShouldWatch() {
		watcher, err := watch.New(cmd.app.Config.DataDir, db.FileName, logging.Component("watch"))
		if err != nil {
			log.Warn().Err(err).Msg("live reload disabled")
		} else {
			defer func() { _ = watcher.Close() }()
			ignoreSelf := func() { watcher.Ignore(selfWriteWindow) }
			cmd.app.Tasks.OnPersist(ignoreSelf)
			cmd.app.Theme.OnPersist(ignoreSelf)
			opts.Changes = watcher.Subscribe(ctx)
		}
	}

	p := tea.NewProgram(tui.New(cmd.app, opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
