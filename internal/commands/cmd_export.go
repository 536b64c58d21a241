package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/taskboard"
	"github.com/colonyops/taskboard/pkg/iojson"
)

// TransferCmd implements export and import of the whole task list in the
// persisted JSON shape.
type TransferCmd struct {
	flags *Flags
	app   *taskboard.App

	input iojson.FileReader[[]task.Record]
}

// NewTransferCmd creates the export and import commands.
func NewTransferCmd(flags *Flags, app *taskboard.App) *TransferCmd {
	return &TransferCmd{flags: flags, app: app}
}

// Register adds export and import to the application.
func (cmd *TransferCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "export",
			Usage:     "Print all tasks as JSON",
			UsageText: "taskboard export > tasks.json",
			Action:    cmd.runExport,
		},
		&cli.Command{
			Name:      "import",
			Usage:     "Replace all tasks with a JSON export",
			UsageText: "taskboard import [-f tasks.json]",
			Description: `Replaces the task list with the records read from a file or stdin. The
input has the shape printed by export. Deadlines may be full timestamps or
YYYY-MM-DD; a missing createdAt becomes the import time.`,
			Flags:  []cli.Flag{cmd.input.Flag()},
			Action: cmd.runImport,
		},
	)

	return app
}

func (cmd *TransferCmd) runExport(_ context.Context, c *cli.Command) error {
	records := task.Encode(cmd.app.Tasks.Tasks())
	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, records)
}

func (cmd *TransferCmd) runImport(ctx context.Context, c *cli.Command) error {
	records, err := cmd.input.Read(c.Root().Reader)
	if err != nil {
		return err
	}

	now := cmd.app.Tasks.Now()
	tasks, err := task.Decode(records, now, now.Location())
	if err != nil {
		return fmt.Errorf("import tasks: %w", err)
	}

	if err := cmd.app.Tasks.Replace(ctx, tasks); err != nil {
		return fmt.Errorf("import tasks: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "imported %d tasks\n", len(tasks))
	return nil
}
