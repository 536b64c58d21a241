package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/internal/taskboard"
)

type ThemeCmd struct {
	flags *Flags
	app   *taskboard.App
}

// NewThemeCmd creates a new theme command
func NewThemeCmd(flags *Flags, app *taskboard.App) *ThemeCmd {
	return &ThemeCmd{flags: flags, app: app}
}

// Register adds the theme command to the application
func (cmd *ThemeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "theme",
		Usage:     "Show or set the color theme",
		UsageText: "taskboard theme [light|dark|toggle]",
		Description: `Without an argument, prints the stored theme. The choice is shared with the
board, which picks it up on its next reload.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ThemeCmd) run(ctx context.Context, c *cli.Command) error {
	var (
		mode styles.Mode
		err  error
	)

	switch arg := c.Args().First(); arg {
	case "":
		mode, err = cmd.app.Theme.Theme(ctx)
	case "toggle":
		mode, err = cmd.app.Theme.ToggleTheme(ctx)
	default:
		m, ok := styles.ParseMode(arg)
		if !ok {
			return fmt.Errorf("invalid theme %q: must be light, dark or toggle", arg)
		}
		mode, err = m, cmd.app.Theme.SetTheme(ctx, m)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, mode)
	return nil
}
