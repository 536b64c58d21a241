package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskboard/internal/core/styles"
	"github.com/colonyops/taskboard/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "taskboard config validate [options]",
				Description: "Validates the configuration file, checking option values and the data directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationResult is the JSON output of config validate.
type validationResult struct {
	Valid      bool   `json:"valid"`
	ConfigPath string `json:"config_path"`
	DataDir    string `json:"data_dir"`
	Error      string `json:"error,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)

	result := validationResult{
		Valid:      err == nil,
		ConfigPath: cmd.flags.ConfigPath,
		DataDir:    cmd.flags.Config.DataDir,
	}
	if err != nil {
		result.Error = err.Error()
	}

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		writeValidation(c.Root().Writer, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func writeValidation(w io.Writer, r validationResult) {
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.StatLabelStyle.Render("config  "), r.ConfigPath)
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.StatLabelStyle.Render("data dir"), r.DataDir)
	_, _ = fmt.Fprintln(w)

	if r.Valid {
		_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render("Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render("Configuration is invalid"))
	_, _ = fmt.Fprintf(w, "  %s\n", r.Error)
}
