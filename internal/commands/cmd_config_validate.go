package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type ConfigCmd struct {
	flags *Flags
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration utilities",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate the configuration file",
				UsageText: "triage config validate",
				Action:    cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runValidate(_ context.Context, _ *cli.Command) error {
	if err := cmd.flags.Config.Validate(); err != nil {
		return err
	}
	fmt.Printf("%s is valid\n", cmd.flags.ConfigPath)
	return nil
}
