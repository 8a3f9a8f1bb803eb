package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/triage/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command.
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List the workspace's themes",
		UsageText: "triage ls [--json]",
		Description: `Displays a table of the workspace's themes with their sub-theme and
feedback counts.

Use --json for machine-readable output.`,
		Flags: []cli.Flag{
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

func (cmd *LsCmd) run(ctx context.Context, _ *cli.Command) error {
	if err := cmd.flags.Store.Initialize(ctx); err != nil {
		return err
	}

	themes := cmd.flags.Store.Themes()
	if cmd.jsonOutput {
		return iojson.Write(themes)
	}

	if len(themes) == 0 {
		fmt.Fprintln(os.Stderr, "No themes found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSUB-THEMES\tFEEDBACK\tLOCKED")
	for _, t := range themes {
		locked := ""
		if t.Locked {
			locked = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", t.Name, t.SubThemeCount, t.FeedbackCount, locked)
	}
	return w.Flush()
}
