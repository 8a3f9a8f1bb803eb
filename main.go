package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/triage/internal/api"
	"github.com/colonyops/triage/internal/commands"
	"github.com/colonyops/triage/internal/core/auth"
	"github.com/colonyops/triage/internal/core/config"
	"github.com/colonyops/triage/internal/core/styles"
	"github.com/colonyops/triage/internal/store"
	"github.com/colonyops/triage/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "triage",
		Usage:     "Explore and triage customer feedback from the terminal",
		UsageText: "triage [global options] command [command options]",
		Description: `Triage is a keyboard-driven dashboard for a feedback workspace: themes,
sub-themes, customer asks, and the raw mentions behind them.

Run 'triage' with no arguments to open the interactive board.
Run 'triage ls' for a scripted listing of the workspace's themes.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TRIAGE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("TRIAGE_LOG_FILE"),
				Value:       config.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TRIAGE_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "workspace",
				Aliases:     []string{"w"},
				Usage:       "workspace id (overrides config)",
				Sources:     cli.EnvVars("TRIAGE_WORKSPACE"),
				Destination: &flags.Workspace,
			},
			&cli.StringFlag{
				Name:        "backend-url",
				Usage:       "backend base URL (overrides config)",
				Sources:     cli.EnvVars("TRIAGE_BACKEND_URL"),
				Destination: &flags.BackendURL,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logCloser = closer
			flags.Log = logger

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Workspace != "" {
				cfg.Backend.Workspace = flags.Workspace
			}
			if flags.BackendURL != "" {
				cfg.Backend.URL = flags.BackendURL
			}
			if err := cfg.Validate(); err != nil {
				return ctx, err
			}
			flags.Config = cfg

			styles.SetTheme(cfg.TUI.Theme)

			session := auth.StaticSession{
				Workspace:   cfg.Backend.Workspace,
				BearerToken: cfg.Backend.Token(),
			}
			client := api.NewHTTPClient(cfg.Backend.URL, session)

			flags.Store = store.New(client, session, logger, store.Options{
				MaxAge:        cfg.Cache.MaxAge,
				IgnoreSources: cfg.Sources.Ignore,
			})

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)

	// Register TUI flags on root command.
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// The TUI is the default action when no subcommand is provided.
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'triage --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
