// Package commands wires the CLI surface: global flags, the TUI default
// action, and the non-interactive subcommands.
package commands

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/triage/internal/core/config"
	"github.com/colonyops/triage/internal/store"
)

// Flags carries global flag values plus the dependencies the Before hook
// builds for every command.
type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	Workspace    string
	BackendURL   string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands.
	Config *config.Config
	// Store is the exploration state container, bound to the backend.
	Store *store.Store
	// Log is the root logger.
	Log zerolog.Logger
}
