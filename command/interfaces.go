// Package command implements the terminal side of the desktop: a registry
// of named commands, an engine that turns an input line into executed
// operations against the filesystem, and the supporting pieces a terminal
// frontend needs (completion, input history, session stacking).
package command

import (
	"context"
)

// Command represents an executable command within the terminal.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls [-la] [path]")
	Usage() string

	// Execute runs the command against the session environment.
	// Args carries the tokens after the command name, already glob expanded.
	Execute(ctx context.Context, env *Env, args []string) (*Result, error)
}

// Result is what a command hands back to the engine.
type Result struct {
	// Output lines for the transcript, or for the redirect target.
	Output []string

	// Clear requests a transcript reset instead of appending the entry.
	Clear bool
}
