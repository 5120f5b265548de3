package builtin

import (
	"context"

	"github.com/mwantia/webtop/command"
)

type ClearCommand struct {
}

// Name returns the command identifier
func (c *ClearCommand) Name() string {
	return "clear"
}

// Description returns human-readable help text
func (c *ClearCommand) Description() string {
	return "Clear the terminal transcript"
}

// Usage returns a usage string for help
func (c *ClearCommand) Usage() string {
	return "clear"
}

// Execute runs the command against the session environment
func (c *ClearCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	return &command.Result{Clear: true}, nil
}
