package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
	"github.com/mwantia/webtop/data"
)

type ChmodCommand struct {
}

// Name returns the command identifier
func (c *ChmodCommand) Name() string {
	return "chmod"
}

// Description returns human-readable help text
func (c *ChmodCommand) Description() string {
	return "Change permission modes, octal or rwx form"
}

// Usage returns a usage string for help
func (c *ChmodCommand) Usage() string {
	return "chmod <mode> <path...>"
}

// Execute runs the command against the session environment
func (c *ChmodCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("expected mode and path")
	}

	mode, err := data.ParseMode(args[0])
	if err != nil {
		return nil, err
	}

	for _, arg := range args[1:] {
		abs, err := env.Resolve(arg)
		if err != nil {
			return nil, err
		}
		if err := env.FS().Chmod(ctx, abs, mode); err != nil {
			return nil, err
		}
	}

	return &command.Result{}, nil
}
