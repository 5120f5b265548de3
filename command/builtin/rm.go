package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
)

type RmCommand struct {
}

// Name returns the command identifier
func (r *RmCommand) Name() string {
	return "rm"
}

// Description returns human-readable help text
func (r *RmCommand) Description() string {
	return "Remove files permanently"
}

// Usage returns a usage string for help
func (r *RmCommand) Usage() string {
	return "rm [-r] <path...>"
}

// Execute runs the command against the session environment
func (r *RmCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	flags, paths := splitFlags(args)
	recursive := flags['r']

	if len(paths) == 0 {
		return nil, fmt.Errorf("missing operand")
	}

	for _, path := range paths {
		abs, err := env.Resolve(path)
		if err != nil {
			return nil, err
		}

		node, err := env.FS().Stat(ctx, abs)
		if err != nil {
			return nil, err
		}
		if node.IsDir() && !recursive {
			return nil, fmt.Errorf("cannot remove %s: is a directory", path)
		}

		if err := env.FS().Delete(ctx, abs); err != nil {
			return nil, err
		}
	}

	return &command.Result{}, nil
}
