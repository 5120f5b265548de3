package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
)

type TrashCommand struct {
}

// Name returns the command identifier
func (t *TrashCommand) Name() string {
	return "trash"
}

// Description returns human-readable help text
func (t *TrashCommand) Description() string {
	return "Move files into the trash instead of deleting them"
}

// Usage returns a usage string for help
func (t *TrashCommand) Usage() string {
	return "trash <path...>"
}

// Execute runs the command against the session environment
func (t *TrashCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing operand")
	}

	output := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := env.Resolve(arg)
		if err != nil {
			return nil, err
		}

		name, err := env.FS().MoveToTrash(ctx, abs)
		if err != nil {
			return nil, err
		}
		output = append(output, fmt.Sprintf("moved %s to trash as %s", arg, name))
	}

	return &command.Result{Output: output}, nil
}
