package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
)

type TouchCommand struct {
}

// Name returns the command identifier
func (t *TouchCommand) Name() string {
	return "touch"
}

// Description returns human-readable help text
func (t *TouchCommand) Description() string {
	return "Create empty files or update modify times"
}

// Usage returns a usage string for help
func (t *TouchCommand) Usage() string {
	return "touch <file...>"
}

// Execute runs the command against the session environment
func (t *TouchCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing operand")
	}

	for _, arg := range args {
		abs, err := env.Resolve(arg)
		if err != nil {
			return nil, err
		}
		if err := env.FS().Touch(ctx, abs); err != nil {
			return nil, err
		}
	}

	return &command.Result{}, nil
}
