package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
	"github.com/mwantia/webtop/data"
)

type MkdirCommand struct {
}

// Name returns the command identifier
func (m *MkdirCommand) Name() string {
	return "mkdir"
}

// Description returns human-readable help text
func (m *MkdirCommand) Description() string {
	return "Create directories"
}

// Usage returns a usage string for help
func (m *MkdirCommand) Usage() string {
	return "mkdir <directory...>"
}

// Execute runs the command against the session environment
func (m *MkdirCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing operand")
	}

	for _, arg := range args {
		abs, err := env.Resolve(arg)
		if err != nil {
			return nil, err
		}
		if _, err := env.FS().CreateDirectory(ctx, data.ParentPath(abs), data.BaseName(abs)); err != nil {
			return nil, err
		}
	}

	return &command.Result{}, nil
}
