package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwantia/webtop/command"
)

type ChownCommand struct {
}

// Name returns the command identifier
func (c *ChownCommand) Name() string {
	return "chown"
}

// Description returns human-readable help text
func (c *ChownCommand) Description() string {
	return "Change owner and optionally group"
}

// Usage returns a usage string for help
func (c *ChownCommand) Usage() string {
	return "chown <owner>[:group] <path...>"
}

// Execute runs the command against the session environment
func (c *ChownCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("expected owner and path")
	}

	owner, group, _ := strings.Cut(args[0], ":")

	for _, arg := range args[1:] {
		abs, err := env.Resolve(arg)
		if err != nil {
			return nil, err
		}
		if err := env.FS().Chown(ctx, abs, owner, group); err != nil {
			return nil, err
		}
	}

	return &command.Result{}, nil
}
