package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
	"github.com/mwantia/webtop/data"
)

type CdCommand struct {
}

// Name returns the command identifier
func (c *CdCommand) Name() string {
	return "cd"
}

// Description returns human-readable help text
func (c *CdCommand) Description() string {
	return "Change the working directory"
}

// Usage returns a usage string for help
func (c *CdCommand) Usage() string {
	return "cd [path]"
}

// Execute runs the command against the session environment
func (c *CdCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	path := "~"
	if len(args) > 0 {
		path = args[0]
	}

	abs, err := env.Resolve(path)
	if err != nil {
		return nil, err
	}

	node, err := env.FS().Stat(ctx, abs)
	if err != nil {
		return nil, err
	}
	if !node.IsDir() {
		return nil, fmt.Errorf("%w: %s", data.ErrNotDirectory, abs)
	}
	if !data.Allowed(node, env.User(), data.OpExecute, env.FS().Groups()) {
		return nil, fmt.Errorf("%w: %s", data.ErrPermission, abs)
	}

	env.SetCwd(abs)
	return &command.Result{}, nil
}
