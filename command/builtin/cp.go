package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwantia/webtop/command"
	"github.com/mwantia/webtop/data"
)

type CpCommand struct {
}

// Name returns the command identifier
func (c *CpCommand) Name() string {
	return "cp"
}

// Description returns human-readable help text
func (c *CpCommand) Description() string {
	return "Copy files and directories"
}

// Usage returns a usage string for help
func (c *CpCommand) Usage() string {
	return "cp <source> <destination>"
}

// Execute runs the command against the session environment
func (c *CpCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected source and destination")
	}

	src, err := env.Resolve(args[0])
	if err != nil {
		return nil, err
	}
	dest, err := env.Resolve(args[1])
	if err != nil {
		return nil, err
	}

	if node, err := env.FS().Stat(ctx, dest); err == nil && node.IsDir() {
		return &command.Result{}, env.FS().CopyNode(ctx, src, dest)
	}

	// Copying onto a file path duplicates content under the new name.
	srcNode, err := env.FS().Stat(ctx, src)
	if err != nil {
		return nil, err
	}
	if srcNode.IsDir() {
		return nil, fmt.Errorf("cannot copy directory onto a file path")
	}

	content, err := env.FS().ReadFile(ctx, src)
	if err != nil {
		return nil, err
	}

	if err := env.FS().WriteFile(ctx, dest, content); err != nil {
		if !errors.Is(err, data.ErrNotExist) {
			return nil, err
		}
		if _, err := env.FS().CreateFile(ctx, data.ParentPath(dest), data.BaseName(dest), content); err != nil {
			return nil, err
		}
	}

	return &command.Result{}, nil
}
