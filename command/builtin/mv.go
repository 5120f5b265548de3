package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
	"github.com/mwantia/webtop/data"
)

type MvCommand struct {
}

// Name returns the command identifier
func (m *MvCommand) Name() string {
	return "mv"
}

// Description returns human-readable help text
func (m *MvCommand) Description() string {
	return "Move or rename files and directories"
}

// Usage returns a usage string for help
func (m *MvCommand) Usage() string {
	return "mv <source> <destination>"
}

// Execute runs the command against the session environment
func (m *MvCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
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

	// An existing directory destination means move into it. Anything else
	// is a rename, moving across parents first when needed.
	if node, err := env.FS().Stat(ctx, dest); err == nil && node.IsDir() {
		return &command.Result{}, env.FS().MoveNode(ctx, src, dest)
	}

	destParent := data.ParentPath(dest)
	destName := data.BaseName(dest)
	srcName := data.BaseName(src)

	if data.ParentPath(src) != destParent {
		if err := env.FS().MoveNode(ctx, src, destParent); err != nil {
			return nil, err
		}
		src = data.JoinPath(destParent, srcName)
	}
	if srcName != destName {
		if err := env.FS().Rename(ctx, src, destName); err != nil {
			return nil, err
		}
	}

	return &command.Result{}, nil
}
