package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
)

type UserdelCommand struct {
}

// Name returns the command identifier
func (u *UserdelCommand) Name() string {
	return "userdel"
}

// Description returns human-readable help text
func (u *UserdelCommand) Description() string {
	return "Delete a user account (root only)"
}

// Usage returns a usage string for help
func (u *UserdelCommand) Usage() string {
	return "userdel <username>"
}

// Execute runs the command against the session environment
func (u *UserdelCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing username")
	}

	if err := env.FS().DeleteUser(ctx, args[0]); err != nil {
		return nil, err
	}

	return &command.Result{}, nil
}
