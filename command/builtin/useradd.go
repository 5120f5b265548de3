package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwantia/webtop/command"
)

type UseraddCommand struct {
}

// Name returns the command identifier
func (u *UseraddCommand) Name() string {
	return "useradd"
}

// Description returns human-readable help text
func (u *UseraddCommand) Description() string {
	return "Create a user account (root only)"
}

// Usage returns a usage string for help
func (u *UseraddCommand) Usage() string {
	return "useradd <username> [password] [full name...]"
}

// Execute runs the command against the session environment
func (u *UseraddCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing username")
	}

	username := args[0]
	password := ""
	fullName := ""
	if len(args) > 1 {
		password = args[1]
	}
	if len(args) > 2 {
		fullName = strings.Join(args[2:], " ")
	}

	user, err := env.FS().AddUser(ctx, username, password, fullName)
	if err != nil {
		return nil, err
	}

	return &command.Result{Output: []string{
		fmt.Sprintf("created user %s (uid %d)", user.Username, user.UID),
	}}, nil
}
