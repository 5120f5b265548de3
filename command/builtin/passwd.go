package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
)

type PasswdCommand struct {
}

// Name returns the command identifier
func (p *PasswdCommand) Name() string {
	return "passwd"
}

// Description returns human-readable help text
func (p *PasswdCommand) Description() string {
	return "Change a password, own or (as root) anyone's"
}

// Usage returns a usage string for help
func (p *PasswdCommand) Usage() string {
	return "passwd <newpassword> | passwd <username> <newpassword>"
}

// Execute runs the command against the session environment
func (p *PasswdCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	username := env.User().Username
	password := ""

	switch len(args) {
	case 1:
		password = args[0]
	case 2:
		username = args[0]
		password = args[1]
	default:
		return nil, fmt.Errorf("missing new password")
	}

	if err := env.FS().SetPassword(ctx, username, password); err != nil {
		return nil, err
	}

	return &command.Result{Output: []string{
		fmt.Sprintf("password updated for %s", username),
	}}, nil
}
