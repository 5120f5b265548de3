package builtin

import (
	"context"

	"github.com/mwantia/webtop/command"
)

type ExitCommand struct {
}

// Name returns the command identifier
func (e *ExitCommand) Name() string {
	return "exit"
}

// Description returns human-readable help text
func (e *ExitCommand) Description() string {
	return "Leave the innermost su session"
}

// Usage returns a usage string for help
func (e *ExitCommand) Usage() string {
	return "exit"
}

// Execute runs the command against the session environment
func (e *ExitCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if env.PopSession() {
		return &command.Result{Output: []string{"logout"}}, nil
	}

	// Already at the login session; leaving that is the window's business.
	return &command.Result{}, nil
}
