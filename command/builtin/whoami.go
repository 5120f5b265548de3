package builtin

import (
	"context"

	"github.com/mwantia/webtop/command"
)

type WhoamiCommand struct {
}

// Name returns the command identifier
func (w *WhoamiCommand) Name() string {
	return "whoami"
}

// Description returns human-readable help text
func (w *WhoamiCommand) Description() string {
	return "Print the effective username"
}

// Usage returns a usage string for help
func (w *WhoamiCommand) Usage() string {
	return "whoami"
}

// Execute runs the command against the session environment
func (w *WhoamiCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	return &command.Result{Output: []string{env.User().Username}}, nil
}
