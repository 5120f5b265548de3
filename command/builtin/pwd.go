package builtin

import (
	"context"

	"github.com/mwantia/webtop/command"
)

type PwdCommand struct {
}

// Name returns the command identifier
func (p *PwdCommand) Name() string {
	return "pwd"
}

// Description returns human-readable help text
func (p *PwdCommand) Description() string {
	return "Print the working directory"
}

// Usage returns a usage string for help
func (p *PwdCommand) Usage() string {
	return "pwd"
}

// Execute runs the command against the session environment
func (p *PwdCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	return &command.Result{Output: []string{env.Cwd()}}, nil
}
