package builtin

import (
	"context"
	"strings"

	"github.com/mwantia/webtop/command"
)

type EchoCommand struct {
}

// Name returns the command identifier
func (e *EchoCommand) Name() string {
	return "echo"
}

// Description returns human-readable help text
func (e *EchoCommand) Description() string {
	return "Print arguments to the transcript"
}

// Usage returns a usage string for help
func (e *EchoCommand) Usage() string {
	return "echo [text...]"
}

// Execute runs the command against the session environment
func (e *EchoCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	return &command.Result{Output: []string{strings.Join(args, " ")}}, nil
}
