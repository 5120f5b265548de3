package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
)

type HelpCommand struct {
}

// Name returns the command identifier
func (h *HelpCommand) Name() string {
	return "help"
}

// Description returns human-readable help text
func (h *HelpCommand) Description() string {
	return "List available commands or show usage for one"
}

// Usage returns a usage string for help
func (h *HelpCommand) Usage() string {
	return "help [command]"
}

// Execute runs the command against the session environment
func (h *HelpCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) > 0 {
		cmd, ok := env.Center().Get(args[0])
		if !ok {
			return nil, fmt.Errorf("no help for %s", args[0])
		}
		return &command.Result{Output: []string{
			cmd.Usage(),
			"  " + cmd.Description(),
		}}, nil
	}

	commands := env.Center().List()

	width := 0
	for _, cmd := range commands {
		if len(cmd.Name()) > width {
			width = len(cmd.Name())
		}
	}

	output := make([]string, 0, len(commands)+1)
	output = append(output, "Available commands:")
	for _, cmd := range commands {
		output = append(output, fmt.Sprintf("  %-*s  %s", width, cmd.Name(), cmd.Description()))
	}

	return &command.Result{Output: output}, nil
}
