package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/command"
)

type HistoryCommand struct {
}

// Name returns the command identifier
func (h *HistoryCommand) Name() string {
	return "history"
}

// Description returns human-readable help text
func (h *HistoryCommand) Description() string {
	return "List the commands executed in this terminal"
}

// Usage returns a usage string for help
func (h *HistoryCommand) Usage() string {
	return "history"
}

// Execute runs the command against the session environment
func (h *HistoryCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	entries := env.History()

	output := make([]string, 0, len(entries))
	for i, entry := range entries {
		output = append(output, fmt.Sprintf("%4d  %s", i+1, entry.Input))
	}

	return &command.Result{Output: output}, nil
}
