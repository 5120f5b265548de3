package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwantia/webtop/command"
)

type CatCommand struct {
}

// Name returns the command identifier
func (c *CatCommand) Name() string {
	return "cat"
}

// Description returns human-readable help text
func (c *CatCommand) Description() string {
	return "Print file contents"
}

// Usage returns a usage string for help
func (c *CatCommand) Usage() string {
	return "cat <file...>"
}

// Execute runs the command against the session environment
func (c *CatCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing operand")
	}

	output := make([]string, 0)
	for _, arg := range args {
		abs, err := env.Resolve(arg)
		if err != nil {
			return nil, err
		}

		content, err := env.FS().ReadFile(ctx, abs)
		if err != nil {
			return nil, err
		}

		lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
		output = append(output, lines...)
	}

	return &command.Result{Output: output}, nil
}
