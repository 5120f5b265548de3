package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwantia/webtop/command"
	"github.com/mwantia/webtop/data"
)

type LsCommand struct {
}

// Name returns the command identifier
func (l *LsCommand) Name() string {
	return "ls"
}

// Description returns human-readable help text
func (l *LsCommand) Description() string {
	return "List directory contents"
}

// Usage returns a usage string for help
func (l *LsCommand) Usage() string {
	return "ls [-la] [path...]"
}

// Execute runs the command against the session environment
func (l *LsCommand) Execute(ctx context.Context, env *command.Env, args []string) (*command.Result, error) {
	flags, paths := splitFlags(args)
	long := flags['l']
	all := flags['a']

	if len(paths) == 0 {
		paths = []string{"."}
	}

	output := make([]string, 0)
	for i, path := range paths {
		abs, err := env.Resolve(path)
		if err != nil {
			return nil, err
		}

		node, err := env.FS().Stat(ctx, abs)
		if err != nil {
			return nil, err
		}

		if !node.IsDir() {
			output = append(output, formatEntry(node, long))
			continue
		}

		entries, err := env.FS().ListDirectory(ctx, abs)
		if err != nil {
			return nil, err
		}

		if len(paths) > 1 {
			if i > 0 {
				output = append(output, "")
			}
			output = append(output, abs+":")
		}

		for _, entry := range entries {
			if !all && strings.HasPrefix(entry.Name, ".") {
				continue
			}
			output = append(output, formatEntry(entry, long))
		}
	}

	return &command.Result{Output: output}, nil
}

// formatEntry renders one node as an ls line, long form carrying mode,
// ownership, size and modify time.
func formatEntry(node *data.Node, long bool) string {
	name := node.Name
	if node.IsDir() {
		name += "/"
	}

	if !long {
		return name
	}

	kind := "-"
	if node.IsDir() {
		kind = "d"
	}

	return fmt.Sprintf("%s%s %-8s %-8s %6d %s %s",
		kind, node.Permissions,
		node.Owner, node.Group,
		node.Size,
		node.ModifyTime.Format("Jan _2 15:04"),
		name)
}
