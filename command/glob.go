package command

import (
	"context"
	"sort"
	"strings"

	"github.com/mwantia/webtop"
)

// expandGlob replaces arguments containing a * wildcard with the matching
// entries of the working directory, sorted by name. An argument with no
// matches stays literal, so commands report the miss themselves. Patterns
// containing a path separator are never expanded, and hidden entries only
// match patterns that spell out the leading dot.
func expandGlob(ctx context.Context, fs *webtop.FileSystem, cwd string, args []string) []string {
	expanded := make([]string, 0, len(args))

	var entries []string
	listed := false

	for _, arg := range args {
		if !strings.Contains(arg, "*") || strings.Contains(arg, "/") {
			expanded = append(expanded, arg)
			continue
		}

		if !listed {
			listed = true
			if nodes, err := fs.ListDirectory(ctx, cwd); err == nil {
				for _, node := range nodes {
					entries = append(entries, node.Name)
				}
			}
		}

		matches := make([]string, 0)
		for _, name := range entries {
			if strings.HasPrefix(name, ".") && !strings.HasPrefix(arg, ".") {
				continue
			}
			if matchStar(arg, name) {
				matches = append(matches, name)
			}
		}

		if len(matches) == 0 {
			expanded = append(expanded, arg)
			continue
		}

		sort.Strings(matches)
		expanded = append(expanded, matches...)
	}

	return expanded
}

// matchStar reports whether name matches a pattern where * stands for any
// run of characters, including none.
func matchStar(pattern, name string) bool {
	parts := strings.Split(pattern, "*")

	if !strings.HasPrefix(name, parts[0]) {
		return false
	}
	name = name[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(name, part)
		if idx < 0 {
			return false
		}
		name = name[idx+len(part):]
	}

	return strings.HasSuffix(name, last) && len(name) >= len(last)
}
