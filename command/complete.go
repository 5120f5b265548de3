package command

import (
	"context"
	"sort"
	"strings"

	"github.com/mwantia/webtop"
	"github.com/mwantia/webtop/data"
)

// Complete applies tab completion to an input line. With exactly one
// candidate it returns the completed line; with several it returns the
// input untouched plus the candidate names for display; with none it is a
// no-op.
func (e *Engine) Complete(ctx context.Context, input string) (string, []string) {
	fs := e.Session()
	cwd := e.Cwd()

	head, partial, commandPos := splitCompletion(input)

	var candidates []string
	if commandPos {
		candidates = e.commandCandidates(ctx, fs, partial)
	} else {
		candidates = pathCandidates(ctx, fs, cwd, partial)
	}

	switch len(candidates) {
	case 0:
		return input, nil
	case 1:
		return head + joinCompletion(partial, candidates[0]), nil
	default:
		return input, candidates
	}
}

// Ghost returns the inline suggestion suffix for the current input, i.e.
// what Complete would append when exactly one candidate exists.
func (e *Engine) Ghost(ctx context.Context, input string) string {
	if input == "" || strings.HasSuffix(input, " ") {
		return ""
	}

	completed, candidates := e.Complete(ctx, input)
	if candidates != nil || completed == input {
		return ""
	}
	return strings.TrimPrefix(completed, input)
}

// splitCompletion cuts the input into everything before the token under
// the cursor and the token itself. The first token completes as a command
// name, later tokens as paths.
func splitCompletion(input string) (head, partial string, commandPos bool) {
	idx := strings.LastIndex(input, " ")
	if idx < 0 {
		return "", input, true
	}
	return input[:idx+1], input[idx+1:], false
}

// commandCandidates matches the partial token against registered commands
// and the executables under the binary directories.
func (e *Engine) commandCandidates(ctx context.Context, fs *webtop.FileSystem, partial string) []string {
	seen := make(map[string]bool)
	candidates := make([]string, 0)

	for _, name := range e.center.Names() {
		if strings.HasPrefix(name, partial) && !seen[name] {
			seen[name] = true
			candidates = append(candidates, name)
		}
	}

	for _, dir := range webtop.BinDirs {
		nodes, err := fs.ListDirectory(ctx, dir)
		if err != nil {
			continue
		}
		for _, node := range nodes {
			if node.IsDir() || !strings.HasPrefix(node.Name, partial) || seen[node.Name] {
				continue
			}
			seen[node.Name] = true
			candidates = append(candidates, node.Name)
		}
	}

	sort.Strings(candidates)
	return candidates
}

// pathCandidates matches the partial token against the entries of its
// parent directory. Directory candidates carry a trailing slash so the
// next completion descends.
func pathCandidates(ctx context.Context, fs *webtop.FileSystem, cwd, partial string) []string {
	dir := cwd
	base := partial

	if idx := strings.LastIndex(partial, "/"); idx >= 0 {
		resolved, err := data.ResolvePath(partial[:idx+1], cwd, fs.CurrentUser().HomeDir)
		if err != nil {
			return nil
		}
		dir = resolved
		base = partial[idx+1:]
	}

	nodes, err := fs.ListDirectory(ctx, dir)
	if err != nil {
		return nil
	}

	candidates := make([]string, 0)
	for _, node := range nodes {
		if !strings.HasPrefix(node.Name, base) {
			continue
		}
		if strings.HasPrefix(node.Name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		name := node.Name
		if node.IsDir() {
			name += "/"
		}
		candidates = append(candidates, name)
	}

	sort.Strings(candidates)
	return candidates
}

// joinCompletion replaces the basename portion of the partial token with
// the chosen candidate, keeping any directory prefix typed so far.
func joinCompletion(partial, candidate string) string {
	if idx := strings.LastIndex(partial, "/"); idx >= 0 {
		return partial[:idx+1] + candidate
	}
	return candidate
}
