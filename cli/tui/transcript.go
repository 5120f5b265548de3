package tui

import (
	"strings"

	"github.com/mwantia/webtop/command"
)

// promptLabel builds the prompt echo shown before each command, with the
// home directory contracted to a tilde.
func promptLabel(user, host, dir, home string) string {
	return user + "@" + host + ":" + contractHome(dir, home) + "$"
}

// contractHome replaces the home directory prefix of a path with "~".
func contractHome(dir, home string) string {
	if home == "" || home == "/" {
		return dir
	}
	if dir == home {
		return "~"
	}
	if strings.HasPrefix(dir, home+"/") {
		return "~" + dir[len(home):]
	}
	return dir
}

// renderEntry formats one transcript entry: the echoed prompt line followed
// by its output, error output tinted red.
func renderEntry(entry command.HistoryEntry, host, home string, theme *Theme) []string {
	prompt := theme.PromptColor(entry.Accent).Render(promptLabel(entry.User, host, entry.Dir, home))
	lines := []string{prompt + " " + theme.InputStyle.Render(entry.Input)}

	style := theme.OutputStyle
	if entry.Err {
		style = theme.ErrorStyle
	}
	for _, line := range entry.Output {
		lines = append(lines, style.Render(line))
	}
	return lines
}
