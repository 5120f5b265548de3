package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the lipgloss styles used by the terminal view.
type Theme struct {
	TitleStyle      lipgloss.Style
	PromptStyle     lipgloss.Style
	InputStyle      lipgloss.Style
	GhostStyle      lipgloss.Style
	OutputStyle     lipgloss.Style
	ErrorStyle      lipgloss.Style
	SuggestionStyle lipgloss.Style
	StatusBarStyle  lipgloss.Style
	HelpStyle       lipgloss.Style
}

// DefaultTheme returns the standard terminal colors.
func DefaultTheme() *Theme {
	return &Theme{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#1e1e2e")).
			Padding(0, 1),

		PromptStyle: lipgloss.NewStyle().
			Bold(true),

		InputStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0e0e0")),

		GhostStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#585b70")),

		OutputStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cdd6f4")),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f38ba8")),

		SuggestionStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#89b4fa")),

		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a6adc8")).
			Background(lipgloss.Color("#313244")).
			Padding(0, 1),

		HelpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")),
	}
}

// PromptColor returns the prompt style tinted with a per-entry accent.
func (t *Theme) PromptColor(accent string) lipgloss.Style {
	if accent == "" {
		return t.PromptStyle
	}
	return t.PromptStyle.Foreground(lipgloss.Color(accent))
}
