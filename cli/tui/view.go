package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the terminal.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderTranscript())
	sections = append(sections, m.renderPrompt())
	if len(m.suggestions) > 0 {
		sections = append(sections, m.renderSuggestions())
	}
	sections = append(sections, m.renderStatus())
	sections = append(sections, m.renderHelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitle renders the title bar.
func (m *Model) renderTitle() string {
	user := m.engine.User()
	title := fmt.Sprintf("webtop terminal - %s@%s", user.Username, m.host)
	return m.theme.TitleStyle.Width(m.width).Render(title)
}

// renderTranscript renders the tail of the history that fits the pane.
func (m *Model) renderTranscript() string {
	var lines []string
	for _, entry := range m.engine.History() {
		lines = append(lines, renderEntry(entry, m.host, m.home, m.theme)...)
	}

	visible := m.transcriptLines()
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// transcriptLines returns how many transcript rows fit above the chrome.
func (m *Model) transcriptLines() int {
	reserved := 5
	if len(m.suggestions) > 0 {
		reserved++
	}
	if m.showFullHelp {
		reserved += 2
	}

	available := m.height - reserved
	if available < 3 {
		return 3
	}
	return available
}

// renderPrompt renders the input line with the ghost suggestion appended.
func (m *Model) renderPrompt() string {
	user := m.engine.User()
	prompt := m.theme.PromptColor(m.engine.Accent()).
		Render(promptLabel(user.Username, m.host, m.engine.Cwd(), m.home))

	line := prompt + " " + m.input.View()
	if m.running {
		return prompt + " " + m.theme.GhostStyle.Render("...")
	}
	if m.ghost != "" {
		line += m.theme.GhostStyle.Render(m.ghost)
	}
	return line
}

// renderSuggestions renders the candidate row after an ambiguous completion.
func (m *Model) renderSuggestions() string {
	row := strings.Join(m.suggestions, "  ")
	if lipgloss.Width(row) > m.width {
		row = row[:m.width-3] + "..."
	}
	return m.theme.SuggestionStyle.Render(row)
}

// renderStatus renders the engine state and session depth.
func (m *Model) renderStatus() string {
	left := fmt.Sprintf("%s • depth %d", m.engine.State(), m.engine.Depth())
	right := m.engine.Cwd()

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return m.theme.StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", spacing) + right)
}

// renderHelpBar renders the bottom help bar.
func (m *Model) renderHelpBar() string {
	if m.showFullHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.theme.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
