package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwantia/webtop/command"
)

// Model drives the interactive terminal: a transcript pane fed by the
// command engine plus a prompt line with ghost suggestions, tab completion
// and input history.
type Model struct {
	ctx    context.Context
	engine *command.Engine
	theme  *Theme
	keys   KeyMap
	help   help.Model
	input  textinput.Model

	host string
	home string

	width  int
	height int

	running      bool
	ghost        string
	suggestions  []string
	showFullHelp bool
}

// NewModel creates the terminal model on top of a command engine.
func NewModel(ctx context.Context, engine *command.Engine) *Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Focus()

	return &Model{
		ctx:    ctx,
		engine: engine,
		theme:  DefaultTheme(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		host:   readHostname(ctx, engine),
		home:   engine.User().HomeDir,
	}
}

// readHostname pulls the machine name the prompt displays.
func readHostname(ctx context.Context, engine *command.Engine) string {
	content, err := engine.Session().ReadFile(ctx, "/etc/hostname")
	if err != nil {
		return "webtop"
	}
	if host := strings.TrimSpace(content); host != "" {
		return host
	}
	return "webtop"
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// commandFinishedMsg reports a completed engine run.
type commandFinishedMsg struct {
	err error
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commandFinishedMsg:
		m.running = false
		// The prompt user or directory may have changed, e.g. after cd or su.
		m.home = m.engine.User().HomeDir
		if msg.err != nil {
			DebugLog("Command failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showFullHelp = !m.showFullHelp
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitLine()

	case key.Matches(msg, m.keys.Complete):
		m.completeLine()
		return m, nil

	case key.Matches(msg, m.keys.HistoryPrev):
		if line, ok := m.engine.HistoryPrev(); ok {
			m.setLine(line)
		}
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		if line, ok := m.engine.HistoryNext(); ok {
			m.setLine(line)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearLine):
		m.setLine("")
		return m, nil
	}

	if m.running {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshGhost()
	return m, cmd
}

// submitLine hands the typed line to the engine. One command at a time;
// submissions while busy are dropped.
func (m *Model) submitLine() tea.Cmd {
	if m.running {
		return nil
	}

	line := m.input.Value()
	m.setLine("")

	if strings.TrimSpace(line) == "" {
		return nil
	}

	m.running = true
	return func() tea.Msg {
		_, err := m.engine.Run(m.ctx, line)
		return commandFinishedMsg{err: err}
	}
}

// completeLine applies tab completion. A single candidate replaces the
// input; several show up as a suggestion row.
func (m *Model) completeLine() {
	if m.running {
		return
	}

	completed, candidates := m.engine.Complete(m.ctx, m.input.Value())
	if len(candidates) > 0 {
		m.suggestions = candidates
		return
	}
	m.setLine(completed)
}

// setLine replaces the input value and resets completion state.
func (m *Model) setLine(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
	m.suggestions = nil
	m.refreshGhost()
}

// refreshGhost recomputes the inline suggestion for the current input.
func (m *Model) refreshGhost() {
	if m.running {
		m.ghost = ""
		return
	}
	m.ghost = m.engine.Ghost(m.ctx, m.input.Value())
}
