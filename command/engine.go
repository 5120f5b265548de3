package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mwantia/webtop"
	"github.com/mwantia/webtop/data"
	"github.com/mwantia/webtop/log"
)

// ErrBusy is returned by Run while another command is still in flight.
var ErrBusy = errors.New("webtop: command already in flight")

// State tracks where the engine is inside the execution pipeline.
type State int

const (
	StateIdle State = iota
	StateParsing
	StateResolving
	StateExecuting
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateParsing:
		return "parsing"
	case StateResolving:
		return "resolving"
	case StateExecuting:
		return "executing"
	case StateRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// LaunchFunc opens an application window for a launcher executable.
type LaunchFunc func(ctx context.Context, appID string, args []string) error

// Engine drives one terminal: it owns the session stack, the working
// directory, the transcript and the input history, and turns submitted
// lines into executed commands. One command runs at a time.
type Engine struct {
	mu    sync.Mutex
	state State

	center   *CommandCenter
	sessions []*webtop.FileSystem
	cwd      string
	accent   string
	launch   LaunchFunc
	log      *log.Logger

	entries  []HistoryEntry
	inputs   []string
	inputPos int
}

// EngineOption configures a terminal engine.
type EngineOption func(*Engine)

// WithLaunchFunc attaches the desktop callback used to open applications.
func WithLaunchFunc(launch LaunchFunc) EngineOption {
	return func(e *Engine) {
		e.launch = launch
	}
}

// WithAccent sets the prompt accent color recorded on history entries.
func WithAccent(accent string) EngineOption {
	return func(e *Engine) {
		e.accent = accent
	}
}

// NewEngine creates a terminal engine on top of a login session. The
// working directory starts at the user's home.
func NewEngine(fs *webtop.FileSystem, center *CommandCenter, opts ...EngineOption) *Engine {
	e := &Engine{
		state:    StateIdle,
		center:   center,
		sessions: []*webtop.FileSystem{fs},
		cwd:      fs.CurrentUser().HomeDir,
		accent:   "#33da7a",
		log:      fs.Logger("terminal"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current pipeline state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Cwd returns the terminal working directory.
func (e *Engine) Cwd() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cwd
}

// Accent returns the prompt accent color.
func (e *Engine) Accent() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accent
}

func (e *Engine) setCwd(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cwd = path
}

// Session returns the filesystem view of the effective user, i.e. the top
// of the su stack.
func (e *Engine) Session() *webtop.FileSystem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[len(e.sessions)-1]
}

// User returns the effective user.
func (e *Engine) User() data.User {
	return e.Session().CurrentUser()
}

// Depth returns how many sessions are stacked, the login session included.
func (e *Engine) Depth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

func (e *Engine) pushSession(username string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	top := e.sessions[len(e.sessions)-1]
	next, err := top.RunAs(username)
	if err != nil {
		return err
	}

	e.sessions = append(e.sessions, next)
	e.log.Debug("Session switched to %s (depth %d)", username, len(e.sessions))
	return nil
}

func (e *Engine) popSession() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.sessions) <= 1 {
		return false
	}
	e.sessions = e.sessions[:len(e.sessions)-1]
	return true
}

func (e *Engine) launchApp(ctx context.Context, appID string, args []string) error {
	e.mu.Lock()
	launch := e.launch
	e.mu.Unlock()

	if launch == nil {
		return fmt.Errorf("cannot launch %s: no desktop attached", appID)
	}
	return launch(ctx, appID, args)
}

func (e *Engine) transition(next State) {
	e.mu.Lock()
	e.state = next
	e.mu.Unlock()
}

// Run executes one input line through the pipeline: redirection split,
// tokenize, glob expansion, command resolution, execution, rendering.
// Empty input is a no-op returning a nil entry. The returned entry is also
// appended to the transcript unless it requested a clear.
func (e *Engine) Run(ctx context.Context, line string) (*HistoryEntry, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, nil
	}

	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	e.state = StateParsing
	fs := e.sessions[len(e.sessions)-1]
	cwd := e.cwd
	entry := HistoryEntry{
		Input:  trimmed,
		Dir:    cwd,
		User:   fs.CurrentUser().Username,
		Accent: e.accent,
	}
	e.inputs = append(e.inputs, trimmed)
	e.inputPos = len(e.inputs)
	e.mu.Unlock()

	cmdLine, target, appendMode, redirected := splitRedirect(trimmed)
	tokens := strings.Fields(cmdLine)

	var result *Result
	var runErr error
	name := ""

	switch {
	case len(tokens) == 0:
		runErr = fmt.Errorf("missing command")
	case redirected && target == "":
		name = tokens[0]
		runErr = fmt.Errorf("missing redirect target")
	default:
		name = tokens[0]

		e.transition(StateResolving)
		args := expandGlob(ctx, fs, cwd, tokens[1:])

		e.transition(StateExecuting)
		result, runErr = e.dispatch(ctx, fs, name, args)
	}

	e.transition(StateRendering)

	if runErr != nil {
		entry.Err = true
		entry.Output = []string{renderError(name, runErr)}
	} else if result != nil {
		entry.Output = result.Output
		entry.Clear = result.Clear
	}

	if redirected && !entry.Err && !entry.Clear {
		if err := e.writeRedirect(ctx, fs, cwd, target, appendMode, entry.Output); err != nil {
			entry.Err = true
			entry.Output = []string{renderError(name, err)}
		} else {
			entry.Output = nil
		}
	}

	entry.Time = time.Now()

	e.mu.Lock()
	if entry.Clear {
		e.entries = nil
	} else {
		e.entries = append(e.entries, entry)
	}
	e.state = StateIdle
	e.mu.Unlock()

	return &entry, nil
}

// dispatch resolves a command name against the registry first, then the
// executable directories. Files there run only when executable and carrying
// the launcher marker as their first line.
func (e *Engine) dispatch(ctx context.Context, fs *webtop.FileSystem, name string, args []string) (*Result, error) {
	env := &Env{engine: e, fs: fs}

	if cmd, ok := e.center.Get(name); ok {
		return cmd.Execute(ctx, env, args)
	}

	for _, dir := range webtop.BinDirs {
		path := data.JoinPath(dir, name)
		node, err := fs.Stat(ctx, path)
		if err != nil || node.IsDir() {
			continue
		}

		if !data.Allowed(node, fs.CurrentUser(), data.OpExecute, fs.Groups()) {
			return nil, fmt.Errorf("permission denied")
		}

		content, err := fs.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}

		first, _, _ := strings.Cut(content, "\n")
		fields := strings.Fields(first)
		if len(fields) >= 2 && fields[0] == webtop.AppMarker {
			appID := fields[1]
			if err := e.launchApp(ctx, appID, args); err != nil {
				return nil, err
			}
			return &Result{Output: []string{fmt.Sprintf("Launching %s...", appID)}}, nil
		}

		// An executable without the marker is not runnable in this world.
		break
	}

	return nil, fmt.Errorf("command not found")
}

// splitRedirect splits an input line on its rightmost redirection operator.
// Everything after the operator is the target; only its first field counts.
// Earlier operators are left in the command portion as ordinary tokens.
func splitRedirect(line string) (cmd, target string, appendMode, ok bool) {
	idx := strings.LastIndex(line, ">")
	if idx < 0 {
		return line, "", false, false
	}

	end := idx
	if idx > 0 && line[idx-1] == '>' {
		appendMode = true
		end = idx - 1
	}

	fields := strings.Fields(line[idx+1:])
	if len(fields) > 0 {
		target = fields[0]
	}

	return line[:end], target, appendMode, true
}

// writeRedirect lands command output in the target file, creating it when
// missing, appending or truncating depending on the operator.
func (e *Engine) writeRedirect(ctx context.Context, fs *webtop.FileSystem, cwd, target string, appendMode bool, lines []string) error {
	abs, err := data.ResolvePath(target, cwd, fs.CurrentUser().HomeDir)
	if err != nil {
		return err
	}

	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}

	existing, err := fs.ReadFile(ctx, abs)
	if err == nil {
		if appendMode {
			content = existing + content
		}
		return fs.WriteFile(ctx, abs, content)
	}
	if !errors.Is(err, data.ErrNotExist) {
		return err
	}

	_, err = fs.CreateFile(ctx, data.ParentPath(abs), data.BaseName(abs), content)
	return err
}

// renderError formats a command failure as a transcript line. Internal
// error prefixes are stripped since they mean nothing at the prompt.
func renderError(name string, err error) string {
	msg := strings.ReplaceAll(err.Error(), "webtop: ", "")
	if name == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", name, msg)
}
