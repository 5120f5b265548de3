package command

import (
	"context"

	"github.com/mwantia/webtop"
	"github.com/mwantia/webtop/data"
)

// Env is the session environment handed to a command. It binds the
// filesystem to the effective user of the innermost su session and exposes
// the engine hooks a command may legitimately reach for.
type Env struct {
	engine *Engine
	fs     *webtop.FileSystem
}

// FS returns the filesystem bound to the effective user.
func (e *Env) FS() *webtop.FileSystem {
	return e.fs
}

// User returns the effective user commands run as.
func (e *Env) User() data.User {
	return e.fs.CurrentUser()
}

// Cwd returns the working directory of the terminal session.
func (e *Env) Cwd() string {
	return e.engine.Cwd()
}

// SetCwd changes the working directory. The caller has already validated
// that the target is a traversable directory.
func (e *Env) SetCwd(path string) {
	e.engine.setCwd(path)
}

// Resolve expands a path expression against the working directory and the
// effective user's home.
func (e *Env) Resolve(path string) (string, error) {
	return data.ResolvePath(path, e.engine.Cwd(), e.fs.CurrentUser().HomeDir)
}

// PushSession switches the effective user, stacking the previous session
// underneath. Authentication is the caller's business; su decides whether
// a password was required.
func (e *Env) PushSession(username string) error {
	return e.engine.pushSession(username)
}

// PopSession drops the innermost su session. Returns false when already at
// the login session, which callers treat as a no-op.
func (e *Env) PopSession() bool {
	return e.engine.popSession()
}

// Launch asks the desktop to open an application window.
func (e *Env) Launch(ctx context.Context, appID string, args []string) error {
	return e.engine.launchApp(ctx, appID, args)
}

// Center exposes the registry for introspection, e.g. by help.
func (e *Env) Center() *CommandCenter {
	return e.engine.center
}

// History returns the transcript entries executed so far.
func (e *Env) History() []HistoryEntry {
	return e.engine.History()
}
