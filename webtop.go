// Package webtop implements the core of a simulated desktop environment:
// a permissioned virtual filesystem with user sessions, persisted into a
// pluggable key value store. Window placement, desktop layout and the
// terminal engine build on top of this package.
package webtop

import (
	"context"
	"fmt"
	"sync"

	"github.com/mwantia/webtop/data"
	"github.com/mwantia/webtop/log"
	"github.com/mwantia/webtop/storage"
	"github.com/mwantia/webtop/storage/ephemeral"
)

// AppMarker is the first-line prefix that turns a file under the binary
// directories into an application launcher, e.g. "#!app notepad".
const AppMarker = "#!app"

// BinDirs are the directories searched for executables, in order.
var BinDirs = []string{"/bin", "/usr/bin"}

// FileSystem is a session-bound view on the desktop state. Every operation
// is permission checked against the bound user. Views created by RunAs or
// Login share the same underlying state.
type FileSystem struct {
	st   *state
	user data.User
}

// state is the shared heart of a desktop: one tree, one user database,
// one store. The tree root is swapped wholesale on every mutation; nodes
// reachable from a published root are never modified in place.
type state struct {
	mu     sync.RWMutex
	root   *data.Node
	users  []data.User
	groups []data.Group

	store  storage.Backend
	prefix string
	log    *log.Logger
}

// NewFileSystem opens the store, loads the persisted desktop state or
// bootstraps a fresh one, and binds the session to the configured user.
func NewFileSystem(ctx context.Context, opts ...FileSystemOption) (*FileSystem, error) {
	options := newDefaultFileSystemOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("webtop", options.LogLevel, options.LogFile, options.NoTerminalLog)
		if options.JSONLog {
			logger = logger.JSON()
		}
	}

	store := options.Store
	if store == nil {
		store = ephemeral.NewEphemeralBackend()
	}

	if err := store.Open(ctx); err != nil {
		return nil, fmt.Errorf("failed to open store %q: %w", store.Name(), err)
	}

	st := &state{
		store:  store,
		prefix: options.StorePrefix,
		log:    logger.Named("fs"),
	}

	loaded, err := st.load(ctx)
	if err != nil {
		st.log.Warn("Discarding unreadable desktop state: %v", err)
	}
	if !loaded {
		st.bootstrap()
		st.persist(ctx)
		st.log.Info("Bootstrapped fresh desktop state")
	}

	user, err := st.lookupUser(options.Username)
	if err != nil {
		return nil, err
	}

	fs := &FileSystem{st: st, user: *user}
	st.ensureHome(user)
	st.persist(ctx)

	return fs, nil
}

// CurrentUser returns a copy of the user this view acts as.
func (fs *FileSystem) CurrentUser() data.User {
	return fs.user
}

// Users returns a copy of the user database in passwd order.
func (fs *FileSystem) Users() []data.User {
	fs.st.mu.RLock()
	defer fs.st.mu.RUnlock()

	users := make([]data.User, len(fs.st.users))
	copy(users, fs.st.users)
	return users
}

// Groups returns a copy of the group database.
func (fs *FileSystem) Groups() []data.Group {
	fs.st.mu.RLock()
	defer fs.st.mu.RUnlock()

	groups := make([]data.Group, len(fs.st.groups))
	copy(groups, fs.st.groups)
	return groups
}

// LookupUser returns the user record for a username.
func (fs *FileSystem) LookupUser(username string) (data.User, error) {
	fs.st.mu.RLock()
	defer fs.st.mu.RUnlock()

	user, err := fs.st.lookupUser(username)
	if err != nil {
		return data.User{}, err
	}
	return *user, nil
}

// Authenticate verifies a username and plain text password pair.
func (fs *FileSystem) Authenticate(ctx context.Context, username, password string) error {
	fs.st.mu.RLock()
	defer fs.st.mu.RUnlock()

	user, err := fs.st.lookupUser(username)
	if err != nil {
		return err
	}

	if user.Password != password {
		return fmt.Errorf("%w: %s", data.ErrAuthFailed, username)
	}

	return nil
}

// Login authenticates and returns a view bound to the given user, creating
// the user's home directory on first login. The underlying desktop state is
// shared with the current view.
func (fs *FileSystem) Login(ctx context.Context, username, password string) (*FileSystem, error) {
	if err := fs.Authenticate(ctx, username, password); err != nil {
		return nil, err
	}

	fs.st.mu.Lock()
	user, err := fs.st.lookupUser(username)
	if err != nil {
		fs.st.mu.Unlock()
		return nil, err
	}
	bound := *user
	fs.st.ensureHome(user)
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	fs.st.log.Info("User %s logged in", username)

	return &FileSystem{st: fs.st, user: bound}, nil
}

// RunAs returns a view acting as another user without authentication.
// The terminal uses this to bind operations to the effective user of a
// stacked su session.
func (fs *FileSystem) RunAs(username string) (*FileSystem, error) {
	fs.st.mu.RLock()
	defer fs.st.mu.RUnlock()

	user, err := fs.st.lookupUser(username)
	if err != nil {
		return nil, err
	}

	return &FileSystem{st: fs.st, user: *user}, nil
}

// Store exposes the persistence backend so sibling components (window
// manager, desktop layout) can share it.
func (fs *FileSystem) Store() storage.Backend {
	return fs.st.store
}

// StorePrefix returns the key prefix used for persisted entries.
func (fs *FileSystem) StorePrefix() string {
	return fs.st.prefix
}

// Logger returns a named child logger sharing the desktop's log setup.
func (fs *FileSystem) Logger(name string) *log.Logger {
	return fs.st.log.Named(name)
}

// Close persists the current state and shuts down the store.
func (fs *FileSystem) Close(ctx context.Context) error {
	fs.st.persist(ctx)
	return fs.st.store.Close(ctx)
}

// lookupUser finds a user record. Requires st.mu held.
func (st *state) lookupUser(username string) (*data.User, error) {
	for i := range st.users {
		if st.users[i].Username == username {
			return &st.users[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", data.ErrUserNotFound, username)
}

// groupName resolves a gid to its group name, falling back to the owner
// name when the group database has no entry.
func (st *state) groupName(gid int, fallback string) string {
	for _, g := range st.groups {
		if g.GID == gid {
			return g.Name
		}
	}
	return fallback
}

// groupExists reports whether a group name is present in the group
// database. Requires st.mu held.
func (st *state) groupExists(name string) bool {
	for _, g := range st.groups {
		if g.Name == name {
			return true
		}
	}
	return false
}
