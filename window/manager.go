package window

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mwantia/webtop/data"
	"github.com/mwantia/webtop/log"
	"github.com/mwantia/webtop/storage"
)

// ErrWindowNotFound is returned when an operation names an unknown window id.
var ErrWindowNotFound = errors.New("webtop: window does not exist")

// ContentFactory rebuilds the transient state of a restored window from its
// type and persisted data blob, e.g. a terminal engine or an editor buffer.
type ContentFactory func(ctx context.Context, windowType string, data json.RawMessage) (any, error)

const (
	// zFloor is the lowest z-index ever assigned. Values below it are
	// reserved for desktop chrome.
	zFloor = 100

	cascadeBaseX = 96
	cascadeBaseY = 64
	cascadeStep  = 28
	cascadeWrap  = 10

	// DefaultWidth and DefaultHeight are the initial size of a new window.
	DefaultWidth  = 640
	DefaultHeight = 480

	// MinWidth and MinHeight are the smallest size Resize accepts.
	MinWidth  = 320
	MinHeight = 200
)

// Manager owns the window set of one logged-in user. All mutation goes
// through the manager; sessions handed out by Get or Windows must be
// treated as read-only.
//
// Every change is persisted to the store under <prefix>-windows-<username>,
// but only once Restore has run. This way a manager can never overwrite
// saved windows it has not loaded yet.
type Manager struct {
	mu       sync.Mutex
	windows  []*Session
	nextZ    int
	restored bool

	store    storage.Backend
	prefix   string
	username string
	factory  ContentFactory
	log      *log.Logger
}

type ManagerOption func(*Manager) error

// WithPrefix changes the store key prefix, matching the filesystem's.
func WithPrefix(prefix string) ManagerOption {
	return func(m *Manager) error {
		m.prefix = prefix
		return nil
	}
}

// WithContentFactory sets the factory used to rebuild window contents on
// open and restore. Without one, windows carry no content.
func WithContentFactory(factory ContentFactory) ManagerOption {
	return func(m *Manager) error {
		m.factory = factory
		return nil
	}
}

// WithLogger attaches a logger; defaults to a discarding one.
func WithLogger(logger *log.Logger) ManagerOption {
	return func(m *Manager) error {
		m.log = logger
		return nil
	}
}

// NewManager creates the window manager for one user session.
func NewManager(store storage.Backend, username string, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		nextZ:    zFloor,
		store:    store,
		prefix:   "webtop",
		username: username,
		log:      log.Discard(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Open creates a window of the given type, places it in a cascade derived
// from the number of open windows and puts it on top of the stack.
func (m *Manager) Open(ctx context.Context, windowType, title string, blob json.RawMessage) (*Session, error) {
	var content any
	if m.factory != nil {
		built, err := m.factory(ctx, windowType, blob)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s content: %w", windowType, err)
		}
		content = built
	}

	m.mu.Lock()
	offset := (len(m.windows) % cascadeWrap) * cascadeStep
	session := &Session{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Type:     windowType,
		Title:    title,
		Position: Position{X: cascadeBaseX + offset, Y: cascadeBaseY + offset},
		Size:     Size{Width: DefaultWidth, Height: DefaultHeight},
		ZIndex:   m.nextZ,
		Data:     blob,
		content:  content,
	}
	m.nextZ++
	m.windows = append(m.windows, session)
	m.mu.Unlock()

	m.log.Debug("Opened %s window %s at z %d", windowType, session.ID, session.ZIndex)
	m.persist(ctx)

	return session, nil
}

// Focus raises a window to the top of the stack and unminimizes it.
func (m *Manager) Focus(ctx context.Context, id string) error {
	m.mu.Lock()
	session, err := m.find(id)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.focusLocked(session)
	m.mu.Unlock()

	m.persist(ctx)
	return nil
}

// focusLocked assigns the next z-index and clears the minimized flag.
// Requires m.mu held.
func (m *Manager) focusLocked(session *Session) {
	session.ZIndex = m.nextZ
	m.nextZ++
	session.Minimized = false
}

// Minimize hides a window. If it held focus, the next-highest visible
// window is focused in its place.
func (m *Manager) Minimize(ctx context.Context, id string) error {
	m.mu.Lock()
	session, err := m.find(id)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	focused := m.focusedLocked()
	session.Minimized = true

	if focused == session {
		if next := m.focusedLocked(); next != nil {
			m.focusLocked(next)
		}
	}
	m.mu.Unlock()

	m.persist(ctx)
	return nil
}

// ToggleMaximize switches a window between maximized and its remembered
// frame. The pre-maximize geometry rides along in the session so it
// survives a reload.
func (m *Manager) ToggleMaximize(ctx context.Context, id string) error {
	m.mu.Lock()
	session, err := m.find(id)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	if session.Maximized {
		if session.Restore != nil {
			session.Position = session.Restore.Position
			session.Size = session.Restore.Size
			session.Restore = nil
		}
		session.Maximized = false
	} else {
		session.Restore = &Frame{Position: session.Position, Size: session.Size}
		session.Maximized = true
	}
	m.mu.Unlock()

	m.persist(ctx)
	return nil
}

// Move repositions a window. Moves are ignored while maximized.
func (m *Manager) Move(ctx context.Context, id string, x, y int) error {
	m.mu.Lock()
	session, err := m.find(id)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if session.Maximized {
		m.mu.Unlock()
		return nil
	}
	session.Position = Position{X: x, Y: y}
	m.mu.Unlock()

	m.persist(ctx)
	return nil
}

// Resize changes a window's size, clamped to the minimum. Resizes are
// ignored while maximized.
func (m *Manager) Resize(ctx context.Context, id string, width, height int) error {
	m.mu.Lock()
	session, err := m.find(id)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if session.Maximized {
		m.mu.Unlock()
		return nil
	}
	session.Size = Size{Width: max(width, MinWidth), Height: max(height, MinHeight)}
	m.mu.Unlock()

	m.persist(ctx)
	return nil
}

// Close removes a window. Its z-index is never handed out again.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	index := -1
	for i, session := range m.windows {
		if session.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrWindowNotFound, id)
	}
	m.windows = append(m.windows[:index], m.windows[index+1:]...)
	m.mu.Unlock()

	m.log.Debug("Closed window %s", id)
	m.persist(ctx)
	return nil
}

// Get returns the window with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.find(id)
	if err != nil {
		return nil, false
	}
	return session, true
}

// Windows returns the window list ordered by z-index, bottom first.
func (m *Manager) Windows() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	windows := make([]*Session, len(m.windows))
	copy(windows, m.windows)
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].ZIndex < windows[j].ZIndex
	})
	return windows
}

// Focused returns the visible window with the highest z-index, or nil when
// everything is minimized or closed.
func (m *Manager) Focused() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.focusedLocked()
}

// focusedLocked finds the top visible window. Requires m.mu held.
func (m *Manager) focusedLocked() *Session {
	var top *Session
	for _, session := range m.windows {
		if session.Minimized {
			continue
		}
		if top == nil || session.ZIndex > top.ZIndex {
			top = session
		}
	}
	return top
}

// find locates a session by id. Requires m.mu held.
func (m *Manager) find(id string) (*Session, error) {
	for _, session := range m.windows {
		if session.ID == id {
			return session, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrWindowNotFound, id)
}

// Restore loads the persisted window list of this user and rebuilds each
// window's content through the factory. Windows whose content cannot be
// rebuilt are dropped with a warning. The z counter continues above the
// highest restored index so old indices are never reused.
func (m *Manager) Restore(ctx context.Context) error {
	value, err := m.store.Get(ctx, m.key())
	if errors.Is(err, data.ErrNotExist) {
		m.mu.Lock()
		m.restored = true
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read window state: %w", err)
	}

	var saved []*Session
	if err := json.Unmarshal([]byte(value), &saved); err != nil {
		return fmt.Errorf("corrupt window state: %w", err)
	}

	windows := make([]*Session, 0, len(saved))
	highest := zFloor - 1
	for _, session := range saved {
		if m.factory != nil {
			content, err := m.factory(ctx, session.Type, session.Data)
			if err != nil {
				m.log.Warn("Dropping %s window %s: %v", session.Type, session.ID, err)
				continue
			}
			session.content = content
		}
		if session.ZIndex > highest {
			highest = session.ZIndex
		}
		windows = append(windows, session)
	}

	m.mu.Lock()
	m.windows = windows
	m.nextZ = highest + 1
	m.restored = true
	m.mu.Unlock()

	m.log.Info("Restored %d windows for %s", len(windows), m.username)
	return nil
}

// key is the store key holding this user's window list.
func (m *Manager) key() string {
	return m.prefix + "-windows-" + m.username
}

// persist writes the full window list. Failures are logged, not returned;
// the live set stays authoritative.
func (m *Manager) persist(ctx context.Context) {
	m.mu.Lock()
	if !m.restored {
		m.mu.Unlock()
		return
	}
	windows := make([]*Session, len(m.windows))
	copy(windows, m.windows)
	m.mu.Unlock()

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].ZIndex < windows[j].ZIndex
	})

	encoded, err := json.Marshal(windows)
	if err != nil {
		m.log.Warn("Failed to encode window state: %v", err)
		return
	}

	if err := m.store.Set(ctx, m.key(), string(encoded)); err != nil {
		m.log.Warn("Failed to persist window state: %v", err)
	}
}
