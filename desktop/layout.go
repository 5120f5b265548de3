package desktop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tidwall/btree"

	"github.com/mwantia/webtop/data"
	"github.com/mwantia/webtop/log"
	"github.com/mwantia/webtop/storage"
)

// Scheduler defers a task until after the current update pass. The desktop
// shell wires this into its event loop; the default runs the task on a
// fresh goroutine.
type Scheduler func(task func())

// IconPosition pairs a desktop entry id with its cell.
type IconPosition struct {
	ID   string
	Cell Cell
}

// Layout is the persisted icon placement of the desktop folder: node id to
// cell, kept in id order so iteration and persistence stay deterministic.
type Layout struct {
	mu      sync.Mutex
	cells   *btree.Map[string, Cell]
	pending bool

	store    storage.Backend
	prefix   string
	schedule Scheduler
	log      *log.Logger
}

type LayoutOption func(*Layout) error

// WithPrefix changes the store key prefix, matching the filesystem's.
func WithPrefix(prefix string) LayoutOption {
	return func(l *Layout) error {
		l.prefix = prefix
		return nil
	}
}

// WithScheduler replaces the deferral used by Reconcile.
func WithScheduler(schedule Scheduler) LayoutOption {
	return func(l *Layout) error {
		l.schedule = schedule
		return nil
	}
}

// WithLogger attaches a logger; defaults to a discarding one.
func WithLogger(logger *log.Logger) LayoutOption {
	return func(l *Layout) error {
		l.log = logger
		return nil
	}
}

// NewLayout creates an empty layout bound to a store. Call Load to pick up
// persisted positions.
func NewLayout(store storage.Backend, opts ...LayoutOption) (*Layout, error) {
	l := &Layout{
		cells:  btree.NewMap[string, Cell](0),
		store:  store,
		prefix: "webtop",
		log:    log.Discard(),
		schedule: func(task func()) {
			go task()
		},
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Load reads the persisted layout. A missing key leaves the layout empty.
func (l *Layout) Load(ctx context.Context) error {
	value, err := l.store.Get(ctx, l.key())
	if errors.Is(err, data.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read desktop layout: %w", err)
	}

	var positions map[string]Cell
	if err := json.Unmarshal([]byte(value), &positions); err != nil {
		return fmt.Errorf("corrupt desktop layout: %w", err)
	}

	l.mu.Lock()
	l.cells.Clear()
	for id, cell := range positions {
		l.cells.Set(id, cell)
	}
	l.mu.Unlock()

	return nil
}

// Cell returns the stored cell for an entry.
func (l *Layout) Cell(id string) (Cell, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.cells.Get(id)
}

// Entries returns all positions in id order.
func (l *Layout) Entries() []IconPosition {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]IconPosition, 0, l.cells.Len())
	l.cells.Scan(func(id string, cell Cell) bool {
		entries = append(entries, IconPosition{ID: id, Cell: cell})
		return true
	})
	return entries
}

// Positions returns the layout as a plain map, the shape Rearrange takes.
func (l *Layout) Positions() map[string]Cell {
	l.mu.Lock()
	defer l.mu.Unlock()

	positions := make(map[string]Cell, l.cells.Len())
	l.cells.Scan(func(id string, cell Cell) bool {
		positions[id] = cell
		return true
	})
	return positions
}

// Occupied returns the set of cells currently holding an icon.
func (l *Layout) Occupied() map[Cell]bool {
	return occupiedCells(l.Positions())
}

// Place stores the cell for one entry.
func (l *Layout) Place(ctx context.Context, id string, cell Cell) {
	l.mu.Lock()
	l.cells.Set(id, cell)
	l.mu.Unlock()

	l.persist(ctx)
}

// Remove drops an entry, e.g. after it was merged into a folder and no
// longer occupies desktop space.
func (l *Layout) Remove(ctx context.Context, id string) {
	l.mu.Lock()
	l.cells.Delete(id)
	l.mu.Unlock()

	l.persist(ctx)
}

// Apply replaces the whole layout, the counterpart to Rearrange's result.
func (l *Layout) Apply(ctx context.Context, positions map[string]Cell) {
	l.mu.Lock()
	l.cells.Clear()
	for id, cell := range positions {
		l.cells.Set(id, cell)
	}
	l.mu.Unlock()

	l.persist(ctx)
}

// Reconcile aligns the layout with the current desktop folder listing:
// positions whose entry disappeared are dropped, entries without a position
// get the next free cell. The change is deferred one tick through the
// scheduler so a render pass never mutates the state it derived from, and
// at most one reconcile is in flight. A layout already in sync schedules
// nothing.
func (l *Layout) Reconcile(ctx context.Context, entries []string, cfg GridConfig) {
	l.mu.Lock()
	if l.pending || l.inSync(entries) {
		l.mu.Unlock()
		return
	}
	l.pending = true
	l.mu.Unlock()

	l.schedule(func() {
		l.reconcileNow(ctx, entries, cfg)
	})
}

// inSync reports whether the layout covers exactly the given entries.
// Requires l.mu held.
func (l *Layout) inSync(entries []string) bool {
	if l.cells.Len() != len(entries) {
		return false
	}
	for _, id := range entries {
		if _, exists := l.cells.Get(id); !exists {
			return false
		}
	}
	return true
}

func (l *Layout) reconcileNow(ctx context.Context, entries []string, cfg GridConfig) {
	current := make(map[string]bool, len(entries))
	for _, id := range entries {
		current[id] = true
	}

	l.mu.Lock()

	orphans := make([]string, 0)
	l.cells.Scan(func(id string, _ Cell) bool {
		if !current[id] {
			orphans = append(orphans, id)
		}
		return true
	})
	for _, id := range orphans {
		l.cells.Delete(id)
	}

	placed := 0
	for _, id := range entries {
		if _, exists := l.cells.Get(id); exists {
			continue
		}
		occupied := make(map[Cell]bool, l.cells.Len())
		l.cells.Scan(func(_ string, cell Cell) bool {
			occupied[cell] = true
			return true
		})
		cell, free := NextFreeCell(occupied, cfg)
		if !free {
			l.log.Warn("Desktop grid is full, leaving %s unplaced", id)
			break
		}
		l.cells.Set(id, cell)
		placed++
	}

	l.pending = false
	l.mu.Unlock()

	if len(orphans) > 0 || placed > 0 {
		l.log.Debug("Reconciled desktop layout: %d placed, %d orphaned", placed, len(orphans))
		l.persist(ctx)
	}
}

// key is the store key holding the layout.
func (l *Layout) key() string {
	return l.prefix + "-desktop-positions"
}

// persist writes the layout. Failures are logged, not returned; the live
// layout stays authoritative.
func (l *Layout) persist(ctx context.Context) {
	encoded, err := json.Marshal(l.Positions())
	if err != nil {
		l.log.Warn("Failed to encode desktop layout: %v", err)
		return
	}

	if err := l.store.Set(ctx, l.key(), string(encoded)); err != nil {
		l.log.Warn("Failed to persist desktop layout: %v", err)
	}
}
