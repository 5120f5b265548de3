package desktop_test

import (
	"testing"

	"github.com/mwantia/webtop/desktop"
	"github.com/mwantia/webtop/storage"
	"github.com/mwantia/webtop/storage/ephemeral"
)

// syncScheduler runs reconcile tasks inline so tests stay deterministic.
func syncScheduler(task func()) {
	task()
}

func newTestStore(t *testing.T) storage.Backend {
	t.Helper()

	store := ephemeral.NewEphemeralBackend()
	if err := store.Open(t.Context()); err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return store
}

func newTestLayout(t *testing.T, store storage.Backend, opts ...desktop.LayoutOption) *desktop.Layout {
	t.Helper()

	opts = append([]desktop.LayoutOption{desktop.WithScheduler(syncScheduler)}, opts...)
	layout, err := desktop.NewLayout(store, opts...)
	if err != nil {
		t.Fatalf("Failed to create layout: %v", err)
	}
	if err := layout.Load(t.Context()); err != nil {
		t.Fatalf("Failed to load layout: %v", err)
	}
	return layout
}

func TestLayoutPersistence(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	layout := newTestLayout(t, store)
	layout.Place(ctx, "node-b", desktop.Cell{Column: 3, Row: 0})
	layout.Place(ctx, "node-a", desktop.Cell{Column: 3, Row: 1})

	reloaded := newTestLayout(t, store)
	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries after reload, got %d", len(entries))
	}
	// Iteration follows id order, independent of insertion order.
	if entries[0].ID != "node-a" || entries[1].ID != "node-b" {
		t.Errorf("Expected id-ordered entries, got %s before %s", entries[0].ID, entries[1].ID)
	}
	if cell, exists := reloaded.Cell("node-b"); !exists || cell != (desktop.Cell{Column: 3, Row: 0}) {
		t.Errorf("Expected node-b at 3,0 after reload, got %+v", cell)
	}

	layout.Remove(ctx, "node-b")
	reloaded = newTestLayout(t, store)
	if _, exists := reloaded.Cell("node-b"); exists {
		t.Errorf("Expected removal to persist")
	}
}

func TestLayoutLoadCorrupt(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	if err := store.Set(ctx, "webtop-desktop-positions", "{not json"); err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}

	layout, err := desktop.NewLayout(store)
	if err != nil {
		t.Fatalf("Failed to create layout: %v", err)
	}
	if err := layout.Load(ctx); err == nil {
		t.Errorf("Expected an error loading corrupt layout state")
	}
}

func TestLayoutReconcile(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	cfg := desktop.Config(360, 300)

	layout := newTestLayout(t, store)
	layout.Reconcile(ctx, []string{"readme", "notes", "music"}, cfg)

	// New entries fill free cells right-to-left, top-to-bottom, in listing
	// order.
	expect := map[string]desktop.Cell{
		"readme": {Column: 3, Row: 0},
		"notes":  {Column: 3, Row: 1},
		"music":  {Column: 2, Row: 0},
	}
	for id, want := range expect {
		if cell, exists := layout.Cell(id); !exists || cell != want {
			t.Errorf("Expected %s at %+v, got %+v", id, want, cell)
		}
	}

	// Entries that disappeared from the folder lose their position, the
	// rest keep theirs.
	layout.Reconcile(ctx, []string{"readme", "music"}, cfg)
	if _, exists := layout.Cell("notes"); exists {
		t.Errorf("Expected the orphaned position to be dropped")
	}
	if cell, _ := layout.Cell("music"); cell != (desktop.Cell{Column: 2, Row: 0}) {
		t.Errorf("Expected surviving positions untouched, got %+v", cell)
	}

	// Reconciling an in-sync layout schedules nothing.
	calls := 0
	counting, err := desktop.NewLayout(store, desktop.WithScheduler(func(task func()) {
		calls++
		task()
	}))
	if err != nil {
		t.Fatalf("Failed to create layout: %v", err)
	}
	if err := counting.Load(ctx); err != nil {
		t.Fatalf("Failed to load layout: %v", err)
	}
	counting.Reconcile(ctx, []string{"readme", "music"}, cfg)
	if calls != 0 {
		t.Errorf("Expected no deferred work for an in-sync layout, got %d tasks", calls)
	}
}

func TestLayoutReconcileDeferred(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	cfg := desktop.Config(360, 300)

	var tasks []func()
	layout, err := desktop.NewLayout(store, desktop.WithScheduler(func(task func()) {
		tasks = append(tasks, task)
	}))
	if err != nil {
		t.Fatalf("Failed to create layout: %v", err)
	}
	if err := layout.Load(ctx); err != nil {
		t.Fatalf("Failed to load layout: %v", err)
	}

	layout.Reconcile(ctx, []string{"readme"}, cfg)
	if _, exists := layout.Cell("readme"); exists {
		t.Fatalf("Expected no placement before the deferred task runs")
	}

	// Only one reconcile is in flight at a time.
	layout.Reconcile(ctx, []string{"readme"}, cfg)
	if len(tasks) != 1 {
		t.Fatalf("Expected a single deferred task, got %d", len(tasks))
	}

	tasks[0]()
	if cell, exists := layout.Cell("readme"); !exists || cell != (desktop.Cell{Column: 3, Row: 0}) {
		t.Errorf("Expected readme placed after the task ran, got %+v", cell)
	}

	// After the pending task ran, new work can be scheduled again.
	layout.Reconcile(ctx, []string{"readme", "notes"}, cfg)
	if len(tasks) != 2 {
		t.Errorf("Expected a second deferred task, got %d", len(tasks))
	}
}

func TestLayoutRearrangeRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	cfg := desktop.Config(360, 300)

	layout := newTestLayout(t, store)
	layout.Reconcile(ctx, []string{"a", "b"}, cfg)

	ids := []string{"a", "b"}
	target, _ := layout.Cell("b")
	layout.Apply(ctx, desktop.Rearrange(ids, layout.Positions(), "a", target, cfg))

	if cell, _ := layout.Cell("a"); cell != target {
		t.Errorf("Expected a on the target cell, got %+v", cell)
	}
	if cell, _ := layout.Cell("b"); cell == target {
		t.Errorf("Expected b displaced off the target cell")
	}

	reloaded := newTestLayout(t, store)
	if cell, _ := reloaded.Cell("a"); cell != target {
		t.Errorf("Expected the rearranged layout to persist, got %+v", cell)
	}
}
