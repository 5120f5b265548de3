package sqlite

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/mwantia/webtop/data"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend persists the store in a single SQLite table. This is the
// durable default for desktops that should survive restarts without any
// external service.
type SQLiteBackend struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteBackend creates a new SQLite-backed store.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer; a single pooled connection also keeps
	// ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	backend := &SQLiteBackend{
		db: db,
	}

	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return backend, nil
}

// initSchema creates the database schema.
func (sb *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS webtop_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_webtop_store_updated ON webtop_store(updated);
	`

	_, err := sb.db.Exec(schema)
	return err
}

// Name returns the identifier name defined for this backend
func (*SQLiteBackend) Name() string {
	return "sqlite"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (sb *SQLiteBackend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.db.PingContext(ctx)
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *SQLiteBackend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.db.Close()
}

// Get returns the value stored under key.
func (sb *SQLiteBackend) Get(ctx context.Context, key string) (string, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	var value string
	err := sb.db.QueryRowContext(ctx,
		"SELECT value FROM webtop_store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", data.ErrNotExist
	}
	if err != nil {
		return "", err
	}

	return value, nil
}

// Set stores a value under key, replacing any previous value.
func (sb *SQLiteBackend) Set(ctx context.Context, key, value string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.db.ExecContext(ctx,
		`INSERT INTO webtop_store (key, value, updated) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated`,
		key, value, time.Now().UnixNano())

	return err
}

// Delete removes a key. Deleting an absent key is not an error.
func (sb *SQLiteBackend) Delete(ctx context.Context, key string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.db.ExecContext(ctx, "DELETE FROM webtop_store WHERE key = ?", key)
	return err
}

// Keys returns every stored key with the given prefix in lexical order.
func (sb *SQLiteBackend) Keys(ctx context.Context, prefix string) ([]string, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	rows, err := sb.db.QueryContext(ctx,
		"SELECT key FROM webtop_store WHERE key LIKE ? || '%' ORDER BY key", prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
