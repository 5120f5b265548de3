package ephemeral

import (
	"context"
	"strings"
	"sync"

	"github.com/mwantia/webtop/data"
	"github.com/tidwall/btree"
)

// EphemeralBackend keeps everything in process memory. It is the default
// store for sessions that should vanish on restart, and the workhorse for
// tests. Keys live in an ordered B-tree so prefix scans stay cheap.
type EphemeralBackend struct {
	mu sync.RWMutex

	values *btree.Map[string, string]
	closed bool
}

func NewEphemeralBackend() *EphemeralBackend {
	return &EphemeralBackend{
		values: btree.NewMap[string, string](0),
	}
}

// Name returns the identifier name defined for this backend
func (*EphemeralBackend) Name() string {
	return "ephemeral"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (eb *EphemeralBackend) Open(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.closed = false
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (eb *EphemeralBackend) Close(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.values.Clear()
	eb.closed = true
	return nil
}

// Get returns the value stored under key.
func (eb *EphemeralBackend) Get(ctx context.Context, key string) (string, error) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return "", data.ErrStoreClosed
	}

	value, exists := eb.values.Get(key)
	if !exists {
		return "", data.ErrNotExist
	}

	return value, nil
}

// Set stores a value under key, replacing any previous value.
func (eb *EphemeralBackend) Set(ctx context.Context, key, value string) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return data.ErrStoreClosed
	}

	eb.values.Set(key, value)
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (eb *EphemeralBackend) Delete(ctx context.Context, key string) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return data.ErrStoreClosed
	}

	eb.values.Delete(key)
	return nil
}

// Keys returns every stored key with the given prefix in lexical order.
func (eb *EphemeralBackend) Keys(ctx context.Context, prefix string) ([]string, error) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return nil, data.ErrStoreClosed
	}

	keys := make([]string, 0)
	// B-tree range scan: keys are ordered, so everything below the prefix
	// can be skipped and the scan stops past it.
	eb.values.Ascend(prefix, func(key string, _ string) bool {
		if !strings.HasPrefix(key, prefix) {
			return false
		}
		keys = append(keys, key)
		return true
	})

	return keys, nil
}
