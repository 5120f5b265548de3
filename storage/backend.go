// Package storage provides the string-keyed persistence layer the desktop
// core saves its state into. Keys are flat strings and values are JSON
// documents; the surface mirrors what a browser's local storage offers,
// plus a lifecycle so remote stores can connect and disconnect cleanly.
package storage

import "context"

// Backend is used as lifecycle entrypoint for store implementations.
type Backend interface {
	// Name returns the identifier name defined for this backend
	Name() string
	// Open is part of the lifecycle behaviour and gets called when opening this backend.
	Open(ctx context.Context) error
	// Close is part of the lifecycle behaviour and gets called when closing this backend.
	Close(ctx context.Context) error

	// Get returns the value stored under key.
	// Absent keys return data.ErrNotExist.
	Get(ctx context.Context, key string) (string, error)
	// Set stores a value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys returns every stored key with the given prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
