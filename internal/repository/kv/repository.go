package kv

import "context"

// Repository is the durable key-value store the state manager persists into.
// Values are opaque bytes; Get returns domain.ErrNotFound for absent keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries map[string][]byte) error
	Ping(ctx context.Context) error
	Close() error
}
