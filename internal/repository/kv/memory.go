package kv

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

type memoryRepo struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory returns a process-local Repository. Nothing survives a restart.
func NewMemory() Repository {
	return &memoryRepo{entries: make(map[string][]byte)}
}

func (r *memoryRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *memoryRepo) SetMany(_ context.Context, entries map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range entries {
		r.entries[k] = append([]byte(nil), v...)
	}
	return nil
}

func (r *memoryRepo) Ping(context.Context) error { return nil }

func (r *memoryRepo) Close() error { return nil }
