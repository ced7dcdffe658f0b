package kv

import (
	"context"
	"fmt"
	"log"

	"storefront/internal/db"
	"storefront/internal/migrate"
)

// Storage backends accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Options selects and addresses a storage backend.
type Options struct {
	Backend     string
	SQLitePath  string
	PostgresDSN string
	RedisAddr   string
}

// Open connects to the configured backend. The postgres backend is migrated
// before it is returned.
func Open(ctx context.Context, opts Options, logger *log.Logger) (Repository, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return NewSQLite(opts.SQLitePath)
	case BackendPostgres:
		pool, err := db.Connect(ctx, opts.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		if err := migrate.Apply(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		return NewPostgres(pool, logger), nil
	case BackendRedis:
		return NewRedis(ctx, opts.RedisAddr)
	}
	return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
}
