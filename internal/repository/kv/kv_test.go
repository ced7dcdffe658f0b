package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	if _, err := repo.Get(ctx, "test_missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := repo.SetMany(ctx, map[string][]byte{
		"test_cart":     []byte(`[]`),
		"test_wishlist": []byte(`["1"]`),
	}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	got, err := repo.Get(ctx, "test_wishlist")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `["1"]` {
		t.Fatalf("unexpected value %q", got)
	}

	if err := repo.SetMany(ctx, map[string][]byte{"test_wishlist": []byte(`[]`)}); err != nil {
		t.Fatalf("SetMany overwrite: %v", err)
	}
	got, err = repo.Get(ctx, "test_wishlist")
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("expected overwritten value, got %q", got)
	}
}

func TestMemory(t *testing.T) {
	exerciseRepository(t, NewMemory())
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	if err := repo.SetMany(ctx, map[string][]byte{"k": []byte("abc")}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	v, _ := repo.Get(ctx, "k")
	v[0] = 'z'
	again, _ := repo.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}

func TestSQLite(t *testing.T) {
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer repo.Close()
	exerciseRepository(t, repo)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	repo, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	if err := repo.SetMany(ctx, map[string][]byte{"vv_user": []byte(`null`)}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	repo.Close()

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	v, err := reopened.Get(ctx, "vv_user")
	if err != nil || string(v) != "null" {
		t.Fatalf("expected persisted value, got %q err=%v", v, err)
	}
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool, nil); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE kv_entries`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	repo := NewPostgres(pool, nil)
	defer repo.Close()
	exerciseRepository(t, repo)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	repo, err := NewRedis(ctx, addr)
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer repo.Close()
	exerciseRepository(t, repo)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(ctx, Options{Backend: BackendMemory}, nil)
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	exerciseRepository(t, repo)

	repo, err = Open(ctx, Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "open.db")}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()
	exerciseRepository(t, repo)

	if _, err := Open(ctx, Options{Backend: "etcd"}, nil); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
