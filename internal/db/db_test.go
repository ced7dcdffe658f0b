package db

import (
	"context"
	"os"
	"testing"
)

func TestConnect_InvalidDSN(t *testing.T) {
	if _, err := Connect(context.Background(), "postgres://%zz"); err == nil {
		t.Fatalf("expected error for malformed dsn")
	}
}

func TestConnect(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := Connect(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()
	if got := pool.Config().MaxConns; got != maxConns {
		t.Fatalf("expected max conns %d, got %d", maxConns, got)
	}
}
