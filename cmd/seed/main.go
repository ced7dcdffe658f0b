package main

import (
	"context"
	"log"
	"os"

	"storefront/internal/config"
	kvrepo "storefront/internal/repository/kv"
	"storefront/internal/seed"
	"storefront/internal/service/store"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	repo, err := kvrepo.Open(ctx, kvrepo.Options{
		Backend:     cfg.StorageBackend,
		SQLitePath:  cfg.SQLitePath,
		PostgresDSN: cfg.DBConnString,
		RedisAddr:   cfg.RedisAddr,
	}, logger)
	if err != nil {
		logger.Fatalf("open storage: %v", err)
	}
	defer repo.Close()

	storeService := store.New(repo, logger, store.Options{
		Namespace:      cfg.StorageNamespace,
		DefaultCatalog: seed.Products(),
	})
	storeService.Load(ctx)

	if err := seed.Apply(ctx, storeService); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied products=%d", len(storeService.Products()))
}
