package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/importer"
	kvrepo "storefront/internal/repository/kv"
	"storefront/internal/seed"
	"storefront/internal/service/store"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to product CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	repo, err := kvrepo.Open(ctx, kvrepo.Options{
		Backend:     cfg.StorageBackend,
		SQLitePath:  cfg.SQLitePath,
		PostgresDSN: cfg.DBConnString,
		RedisAddr:   cfg.RedisAddr,
	}, nil)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer repo.Close()

	storeService := store.New(repo, nil, store.Options{
		Namespace:      cfg.StorageNamespace,
		DefaultCatalog: seed.Products(),
	})
	storeService.Load(ctx)

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, storeService)

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed after %d products: %v", res.Total(), err)
	}

	fmt.Printf("Imported %d products (%d new, %d updated) in %s\n", res.Total(), res.Added, res.Updated, time.Since(start).Truncate(time.Millisecond))
}
