package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"storefront/internal/config"
	"storefront/internal/httpserver"
	kvrepo "storefront/internal/repository/kv"
	"storefront/internal/seed"
	"storefront/internal/service/advice"
	"storefront/internal/service/store"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	logger.Printf("storage backend=%s namespace=%s", cfg.StorageBackend, cfg.StorageNamespace)

	storeService := store.New(repo, logger, store.Options{
		Namespace:      cfg.StorageNamespace,
		DefaultCatalog: seed.Products(),
	})
	storeService.Load(ctx)

	var gen advice.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := advice.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatalf("init advice client: %v", err)
		}
		gen = gemini
	} else {
		logger.Printf("GEMINI_API_KEY not set, stylist replies will use fallbacks")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Store:       storeService,
		Advice:      advice.New(gen, logger),
		Storage:     repo,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Printf("server stopped with error: %v", err)
		return
	}
	logger.Printf("server stopped")
}
