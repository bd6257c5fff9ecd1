package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ovalmind/ovalmind/internal/config"
	"github.com/ovalmind/ovalmind/internal/embedder"
	"github.com/ovalmind/ovalmind/internal/fallback"
	"github.com/ovalmind/ovalmind/internal/ingest"
	"github.com/ovalmind/ovalmind/internal/logger"
	"github.com/ovalmind/ovalmind/internal/mcpserver"
	"github.com/ovalmind/ovalmind/internal/news"
	"github.com/ovalmind/ovalmind/internal/newsstore"
	"github.com/ovalmind/ovalmind/internal/statstore"
	"github.com/ovalmind/ovalmind/internal/tools"
)

const version = "1.0.0"

func init() {
	godotenv.Load()
}

func buildRegistry(cfg *config.Config) (*tools.Registry, func(), error) {
	stats, err := statstore.Open(cfg.StatsDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open stats db: %w", err)
	}

	store, err := newsstore.Open(cfg.NewsDBPath, newsstore.Options{
		Dimensions: cfg.Embedder.Dimensions,
		MinScore:   cfg.Search.MinScore,
	})
	if err != nil {
		stats.Close()
		return nil, nil, fmt.Errorf("open news db: %w", err)
	}

	emb, err := embedder.New(embedder.Config{
		Provider: cfg.Embedder.Provider,
		BaseURL:  cfg.Embedder.BaseURL,
		Model:    cfg.Embedder.Model,
	})
	if err != nil {
		stats.Close()
		store.Close()
		return nil, nil, err
	}
	if emb != nil {
		store.SetEmbedder(emb)
	}

	fetcher := news.NewClient(news.Config{
		APIKey:  cfg.News.APIKey,
		BaseURL: cfg.News.BaseURL,
		Lang:    cfg.News.Lang,
	})
	ingestor := ingest.New(store)
	smart := fallback.New(store, fetcher, ingestor, fallback.Config{
		TopK:         cfg.Search.TopK,
		MaxArticles:  cfg.News.MaxArticles,
		FetchTimeout: cfg.News.FetchTimeout,
	})

	registry := tools.NewRegistry()
	tools.RegisterStatsTools(registry, stats)
	tools.RegisterNewsTools(registry, smart, store, fetcher, ingestor)

	cleanup := func() {
		stats.Close()
		store.Close()
	}
	return registry, cleanup, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	registry, cleanup, err := buildRegistry(cfg)
	if err != nil {
		logger.Fatal("failed to wire tools", "error", err)
	}
	defer cleanup()

	srv := mcpserver.New(registry, version)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := mcpserver.RunStdio(ctx, srv); err != nil && ctx.Err() == nil {
		logger.Fatal("mcp server failed", "error", err)
	}
}
