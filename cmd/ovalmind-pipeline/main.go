package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ovalmind/ovalmind/internal/config"
	"github.com/ovalmind/ovalmind/internal/embedder"
	"github.com/ovalmind/ovalmind/internal/ingest"
	"github.com/ovalmind/ovalmind/internal/logger"
	"github.com/ovalmind/ovalmind/internal/news"
	"github.com/ovalmind/ovalmind/internal/newsstore"
	"github.com/ovalmind/ovalmind/internal/pipeline"
)

func init() {
	godotenv.Load()
}

func main() {
	once := flag.Bool("once", false, "run a single ingestion pass and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	store, err := newsstore.Open(cfg.NewsDBPath, newsstore.Options{
		Dimensions: cfg.Embedder.Dimensions,
		MinScore:   cfg.Search.MinScore,
	})
	if err != nil {
		logger.Fatal("failed to open news db", "error", err)
	}
	defer store.Close()

	emb, err := embedder.New(embedder.Config{
		Provider: cfg.Embedder.Provider,
		BaseURL:  cfg.Embedder.BaseURL,
		Model:    cfg.Embedder.Model,
	})
	if err != nil {
		logger.Fatal("failed to create embedder", "error", err)
	}
	if emb == nil {
		logger.Fatal("pipeline needs an embedder, set EMBEDDER_PROVIDER")
	}
	store.SetEmbedder(emb)

	fetcher := news.NewClient(news.Config{
		APIKey:  cfg.News.APIKey,
		BaseURL: cfg.News.BaseURL,
		Lang:    cfg.News.Lang,
	})
	p := pipeline.New(fetcher, ingest.New(store), cfg.Pipeline.MaxArticles)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *once || cfg.Pipeline.Schedule == "" {
		keywords, err := pipeline.LoadKeywords(cfg.Pipeline.KeywordsPath)
		if err != nil {
			logger.Fatal("failed to load keywords", "error", err)
		}

		report, err := p.Run(ctx, keywords)
		if err != nil {
			logger.Fatal("pipeline run failed", "error", err)
		}

		json.NewEncoder(os.Stdout).Encode(report)
		return
	}

	if err := p.RunScheduled(ctx, cfg.Pipeline.Schedule, cfg.Pipeline.KeywordsPath); err != nil && ctx.Err() == nil {
		logger.Fatal("scheduled pipeline failed", "error", err)
	}
}
