package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ovalmind/ovalmind/internal/agent"
	"github.com/ovalmind/ovalmind/internal/config"
	"github.com/ovalmind/ovalmind/internal/embedder"
	"github.com/ovalmind/ovalmind/internal/fallback"
	"github.com/ovalmind/ovalmind/internal/ingest"
	"github.com/ovalmind/ovalmind/internal/llm"
	"github.com/ovalmind/ovalmind/internal/logger"
	"github.com/ovalmind/ovalmind/internal/news"
	"github.com/ovalmind/ovalmind/internal/newsstore"
	"github.com/ovalmind/ovalmind/internal/statstore"
	"github.com/ovalmind/ovalmind/internal/tools"
)

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

	model, err := llm.New(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		logger.Fatal("failed to create llm", "error", err)
	}

	registry, cleanup, err := buildRegistry(cfg)
	if err != nil {
		logger.Fatal("failed to wire tools", "error", err)
	}
	defer cleanup()

	a := agent.New(model, registry)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Println("ovalmind cricket intelligence")
	fmt.Println("ask about Test cricket stats or recent cricket news. /reset clears history, /quit exits.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return
		case "/reset":
			a.Reset()
			fmt.Println("history cleared")
			continue
		}

		answer, err := a.Ask(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(answer)
		fmt.Println()
	}
}
