// Package fallback implements cache-fill-on-miss for the semantic news
// store: search, and on an empty result fetch fresh articles, ingest them,
// then search once more.
package fallback

import (
	"context"
	"time"

	"github.com/ovalmind/ovalmind/internal/ingest"
	"github.com/ovalmind/ovalmind/internal/logger"
	"github.com/ovalmind/ovalmind/internal/news"
	"github.com/ovalmind/ovalmind/internal/newsstore"
)

type Searcher interface {
	Search(ctx context.Context, query string, topK int, filter *newsstore.Filter) ([]newsstore.ScoredDocument, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, topic string, max int) ([]news.Article, error)
}

type Ingestor interface {
	Ingest(ctx context.Context, articles []news.Article) (*ingest.Result, error)
}

type Config struct {
	TopK         int
	MaxArticles  int
	FetchTimeout time.Duration
}

type Orchestrator struct {
	store  Searcher
	news   Fetcher
	ingest Ingestor
	cfg    Config
}

// Outcome is always returned to the caller, even when the fallback path
// failed: a degraded lookup is an empty result with a note, not an error.
type Outcome struct {
	Query        string                     `json:"query"`
	Results      []newsstore.ScoredDocument `json:"results"`
	FallbackUsed bool                       `json:"fallback_used"`
	FallbackNote string                     `json:"fallback_note,omitempty"`
	Fetched      int                        `json:"fetched,omitempty"`
	Stored       int                        `json:"stored,omitempty"`
	Warnings     []string                   `json:"warnings,omitempty"`
}

func New(store Searcher, fetcher Fetcher, ingestor Ingestor, cfg Config) *Orchestrator {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = 10
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}

	return &Orchestrator{store: store, news: fetcher, ingest: ingestor, cfg: cfg}
}

// Lookup runs the search with at most one fallback round per invocation.
// That bound holds regardless of how the fallback goes: the fetch and the
// re-search each happen at most once, so one query costs at most one
// upstream call.
func (o *Orchestrator) Lookup(ctx context.Context, query string, topK int) (*Outcome, error) {
	if topK <= 0 {
		topK = o.cfg.TopK
	}

	outcome := &Outcome{Query: query}

	results, err := o.store.Search(ctx, query, topK, nil)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		outcome.Results = results
		return outcome, nil
	}

	outcome.FallbackUsed = true
	logger.Debug("no stored results, fetching fresh articles", "query", query)

	fetchCtx, cancel := context.WithTimeout(ctx, o.cfg.FetchTimeout)
	articles, err := o.news.Fetch(fetchCtx, query, o.cfg.MaxArticles)
	cancel()
	if err != nil {
		// A dead upstream degrades the lookup, it never aborts it.
		logger.Warn("news fetch failed, returning empty result", "query", query, "error", err)
		outcome.FallbackNote = "no stored results and fallback unavailable: " + err.Error()
		return outcome, nil
	}
	outcome.Fetched = len(articles)

	ingestResult, err := o.ingest.Ingest(ctx, articles)
	if err != nil {
		logger.Warn("ingest failed during fallback", "query", query, "error", err)
		outcome.FallbackNote = "fetched articles could not be ingested: " + err.Error()
		return outcome, nil
	}
	outcome.Stored = ingestResult.Stored
	outcome.Warnings = ingestResult.Warnings

	results, err = o.store.Search(ctx, query, topK, nil)
	if err != nil {
		return nil, err
	}
	outcome.Results = results

	if len(results) == 0 {
		outcome.FallbackNote = "no results even after fetching fresh articles"
	}

	return outcome, nil
}
