package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ovalmind/ovalmind/internal/fallback"
	"github.com/ovalmind/ovalmind/internal/llm"
	"github.com/ovalmind/ovalmind/internal/newsstore"
)

// SmartSearcher is the search-with-fallback entry point.
type SmartSearcher interface {
	Lookup(ctx context.Context, query string, topK int) (*fallback.Outcome, error)
}

type SearchNewsArgs struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type LookupNewsArgs struct {
	Query          string `json:"query"`
	TopK           int    `json:"top_k,omitempty"`
	Source         string `json:"source,omitempty"`
	Topic          string `json:"topic,omitempty"`
	PublishedAfter string `json:"published_after,omitempty"`
}

type FetchNewsArgs struct {
	Topic string `json:"topic"`
	Max   int    `json:"max,omitempty"`
}

type fetchNewsResult struct {
	Topic    string   `json:"topic"`
	Fetched  int      `json:"fetched"`
	Stored   int      `json:"stored"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// RegisterNewsTools wires the semantic news side: smart search with the
// fetch-on-miss fallback, filtered lookup against stored articles only, and
// an explicit fetch-and-ingest operation.
func RegisterNewsTools(registry *Registry, smart SmartSearcher, store fallback.Searcher, fetcher fallback.Fetcher, ingestor fallback.Ingestor) {
	searchTool := llm.Tool{
		Name:        "search_news",
		Description: "Search cricket news by meaning. If nothing relevant is stored yet, fresh articles are fetched and indexed automatically before searching again. Use this for current events, opinions, and anything not in the stats database.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for (e.g. 'Zimbabwe cricket latest results')",
				},
				"top_k": map[string]any{
					"type":        "integer",
					"description": "How many articles to return. Default: 5.",
				},
			},
			"required": []string{"query"},
		},
	}

	registry.Register(searchTool, func(ctx context.Context, args string) (string, error) {
		var params SearchNewsArgs
		if err := json.Unmarshal([]byte(args), &params); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		if params.Query == "" {
			return "", fmt.Errorf("query is required")
		}

		outcome, err := smart.Lookup(ctx, params.Query, params.TopK)
		if err != nil {
			return "", err
		}

		out, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	})

	lookupTool := llm.Tool{
		Name:        "lookup_news",
		Description: "Search only the stored cricket news, optionally filtered by source, topic or publication date. Never fetches from the news API. Use this to inspect what is already indexed.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for",
				},
				"top_k": map[string]any{
					"type":        "integer",
					"description": "How many articles to return. Default: 5.",
				},
				"source": map[string]any{
					"type":        "string",
					"description": "Only articles from this source (e.g. 'Cricinfo')",
				},
				"topic": map[string]any{
					"type":        "string",
					"description": "Only articles ingested under this topic keyword",
				},
				"published_after": map[string]any{
					"type":        "string",
					"description": "Only articles published after this date (YYYY-MM-DD or RFC 3339)",
				},
			},
			"required": []string{"query"},
		},
	}

	registry.Register(lookupTool, func(ctx context.Context, args string) (string, error) {
		var params LookupNewsArgs
		if err := json.Unmarshal([]byte(args), &params); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		if params.Query == "" {
			return "", fmt.Errorf("query is required")
		}

		topK := params.TopK
		if topK <= 0 {
			topK = 5
		}

		var filter *newsstore.Filter
		if params.Source != "" || params.Topic != "" || params.PublishedAfter != "" {
			filter = &newsstore.Filter{Source: params.Source, Topic: params.Topic}
			if params.PublishedAfter != "" {
				after, err := parseDate(params.PublishedAfter)
				if err != nil {
					return "", fmt.Errorf("invalid published_after: %w", err)
				}
				filter.PublishedAfter = after
			}
		}

		results, err := store.Search(ctx, params.Query, topK, filter)
		if err != nil {
			return "", err
		}

		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	})

	fetchTool := llm.Tool{
		Name:        "fetch_news",
		Description: "Fetch the latest articles for a topic from the news API and index them for semantic search. Use this to refresh coverage of a topic on demand.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type":        "string",
					"description": "Topic keyword to fetch (e.g. 'Zimbabwe cricket')",
				},
				"max": map[string]any{
					"type":        "integer",
					"description": "Maximum articles to fetch. Default: 10.",
				},
			},
			"required": []string{"topic"},
		},
	}

	registry.Register(fetchTool, func(ctx context.Context, args string) (string, error) {
		var params FetchNewsArgs
		if err := json.Unmarshal([]byte(args), &params); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		if params.Topic == "" {
			return "", fmt.Errorf("topic is required")
		}

		max := params.Max
		if max <= 0 {
			max = 10
		}

		articles, err := fetcher.Fetch(ctx, params.Topic, max)
		if err != nil {
			return "", err
		}

		ingestResult, err := ingestor.Ingest(ctx, articles)
		if err != nil {
			return "", err
		}

		out, err := json.MarshalIndent(fetchNewsResult{
			Topic:    params.Topic,
			Fetched:  len(articles),
			Stored:   ingestResult.Stored,
			Skipped:  ingestResult.Skipped,
			Warnings: ingestResult.Warnings,
		}, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	})
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
