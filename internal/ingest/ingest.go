// Package ingest converts fetched articles into embedded documents and
// writes them to the semantic store.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/ovalmind/ovalmind/internal/logger"
	"github.com/ovalmind/ovalmind/internal/news"
	"github.com/ovalmind/ovalmind/internal/newsstore"
)

type Store interface {
	Upsert(ctx context.Context, doc newsstore.Document) (bool, error)
}

type Ingestor struct {
	store Store
}

// Result reports a batch. Warnings carry per-article embed/store failures;
// they never fail the batch.
type Result struct {
	Stored   int      `json:"stored"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

func New(store Store) *Ingestor {
	return &Ingestor{store: store}
}

// DocID derives the document identity key from an article URL, the same way
// at every write site so dedup holds across ingestion paths.
func DocID(url string) string {
	id := strings.ReplaceAll(url, "/", "_")
	return strings.ReplaceAll(id, ":", "_")
}

// DocumentText builds the embeddable text from an article: title and
// description, plus content when present. The template is fixed; changing it
// would silently split the embedding space between old and new documents.
func DocumentText(a news.Article) string {
	parts := []string{a.Title, a.Description}
	if a.Content != "" {
		parts = append(parts, a.Content)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Ingest stores each article at most once, keyed by URL. Articles repeated
// within the batch or already present in the store are skipped. A failure on
// one article is recorded as a warning and the rest of the batch continues.
func (i *Ingestor) Ingest(ctx context.Context, articles []news.Article) (*Result, error) {
	result := &Result{}

	seen := make(map[string]bool, len(articles))
	for _, a := range articles {
		if a.URL == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("article %q has no url, skipped", a.Title))
			continue
		}
		if seen[a.URL] {
			result.Skipped++
			continue
		}
		seen[a.URL] = true

		doc := newsstore.Document{
			ID:          DocID(a.URL),
			Text:        DocumentText(a),
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Source,
			Topic:       a.Topic,
			PublishedAt: a.PublishedAt,
		}

		stored, err := i.store.Upsert(ctx, doc)
		if err != nil {
			logger.Warn("article ingest failed", "url", a.URL, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", a.URL, err))
			continue
		}

		if stored {
			result.Stored++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}
