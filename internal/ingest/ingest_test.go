package ingest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ovalmind/ovalmind/internal/news"
	"github.com/ovalmind/ovalmind/internal/newsstore"
)

// memStore records upserts and can fail specific ids.
type memStore struct {
	docs    map[string]newsstore.Document
	failIDs map[string]bool
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]newsstore.Document{}, failIDs: map[string]bool{}}
}

func (m *memStore) Upsert(_ context.Context, doc newsstore.Document) (bool, error) {
	if m.failIDs[doc.ID] {
		return false, fmt.Errorf("embedder down")
	}
	if _, ok := m.docs[doc.ID]; ok {
		return false, nil
	}
	m.docs[doc.ID] = doc
	return true, nil
}

func makeArticles(n int) []news.Article {
	articles := make([]news.Article, n)
	for i := range articles {
		articles[i] = news.Article{
			Title:       fmt.Sprintf("Article %d", i),
			Description: "some description",
			URL:         fmt.Sprintf("https://example.com/a%d", i),
			Source:      "Cricinfo",
			Topic:       "Zimbabwe cricket",
			PublishedAt: "2024-06-01T10:00:00Z",
		}
	}
	return articles
}

func TestIngestStoresAll(t *testing.T) {
	store := newMemStore()
	ing := New(store)

	result, err := ing.Ingest(context.Background(), makeArticles(8))
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if result.Stored != 8 || result.Skipped != 0 {
		t.Errorf("expected 8 stored, got %+v", result)
	}
	if len(store.docs) != 8 {
		t.Errorf("expected 8 documents in store, got %d", len(store.docs))
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	store := newMemStore()
	ing := New(store)
	articles := makeArticles(8)

	if _, err := ing.Ingest(context.Background(), articles); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}

	result, err := ing.Ingest(context.Background(), articles)
	if err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}
	if result.Stored != 0 {
		t.Errorf("expected 0 newly stored on repeat, got %d", result.Stored)
	}
	if result.Skipped != 8 {
		t.Errorf("expected 8 skipped, got %d", result.Skipped)
	}
}

func TestIngestDedupsWithinBatch(t *testing.T) {
	store := newMemStore()
	ing := New(store)

	articles := makeArticles(3)
	articles = append(articles, articles[0]) // upstream repeats itself

	result, err := ing.Ingest(context.Background(), articles)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if result.Stored != 3 || result.Skipped != 1 {
		t.Errorf("expected 3 stored and 1 skipped, got %+v", result)
	}
}

func TestIngestContinuesPastFailures(t *testing.T) {
	store := newMemStore()
	store.failIDs[DocID("https://example.com/a1")] = true
	ing := New(store)

	result, err := ing.Ingest(context.Background(), makeArticles(4))
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}
	if result.Stored != 3 {
		t.Errorf("expected 3 stored, got %d", result.Stored)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
	if !strings.Contains(result.Warnings[0], "a1") {
		t.Errorf("warning should name the failed article: %s", result.Warnings[0])
	}
}

func TestIngestSkipsMissingURL(t *testing.T) {
	store := newMemStore()
	ing := New(store)

	result, err := ing.Ingest(context.Background(), []news.Article{{Title: "no url"}})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if result.Stored != 0 || len(result.Warnings) != 1 {
		t.Errorf("expected warning for missing url, got %+v", result)
	}
}

func TestDocumentText(t *testing.T) {
	a := news.Article{Title: "Title", Description: "Desc"}
	if got := DocumentText(a); got != "Title Desc" {
		t.Errorf("unexpected text: %q", got)
	}

	a.Content = "Body"
	if got := DocumentText(a); got != "Title Desc Body" {
		t.Errorf("unexpected text with content: %q", got)
	}
}
