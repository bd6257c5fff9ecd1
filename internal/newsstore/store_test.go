package newsstore

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

// fakeEmbedder returns canned unit vectors so similarity order in tests is
// fully determined by the test, not by a model.
type fakeEmbedder struct {
	vecs map[string][]float32
	fail bool
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.fail {
		return nil, fmt.Errorf("embedder down")
	}
	if v, ok := f.vecs[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

// openTestStore uses a file-backed database: vec0 KNN does not work on
// :memory: databases with this binding version.
func openTestStore(t *testing.T, minScore float64) (*Store, *fakeEmbedder) {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "news.db"), Options{Dimensions: 3, MinScore: minScore})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	fake := &fakeEmbedder{vecs: map[string][]float32{}}
	store.SetEmbedder(fake)
	return store, fake
}

func testDoc(id string) Document {
	return Document{
		ID:          id,
		Text:        "title for " + id,
		Title:       "title for " + id,
		URL:         "https://example.com/" + id,
		Source:      "Cricinfo",
		Topic:       "Zimbabwe cricket",
		PublishedAt: "2024-06-01T10:00:00Z",
	}
}

func TestOpenAndClose(t *testing.T) {
	store, err := Open(":memory:", Options{})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	if store.Dimensions() != defaultDimensions {
		t.Errorf("expected default dimensions, got %d", store.Dimensions())
	}
}

func TestDimensionPinnedAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.db")

	store, err := Open(path, Options{Dimensions: 3})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	store.Close()

	if _, err := Open(path, Options{Dimensions: 4}); err == nil {
		t.Fatal("expected error reopening with a different dimension")
	}
}

func TestUpsertSkipsDuplicate(t *testing.T) {
	store, _ := openTestStore(t, 0)
	ctx := context.Background()

	doc := testDoc("a1")

	stored, err := store.Upsert(ctx, doc)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if !stored {
		t.Fatal("expected first upsert to store")
	}

	stored, err = store.Upsert(ctx, doc)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if stored {
		t.Fatal("expected duplicate to be skipped")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 document, got %d", count)
	}

	has, err := store.Has(ctx, "a1")
	if err != nil {
		t.Fatalf("has failed: %v", err)
	}
	if !has {
		t.Error("expected Has to report the document")
	}
}

func TestUpsertEmbedFailureStoresNothing(t *testing.T) {
	store, fake := openTestStore(t, 0)
	fake.fail = true

	if _, err := store.Upsert(context.Background(), testDoc("a1")); err == nil {
		t.Fatal("expected error when embedder fails")
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty store after failed upsert, got %d", count)
	}
}

func TestSearchEmptyStore(t *testing.T) {
	store, _ := openTestStore(t, 0)

	results, err := store.Search(context.Background(), "anything", 5, nil)
	if err != nil {
		t.Fatalf("search on empty store should not error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearchRanksBySimilarity(t *testing.T) {
	store, fake := openTestStore(t, 0)
	ctx := context.Background()

	near := testDoc("near")
	far := testDoc("far")
	mid := testDoc("mid")
	fake.vecs[near.Text] = []float32{1, 0, 0}
	fake.vecs[far.Text] = []float32{0, 1, 0}
	fake.vecs[mid.Text] = []float32{0.8, 0.6, 0}
	fake.vecs["the query"] = []float32{1, 0, 0}

	for _, doc := range []Document{far, near, mid} {
		if _, err := store.Upsert(ctx, doc); err != nil {
			t.Fatalf("upsert %s failed: %v", doc.ID, err)
		}
	}

	results, err := store.Search(ctx, "the query", 3, nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Document.ID != "near" || results[1].Document.ID != "mid" || results[2].Document.ID != "far" {
		t.Errorf("unexpected order: %s, %s, %s",
			results[0].Document.ID, results[1].Document.ID, results[2].Document.ID)
	}

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestSearchHonorsTopK(t *testing.T) {
	store, _ := openTestStore(t, 0)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		if _, err := store.Upsert(ctx, testDoc(fmt.Sprintf("a%d", i))); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	results, err := store.Search(ctx, "query", 3, nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestSearchFilterPreservesOrder(t *testing.T) {
	store, fake := openTestStore(t, 0)
	ctx := context.Background()

	a := testDoc("a")
	b := testDoc("b")
	b.Source = "BBC Sport"
	c := testDoc("c")
	fake.vecs[a.Text] = []float32{1, 0, 0}
	fake.vecs[b.Text] = []float32{0.8, 0.6, 0}
	fake.vecs[c.Text] = []float32{0.6, 0.8, 0}
	fake.vecs["q"] = []float32{1, 0, 0}

	for _, doc := range []Document{a, b, c} {
		if _, err := store.Upsert(ctx, doc); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	results, err := store.Search(ctx, "q", 3, &Filter{Source: "Cricinfo"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results after filter, got %d", len(results))
	}
	if results[0].Document.ID != "a" || results[1].Document.ID != "c" {
		t.Errorf("filter changed relative order: %s, %s", results[0].Document.ID, results[1].Document.ID)
	}
}

func TestSearchPublishedAfterFilter(t *testing.T) {
	store, _ := openTestStore(t, 0)
	ctx := context.Background()

	old := testDoc("old")
	old.PublishedAt = "2020-01-01T00:00:00Z"
	fresh := testDoc("fresh")

	for _, doc := range []Document{old, fresh} {
		if _, err := store.Upsert(ctx, doc); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	results, err := store.Search(ctx, "q", 5, &Filter{PublishedAfter: cutoff})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "fresh" {
		t.Errorf("expected only the fresh document, got %d results", len(results))
	}
}

func TestSearchMinScoreFloor(t *testing.T) {
	store, fake := openTestStore(t, 0.5)
	ctx := context.Background()

	near := testDoc("near")
	far := testDoc("far")
	fake.vecs[near.Text] = []float32{1, 0, 0}
	fake.vecs[far.Text] = []float32{0, 1, 0}
	fake.vecs["q"] = []float32{1, 0, 0}

	for _, doc := range []Document{near, far} {
		if _, err := store.Upsert(ctx, doc); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	results, err := store.Search(ctx, "q", 5, nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "near" {
		t.Errorf("expected only the near document above the floor, got %d results", len(results))
	}
}
