package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ovalmind/ovalmind/internal/fallback"
	"github.com/ovalmind/ovalmind/internal/ingest"
	"github.com/ovalmind/ovalmind/internal/news"
	"github.com/ovalmind/ovalmind/internal/newsstore"
)

type fakeSmart struct {
	lastQuery string
	lastTopK  int
	outcome   *fallback.Outcome
}

func (f *fakeSmart) Lookup(_ context.Context, query string, topK int) (*fallback.Outcome, error) {
	f.lastQuery = query
	f.lastTopK = topK
	return f.outcome, nil
}

type fakeSearcher struct {
	lastFilter *newsstore.Filter
	results    []newsstore.ScoredDocument
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ int, filter *newsstore.Filter) ([]newsstore.ScoredDocument, error) {
	f.lastFilter = filter
	return f.results, nil
}

type fakeNewsFetcher struct {
	articles []news.Article
	lastMax  int
}

func (f *fakeNewsFetcher) Fetch(_ context.Context, topic string, max int) ([]news.Article, error) {
	f.lastMax = max
	return f.articles, nil
}

type fakeNewsIngestor struct {
	result *ingest.Result
}

func (f *fakeNewsIngestor) Ingest(_ context.Context, _ []news.Article) (*ingest.Result, error) {
	return f.result, nil
}

func newsRegistry(smart SmartSearcher, searcher fallback.Searcher, fetcher fallback.Fetcher, ingestor fallback.Ingestor) *Registry {
	r := NewRegistry()
	RegisterNewsTools(r, smart, searcher, fetcher, ingestor)
	return r
}

func TestSearchNewsReturnsOutcome(t *testing.T) {
	smart := &fakeSmart{outcome: &fallback.Outcome{
		Query:        "Zimbabwe cricket",
		FallbackUsed: true,
		Results: []newsstore.ScoredDocument{
			{Document: newsstore.Document{Title: "Zimbabwe seal series win"}, Score: 0.91},
		},
	}}
	r := newsRegistry(smart, &fakeSearcher{}, &fakeNewsFetcher{}, &fakeNewsIngestor{})

	out, err := r.Execute(context.Background(), "search_news", `{"query": "Zimbabwe cricket", "top_k": 3}`)
	if err != nil {
		t.Fatalf("search_news failed: %v", err)
	}

	if smart.lastQuery != "Zimbabwe cricket" || smart.lastTopK != 3 {
		t.Errorf("arguments not forwarded: %q top_k=%d", smart.lastQuery, smart.lastTopK)
	}

	var outcome fallback.Outcome
	if err := json.Unmarshal([]byte(out), &outcome); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !outcome.FallbackUsed || len(outcome.Results) != 1 {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
}

func TestSearchNewsRequiresQuery(t *testing.T) {
	r := newsRegistry(&fakeSmart{outcome: &fallback.Outcome{}}, &fakeSearcher{}, &fakeNewsFetcher{}, &fakeNewsIngestor{})

	if _, err := r.Execute(context.Background(), "search_news", `{}`); err == nil {
		t.Fatal("expected error for missing query")
	}
	if _, err := r.Execute(context.Background(), "search_news", `not json`); err == nil {
		t.Fatal("expected error for malformed arguments")
	}
}

func TestLookupNewsBuildsFilter(t *testing.T) {
	searcher := &fakeSearcher{}
	r := newsRegistry(&fakeSmart{}, searcher, &fakeNewsFetcher{}, &fakeNewsIngestor{})

	_, err := r.Execute(context.Background(), "lookup_news",
		`{"query": "series win", "source": "Cricinfo", "published_after": "2024-06-01"}`)
	if err != nil {
		t.Fatalf("lookup_news failed: %v", err)
	}

	if searcher.lastFilter == nil {
		t.Fatal("expected a filter")
	}
	if searcher.lastFilter.Source != "Cricinfo" {
		t.Errorf("source filter not set: %+v", searcher.lastFilter)
	}
	if searcher.lastFilter.PublishedAfter.IsZero() {
		t.Error("published_after not parsed")
	}
}

func TestLookupNewsNoFilter(t *testing.T) {
	searcher := &fakeSearcher{}
	r := newsRegistry(&fakeSmart{}, searcher, &fakeNewsFetcher{}, &fakeNewsIngestor{})

	if _, err := r.Execute(context.Background(), "lookup_news", `{"query": "series win"}`); err != nil {
		t.Fatalf("lookup_news failed: %v", err)
	}
	if searcher.lastFilter != nil {
		t.Errorf("expected nil filter, got %+v", searcher.lastFilter)
	}
}

func TestLookupNewsRejectsBadDate(t *testing.T) {
	r := newsRegistry(&fakeSmart{}, &fakeSearcher{}, &fakeNewsFetcher{}, &fakeNewsIngestor{})

	_, err := r.Execute(context.Background(), "lookup_news", `{"query": "q", "published_after": "June 1st"}`)
	if err == nil || !strings.Contains(err.Error(), "published_after") {
		t.Fatalf("expected published_after error, got %v", err)
	}
}

func TestFetchNewsReportsCounts(t *testing.T) {
	fetcher := &fakeNewsFetcher{articles: []news.Article{
		{Title: "a", URL: "https://example.com/a"},
		{Title: "b", URL: "https://example.com/b"},
	}}
	ingestor := &fakeNewsIngestor{result: &ingest.Result{Stored: 1, Skipped: 1}}
	r := newsRegistry(&fakeSmart{}, &fakeSearcher{}, fetcher, ingestor)

	out, err := r.Execute(context.Background(), "fetch_news", `{"topic": "Zimbabwe cricket"}`)
	if err != nil {
		t.Fatalf("fetch_news failed: %v", err)
	}

	if fetcher.lastMax != 10 {
		t.Errorf("expected default max 10, got %d", fetcher.lastMax)
	}

	var result fetchNewsResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result.Fetched != 2 || result.Stored != 1 || result.Skipped != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestFetchNewsRequiresTopic(t *testing.T) {
	r := newsRegistry(&fakeSmart{}, &fakeSearcher{}, &fakeNewsFetcher{}, &fakeNewsIngestor{})

	if _, err := r.Execute(context.Background(), "fetch_news", `{}`); err == nil {
		t.Fatal("expected error for missing topic")
	}
}
