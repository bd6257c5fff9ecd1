package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ovalmind/ovalmind/internal/ingest"
	"github.com/ovalmind/ovalmind/internal/news"
)

type stubFetcher struct {
	byTopic  map[string][]news.Article
	failures map[string]error
	maxSeen  map[string]int
}

func (s *stubFetcher) Fetch(_ context.Context, topic string, max int) ([]news.Article, error) {
	if s.maxSeen == nil {
		s.maxSeen = map[string]int{}
	}
	s.maxSeen[topic] = max
	if err := s.failures[topic]; err != nil {
		return nil, err
	}
	articles := s.byTopic[topic]
	if len(articles) > max {
		articles = articles[:max]
	}
	return articles, nil
}

type recordingIngestor struct {
	batches [][]news.Article
	urls    map[string]bool
}

func (r *recordingIngestor) Ingest(_ context.Context, articles []news.Article) (*ingest.Result, error) {
	if r.urls == nil {
		r.urls = map[string]bool{}
	}
	r.batches = append(r.batches, articles)
	result := &ingest.Result{}
	for _, a := range articles {
		if r.urls[a.URL] {
			result.Skipped++
			continue
		}
		r.urls[a.URL] = true
		result.Stored++
	}
	return result, nil
}

func articlesFor(topic string, n int) []news.Article {
	out := make([]news.Article, n)
	for i := range out {
		out[i] = news.Article{
			Title: fmt.Sprintf("%s %d", topic, i),
			URL:   fmt.Sprintf("https://example.com/%s/%d", topic, i),
			Topic: topic,
		}
	}
	return out
}

func TestRunIngestsAllKeywords(t *testing.T) {
	fetcher := &stubFetcher{byTopic: map[string][]news.Article{
		"Zimbabwe cricket": articlesFor("zim", 4),
		"Ashes":            articlesFor("ashes", 3),
	}}
	ingestor := &recordingIngestor{}
	p := New(fetcher, ingestor, 10)

	report, err := p.Run(context.Background(), []Keyword{
		{Query: "Zimbabwe cricket"},
		{Query: "Ashes"},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.RunID == "" {
		t.Error("expected a run id")
	}
	if report.Fetched != 7 || report.Stored != 7 || report.Failed != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
	if len(report.Keywords) != 2 {
		t.Fatalf("expected 2 keyword reports, got %d", len(report.Keywords))
	}
}

func TestRunDedupsAcrossKeywords(t *testing.T) {
	shared := articlesFor("shared", 2)
	fetcher := &stubFetcher{byTopic: map[string][]news.Article{
		"keyword one": shared,
		"keyword two": append(articlesFor("two", 1), shared...),
	}}
	ingestor := &recordingIngestor{}
	p := New(fetcher, ingestor, 10)

	report, err := p.Run(context.Background(), []Keyword{
		{Query: "keyword one"},
		{Query: "keyword two"},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Stored != 3 {
		t.Errorf("expected 3 stored, got %d", report.Stored)
	}
	if report.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", report.Skipped)
	}
	// the repeated URLs never reach the ingestor a second time
	if len(ingestor.batches[1]) != 1 {
		t.Errorf("expected 1 article in second batch, got %d", len(ingestor.batches[1]))
	}
}

func TestRunContinuesPastKeywordFailure(t *testing.T) {
	fetcher := &stubFetcher{
		byTopic:  map[string][]news.Article{"good": articlesFor("good", 2)},
		failures: map[string]error{"bad": fmt.Errorf("%w: status 503", news.ErrUpstreamUnavailable)},
	}
	ingestor := &recordingIngestor{}
	p := New(fetcher, ingestor, 10)

	report, err := p.Run(context.Background(), []Keyword{
		{Query: "bad"},
		{Query: "good"},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Failed != 1 || report.Stored != 2 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Keywords[0].Error == "" {
		t.Error("failed keyword should carry the error")
	}
}

func TestRunCapsPerKeywordBudget(t *testing.T) {
	fetcher := &stubFetcher{byTopic: map[string][]news.Article{
		"big": articlesFor("big", 60),
	}}
	p := New(fetcher, &recordingIngestor{}, 50)

	_, err := p.Run(context.Background(), []Keyword{{Query: "big", Max: 200}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if fetcher.maxSeen["big"] != 50 {
		t.Errorf("per-keyword budget not capped: %d", fetcher.maxSeen["big"])
	}
}

func TestLoadKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	content := `keywords:
  - query: Zimbabwe cricket
    max: 20
  - query: Ashes
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	keywords, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %d", len(keywords))
	}
	if keywords[0].Query != "Zimbabwe cricket" || keywords[0].Max != 20 {
		t.Errorf("unexpected first keyword: %+v", keywords[0])
	}
	if keywords[1].Max != 0 {
		t.Errorf("expected unset max, got %d", keywords[1].Max)
	}
}

func TestLoadKeywordsRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(path, []byte("keywords: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKeywords(path); err == nil {
		t.Fatal("expected error for empty keywords")
	}

	if err := os.WriteFile(path, []byte("keywords:\n  - max: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKeywords(path); err == nil {
		t.Fatal("expected error for keyword without query")
	}
}
