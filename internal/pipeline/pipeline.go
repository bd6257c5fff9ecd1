// Package pipeline runs bulk news ingestion: every configured keyword is
// fetched and indexed, one-shot or on a cron schedule.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/ovalmind/ovalmind/internal/fallback"
	"github.com/ovalmind/ovalmind/internal/logger"
	"github.com/ovalmind/ovalmind/internal/news"
)

const defaultMaxPerKeyword = 50

type Pipeline struct {
	fetcher       fallback.Fetcher
	ingestor      fallback.Ingestor
	maxPerKeyword int
}

// RunReport summarizes one pipeline run across all keywords.
type RunReport struct {
	RunID    string          `json:"run_id"`
	Started  time.Time       `json:"started"`
	Duration time.Duration   `json:"duration"`
	Keywords []KeywordReport `json:"keywords"`
	Fetched  int             `json:"fetched"`
	Stored   int             `json:"stored"`
	Skipped  int             `json:"skipped"`
	Failed   int             `json:"failed"`
}

type KeywordReport struct {
	Query    string   `json:"query"`
	Fetched  int      `json:"fetched"`
	Stored   int      `json:"stored"`
	Skipped  int      `json:"skipped"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func New(fetcher fallback.Fetcher, ingestor fallback.Ingestor, maxPerKeyword int) *Pipeline {
	if maxPerKeyword <= 0 {
		maxPerKeyword = defaultMaxPerKeyword
	}
	return &Pipeline{fetcher: fetcher, ingestor: ingestor, maxPerKeyword: maxPerKeyword}
}

// Run fetches and ingests every keyword. A keyword that fails is recorded
// and the run continues; URLs repeated across keywords are stored once
// because ingestion dedups on URL.
func (p *Pipeline) Run(ctx context.Context, keywords []Keyword) (*RunReport, error) {
	report := &RunReport{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	logger.Info("pipeline run started", "run_id", report.RunID, "keywords", len(keywords))

	seen := make(map[string]bool)

	for _, kw := range keywords {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		max := kw.Max
		if max <= 0 || max > p.maxPerKeyword {
			max = p.maxPerKeyword
		}

		kr := KeywordReport{Query: kw.Query}

		articles, err := p.fetcher.Fetch(ctx, kw.Query, max)
		if err != nil {
			logger.Warn("keyword fetch failed", "query", kw.Query, "error", err)
			kr.Error = err.Error()
			report.Failed++
			report.Keywords = append(report.Keywords, kr)
			continue
		}
		kr.Fetched = len(articles)
		report.Fetched += len(articles)

		// drop URLs already ingested under an earlier keyword this run
		fresh := make([]news.Article, 0, len(articles))
		for _, a := range articles {
			if a.URL != "" && seen[a.URL] {
				kr.Skipped++
				continue
			}
			seen[a.URL] = true
			fresh = append(fresh, a)
		}

		result, err := p.ingestor.Ingest(ctx, fresh)
		if err != nil {
			kr.Error = err.Error()
			report.Failed++
			report.Keywords = append(report.Keywords, kr)
			continue
		}

		kr.Stored = result.Stored
		kr.Skipped += result.Skipped
		kr.Warnings = result.Warnings
		report.Stored += result.Stored
		report.Skipped += kr.Skipped
		report.Keywords = append(report.Keywords, kr)

		logger.Info("keyword ingested", "query", kw.Query, "fetched", kr.Fetched, "stored", kr.Stored)
	}

	report.Duration = time.Since(report.Started)
	logger.Info("pipeline run finished",
		"run_id", report.RunID,
		"fetched", report.Fetched,
		"stored", report.Stored,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", report.Duration)

	return report, nil
}

// RunScheduled runs the pipeline on a standard 5-field cron schedule until
// the context is cancelled. The keywords file is re-read before every run
// so edits take effect without a restart.
func (p *Pipeline) RunScheduled(ctx context.Context, schedule, keywordsPath string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid cron schedule: %w", err)
	}

	logger.Info("pipeline scheduled", "schedule", schedule, "next", sched.Next(time.Now()))

	for {
		next := sched.Next(time.Now())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(next)):
		}

		keywords, err := LoadKeywords(keywordsPath)
		if err != nil {
			logger.Error("keywords reload failed, skipping run", "error", err)
			continue
		}

		if _, err := p.Run(ctx, keywords); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("scheduled run failed", "error", err)
		}
	}
}
