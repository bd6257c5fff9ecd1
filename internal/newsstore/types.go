package newsstore

import (
	"context"
	"database/sql"
	"time"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Store struct {
	db       *sql.DB
	embedder Embedder
	dims     int
	minScore float64
}

// Document is one embeddable news article. ID is derived from the article
// URL and is the identity key for dedup; a document is inserted once and
// never mutated.
type Document struct {
	ID          string
	Text        string
	Title       string
	URL         string
	Source      string
	Topic       string
	PublishedAt string
}

// ScoredDocument pairs a stored document with its similarity to the query,
// in [0,1], higher = more similar.
type ScoredDocument struct {
	Document Document
	Score    float64
}

// Filter restricts search results by metadata. Zero values mean no
// restriction. Filtering never reorders surviving results.
type Filter struct {
	Source         string
	Topic          string
	PublishedAfter time.Time
}

type Options struct {
	Dimensions int
	MinScore   float64
}
