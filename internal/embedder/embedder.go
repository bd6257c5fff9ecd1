// Package embedder turns text into fixed-length vectors. Documents and
// queries must go through the same embedder or similarity scores are
// meaningless, so the store checks dimensions at the boundary.
package embedder

import (
	"context"
	"fmt"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Config struct {
	Provider string
	BaseURL  string
	Model    string
}

func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "ollama":
		return newOllama(cfg.BaseURL, cfg.Model), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown embedder provider: %s", cfg.Provider)
	}
}
