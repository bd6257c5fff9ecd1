package newsstore

import (
	"context"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/ncruces"
)

// Search embeds the query with the store's embedder and returns up to topK
// documents ordered by descending similarity. An empty store, or no document
// above the configured score floor, yields an empty slice and no error.
// Filter conditions are applied in the same statement as the KNN join, so
// surviving results keep their distance order.
func (s *Store) Search(ctx context.Context, query string, topK int, filter *Filter) ([]ScoredDocument, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}
	if topK <= 0 {
		topK = 5
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(embedding) != s.dims {
		return nil, fmt.Errorf("embedder returned %d dims, store expects %d", len(embedding), s.dims)
	}

	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return nil, err
	}

	q := `
		SELECT a.doc_id, a.title, a.url, a.source, a.topic, a.published_at, a.body, v.distance
		FROM vec_articles v
		JOIN articles a ON v.article_id = a.id
		WHERE v.embedding MATCH ?
		  AND k = ?`
	args := []any{blob, topK}

	if filter != nil {
		if filter.Source != "" {
			q += " AND a.source = ?"
			args = append(args, filter.Source)
		}
		if filter.Topic != "" {
			q += " AND a.topic = ?"
			args = append(args, filter.Topic)
		}
		if !filter.PublishedAfter.IsZero() {
			q += " AND a.published_at >= ?"
			args = append(args, filter.PublishedAfter.UTC().Format("2006-01-02T15:04:05Z"))
		}
	}

	q += " ORDER BY v.distance"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ScoredDocument
	for rows.Next() {
		var doc Document
		var distance float64
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.URL, &doc.Source, &doc.Topic, &doc.PublishedAt, &doc.Text, &distance); err != nil {
			return nil, err
		}

		score := 1 - distance
		if s.minScore > 0 && score < s.minScore {
			continue
		}

		results = append(results, ScoredDocument{Document: doc, Score: score})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
