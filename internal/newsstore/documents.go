package newsstore

import (
	"context"
	"database/sql"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/ncruces"
)

// Upsert stores a document unless its id already exists. Returns false when
// the document was skipped. Concurrent upserts of the same id are resolved
// by the unique constraint, not by locking: exactly one insert wins.
func (s *Store) Upsert(ctx context.Context, doc Document) (bool, error) {
	if s.embedder == nil {
		return false, fmt.Errorf("no embedder configured")
	}
	if doc.ID == "" {
		return false, fmt.Errorf("document has no id")
	}

	// Embed before touching the database so an embedding failure leaves no
	// article row without a vector.
	embedding, err := s.embedder.Embed(ctx, doc.Text)
	if err != nil {
		return false, fmt.Errorf("embed %s: %w", doc.ID, err)
	}
	if len(embedding) != s.dims {
		return false, fmt.Errorf("embedder returned %d dims, store expects %d", len(embedding), s.dims)
	}

	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO articles (doc_id, title, url, source, topic, published_at, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(doc_id) DO NOTHING`,
		doc.ID, doc.Title, doc.URL, doc.Source, doc.Topic, doc.PublishedAt, doc.Text)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil // already present, skip
	}

	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO vec_articles (article_id, embedding) VALUES (?, ?)`, id, blob); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

func (s *Store) Has(ctx context.Context, docID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM articles WHERE doc_id = ?`, docID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n)
	return n, err
}
