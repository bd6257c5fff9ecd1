package newsstore

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"
)

func Open(path string, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// The database stays in rollback journal mode: vec0 KNN queries crash
	// on WAL databases with this binding version.
	dims := opts.Dimensions
	if dims <= 0 {
		dims = defaultDimensions
	}

	s := &Store{db: db, dims: dims, minScore: opts.MinScore}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// All documents and queries share one embedding space. The dimension is
	// pinned on first open; reopening with a different one is an error, not
	// a silent re-index.
	var stored string
	err := s.db.QueryRow(`SELECT value FROM store_meta WHERE key = 'embedding_dim'`).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		if _, err := s.db.Exec(`INSERT INTO store_meta (key, value) VALUES ('embedding_dim', ?)`, strconv.Itoa(s.dims)); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if stored != strconv.Itoa(s.dims) {
			return fmt.Errorf("store has %s-dim embeddings, configured for %d", stored, s.dims)
		}
	}

	if _, err := s.db.Exec(vecSchema(s.dims)); err != nil {
		return err
	}

	return nil
}

func (s *Store) SetEmbedder(e Embedder) {
	s.embedder = e
}

func (s *Store) HasEmbedder() bool {
	return s.embedder != nil
}

func (s *Store) Dimensions() int {
	return s.dims
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

func (s *Store) DB() *sql.DB {
	return s.db
}
