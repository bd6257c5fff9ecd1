// Package statstore executes guarded read-only queries against the cricket
// stats database. It does not validate queries itself; sqlguard runs
// upstream.
package statstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrExecution wraps engine errors (malformed SQL, unknown table or column,
// type errors). The engine message is preserved verbatim.
var ErrExecution = errors.New("query execution failed")

const defaultMaxRows = 100

type Store struct {
	db      *sql.DB
	maxRows int
}

type ResultSet struct {
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	RowCount  int              `json:"row_count"`
	Truncated bool             `json:"truncated,omitempty"`
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, maxRows: defaultMaxRows}, nil
}

func (s *Store) SetMaxRows(n int) {
	if n > 0 {
		s.maxRows = n
	}
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

// Execute runs a query and returns its rows, capped at the configured row
// limit with a truncation marker.
func (s *Store) Execute(ctx context.Context, query string) (*ResultSet, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExecution, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExecution, err)
	}

	result := &ResultSet{Columns: columns}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if len(result.Rows) >= s.maxRows {
			result.Truncated = true
			break
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrExecution, err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExecution, err)
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

// TableRowCount reports the number of rows in a table, for catalog display.
func (s *Store) TableRowCount(ctx context.Context, table string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrExecution, err)
	}
	return n, nil
}
