// Package sqlguard allow-lists SQL before it reaches the stats database.
// Only a single SELECT statement (including WITH ... SELECT) passes; the
// query string is never modified, only accepted or rejected.
package sqlguard

import (
	"errors"
	"fmt"
	"io"
	"strings"

	rsql "github.com/rqlite/sql"
)

// ErrRejectedStatement is a policy violation, never retried. The wrapped
// detail says what was found.
var ErrRejectedStatement = errors.New("statement rejected")

// Check parses query and returns nil only for a single read-only statement.
// Multi-statement input is rejected even when the first statement is a
// SELECT, so trailing DML can't ride along. The parser attaches CTEs to the
// terminal statement, so WITH ... INSERT parses as an insert and is rejected
// like any other write.
func Check(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: empty query", ErrRejectedStatement)
	}

	p := rsql.NewParser(strings.NewReader(query))

	stmt, err := p.ParseStatement()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty query", ErrRejectedStatement)
		}
		return fmt.Errorf("%w: parse error: %s", ErrRejectedStatement, err)
	}

	if _, ok := stmt.(*rsql.SelectStatement); !ok {
		return fmt.Errorf("%w: only SELECT and WITH ... SELECT are allowed", ErrRejectedStatement)
	}

	// Anything after the first statement, parseable or not, is grounds for
	// rejection.
	next, err := p.ParseStatement()
	if err == nil && next != nil {
		return fmt.Errorf("%w: multiple statements", ErrRejectedStatement)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing input: %s", ErrRejectedStatement, err)
	}

	return nil
}
