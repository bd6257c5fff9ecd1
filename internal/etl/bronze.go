// Package etl builds the cricket stats database from the raw Test cricket
// CSV dump (Kaggle, 1877-2024): CSVs load verbatim into a bronze database,
// then a rename-and-cast pass produces the silver tables the catalog
// describes.
package etl

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/ovalmind/ovalmind/internal/logger"
)

// csvSource maps each bronze table to its CSV file. Fall of wickets and
// partnerships are missing from some dataset versions.
type csvSource struct {
	table    string
	file     string
	optional bool
}

var csvSources = []csvSource{
	{table: "players", file: "players_info.csv"},
	{table: "matches", file: "test_Matches_Data.csv"},
	{table: "batting_performances", file: "test_Batting_Card.csv"},
	{table: "bowling_performances", file: "test_Bowling_Card.csv"},
	{table: "fall_of_wickets", file: "test_Fow_Card.csv", optional: true},
	{table: "partnerships", file: "test_Partnership_Card.csv", optional: true},
}

// IngestBronze loads every CSV from csvDir into the bronze database,
// replacing any previous load. Columns are stored as TEXT exactly as they
// appear in the files; typing happens in the silver transform.
func IngestBronze(csvDir, dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("open bronze db: %w", err)
	}
	defer db.Close()

	for _, src := range csvSources {
		path := filepath.Join(csvDir, src.file)
		if _, err := os.Stat(path); err != nil {
			if src.optional {
				logger.Warn("optional csv missing, skipping", "file", src.file)
				continue
			}
			return fmt.Errorf("required csv missing: %s", path)
		}

		count, err := loadCSV(db, src.table, path)
		if err != nil {
			return fmt.Errorf("load %s: %w", src.table, err)
		}
		logger.Info("bronze table loaded", "table", src.table, "rows", count)
	}

	return nil
}

func loadCSV(db *sql.DB, table, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, table)); err != nil {
		return 0, err
	}

	cols := make([]string, len(header))
	marks := make([]string, len(header))
	for i, name := range header {
		cols[i] = fmt.Sprintf("%q TEXT", strings.TrimSpace(name))
		marks[i] = "?"
	}
	ddl := fmt.Sprintf(`CREATE TABLE %q (%s)`, table, strings.Join(cols, ", "))
	if _, err := tx.Exec(ddl); err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %q VALUES (%s)`, table, strings.Join(marks, ", ")))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	args := make([]any, len(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", count+1, err)
		}

		for i := range header {
			if i < len(record) {
				args[i] = record[i]
			} else {
				args[i] = nil
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("row %d: %w", count+1, err)
		}
		count++
	}

	return count, tx.Commit()
}
