package etl

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ovalmind/ovalmind/internal/logger"
)

// silverTransform rewrites one bronze table into its silver shape: renamed
// columns, numeric casts, nothing else. The SELECT column lists are the
// contract the catalog package describes.
type silverTransform struct {
	table    string
	source   string
	ddl      string
	optional bool
	indexes  []string
}

var silverTransforms = []silverTransform{
	{
		table:  "players",
		source: "players",
		ddl: `CREATE TABLE players AS
			SELECT
				CAST(player_id AS INTEGER) AS player_id,
				player_name AS name,
				CAST(country_id AS INTEGER) AS country_id,
				batting_style,
				bowling_style,
				gender,
				dob,
				dod
			FROM bronze.players`,
		indexes: []string{
			"CREATE INDEX idx_players_id ON players(player_id)",
			"CREATE INDEX idx_players_name ON players(name)",
		},
	},
	{
		table:  "matches",
		source: "matches",
		ddl: `CREATE TABLE matches AS
			SELECT
				CAST("Match ID" AS INTEGER) AS match_id,
				"Team1 Name" AS team1,
				"Team2 Name" AS team2,
				"Match Winner" AS winner,
				"Match Result Text" AS result_text,
				"Match Start Date" AS start_date,
				"Match End Date" AS end_date,
				"Match Venue (Stadium)" AS stadium,
				"Match Venue (City)" AS city,
				"Match Venue (Country)" AS country,
				"Toss Winner" AS toss_winner,
				"Toss Winner Choice" AS toss_choice,
				CAST("MOM Player" AS INTEGER) AS mom_player_id
			FROM bronze.matches`,
		indexes: []string{
			"CREATE INDEX idx_matches_id ON matches(match_id)",
			"CREATE INDEX idx_matches_date ON matches(start_date)",
		},
	},
	{
		table:  "batting",
		source: "batting_performances",
		ddl: `CREATE TABLE batting AS
			SELECT
				CAST("Match ID" AS INTEGER) AS match_id,
				CAST(batsman AS INTEGER) AS player_id,
				CAST(innings AS INTEGER) AS innings,
				team,
				CAST(runs AS INTEGER) AS runs,
				CAST(balls AS INTEGER) AS balls_faced,
				CAST(fours AS INTEGER) AS fours,
				CAST(sixes AS INTEGER) AS sixes,
				CAST(strikeRate AS REAL) AS strike_rate
			FROM bronze.batting_performances`,
		indexes: []string{
			"CREATE INDEX idx_batting_match ON batting(match_id)",
			"CREATE INDEX idx_batting_player ON batting(player_id)",
		},
	},
	{
		table:  "bowling",
		source: "bowling_performances",
		ddl: `CREATE TABLE bowling AS
			SELECT
				CAST("Match ID" AS INTEGER) AS match_id,
				CAST("bowler id" AS INTEGER) AS player_id,
				CAST(innings AS INTEGER) AS innings,
				team,
				CAST(overs AS REAL) AS overs,
				CAST(maidens AS INTEGER) AS maidens,
				CAST(conceded AS INTEGER) AS runs_conceded,
				CAST(wickets AS INTEGER) AS wickets,
				CAST(economy AS REAL) AS economy
			FROM bronze.bowling_performances`,
		indexes: []string{
			"CREATE INDEX idx_bowling_match ON bowling(match_id)",
			"CREATE INDEX idx_bowling_player ON bowling(player_id)",
		},
	},
	{
		table:    "fall_of_wickets",
		source:   "fall_of_wickets",
		optional: true,
		ddl: `CREATE TABLE fall_of_wickets AS
			SELECT
				CAST("Match ID" AS INTEGER) AS match_id,
				CAST(innings AS INTEGER) AS innings,
				team,
				CAST(wicket AS INTEGER) AS wicket,
				CAST(runs AS INTEGER) AS score,
				CAST(player AS INTEGER) AS player_id
			FROM bronze.fall_of_wickets`,
		indexes: []string{
			"CREATE INDEX idx_fow_match ON fall_of_wickets(match_id)",
		},
	},
	{
		table:    "partnerships",
		source:   "partnerships",
		optional: true,
		ddl: `CREATE TABLE partnerships AS
			SELECT
				CAST("Match ID" AS INTEGER) AS match_id,
				CAST(innings AS INTEGER) AS innings,
				team,
				CAST(player1 AS INTEGER) AS player1_id,
				CAST(player2 AS INTEGER) AS player2_id,
				CAST("partnership runs" AS INTEGER) AS runs,
				CAST("partnership balls" AS INTEGER) AS balls
			FROM bronze.partnerships`,
		indexes: []string{
			"CREATE INDEX idx_part_match ON partnerships(match_id)",
		},
	},
}

// TransformSilver rebuilds the silver database from bronze. The silver
// schema is what the query tools and the catalog expose; bronze keeps the
// raw column names.
func TransformSilver(bronzePath, silverPath string) error {
	if _, err := os.Stat(bronzePath); err != nil {
		return fmt.Errorf("bronze database not found: %s", bronzePath)
	}
	if err := os.MkdirAll(filepath.Dir(silverPath), 0o755); err != nil {
		return err
	}

	// Rebuild from scratch. Dropping tables one by one is not an option:
	// DDL on main after ATTACH makes the bronze schema unreadable on this
	// driver version, so the old file goes away before the connection opens.
	if err := os.Remove(silverPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old silver db: %w", err)
	}

	db, err := sql.Open("sqlite3", silverPath)
	if err != nil {
		return fmt.Errorf("open silver db: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(`ATTACH DATABASE ? AS bronze`, bronzePath); err != nil {
		return fmt.Errorf("attach bronze: %w", err)
	}

	for _, tr := range silverTransforms {
		present, err := bronzeHasTable(db, tr.source)
		if err != nil {
			return err
		}
		if !present {
			if tr.optional {
				logger.Warn("optional bronze table missing, skipping", "table", tr.source)
				continue
			}
			return fmt.Errorf("bronze table missing: %s", tr.source)
		}

		if _, err := db.Exec(tr.ddl); err != nil {
			return fmt.Errorf("transform %s: %w", tr.table, err)
		}
		for _, idx := range tr.indexes {
			if _, err := db.Exec(idx); err != nil {
				return fmt.Errorf("index %s: %w", tr.table, err)
			}
		}

		var count int
		if err := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %q`, tr.table)).Scan(&count); err != nil {
			return err
		}
		logger.Info("silver table built", "table", tr.table, "rows", count)
	}

	return nil
}

func bronzeHasTable(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM bronze.sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
