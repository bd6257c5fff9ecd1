// Package catalog describes the cricket stats schema for query generation.
// The catalog is static: it is the contract of the silver tables the ETL
// produces, not a live reflection of the database.
package catalog

type Column struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type Table struct {
	Name        string   `json:"table_name"`
	Description string   `json:"description"`
	Columns     []Column `json:"columns"`
}

type SampleQuery struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	SQL         string `json:"sql"`
}

var tables = []Table{
	{
		Name:        "players",
		Description: "Test cricket players, 1877-2024.",
		Columns: []Column{
			{Name: "player_id", Type: "INTEGER", Description: "unique player id"},
			{Name: "name", Type: "TEXT", Description: "full player name"},
			{Name: "country_id", Type: "INTEGER"},
			{Name: "batting_style", Type: "TEXT"},
			{Name: "bowling_style", Type: "TEXT"},
			{Name: "gender", Type: "TEXT"},
			{Name: "dob", Type: "TEXT", Description: "date of birth"},
			{Name: "dod", Type: "TEXT", Description: "date of death, if any"},
		},
	},
	{
		Name:        "matches",
		Description: "One row per Test match with result, venue and innings totals.",
		Columns: []Column{
			{Name: "match_id", Type: "INTEGER", Description: "unique match id"},
			{Name: "team1", Type: "TEXT"},
			{Name: "team2", Type: "TEXT"},
			{Name: "winner", Type: "TEXT", Description: "winning team name, NULL for draws"},
			{Name: "result_text", Type: "TEXT"},
			{Name: "start_date", Type: "TEXT"},
			{Name: "end_date", Type: "TEXT"},
			{Name: "stadium", Type: "TEXT"},
			{Name: "city", Type: "TEXT"},
			{Name: "country", Type: "TEXT"},
			{Name: "toss_winner", Type: "TEXT"},
			{Name: "toss_choice", Type: "TEXT"},
			{Name: "mom_player_id", Type: "INTEGER", Description: "man of the match"},
		},
	},
	{
		Name:        "batting",
		Description: "Per-innings batting performances. Join players for names, matches for venue and date.",
		Columns: []Column{
			{Name: "match_id", Type: "INTEGER"},
			{Name: "player_id", Type: "INTEGER"},
			{Name: "innings", Type: "INTEGER"},
			{Name: "team", Type: "TEXT"},
			{Name: "runs", Type: "INTEGER"},
			{Name: "balls_faced", Type: "INTEGER"},
			{Name: "fours", Type: "INTEGER"},
			{Name: "sixes", Type: "INTEGER"},
			{Name: "strike_rate", Type: "REAL"},
		},
	},
	{
		Name:        "bowling",
		Description: "Per-innings bowling performances.",
		Columns: []Column{
			{Name: "match_id", Type: "INTEGER"},
			{Name: "player_id", Type: "INTEGER"},
			{Name: "innings", Type: "INTEGER"},
			{Name: "team", Type: "TEXT"},
			{Name: "overs", Type: "REAL"},
			{Name: "maidens", Type: "INTEGER"},
			{Name: "runs_conceded", Type: "INTEGER"},
			{Name: "wickets", Type: "INTEGER"},
			{Name: "economy", Type: "REAL"},
		},
	},
	{
		Name:        "fall_of_wickets",
		Description: "Score at which each wicket fell.",
		Columns: []Column{
			{Name: "match_id", Type: "INTEGER"},
			{Name: "innings", Type: "INTEGER"},
			{Name: "team", Type: "TEXT"},
			{Name: "wicket", Type: "INTEGER"},
			{Name: "score", Type: "INTEGER"},
			{Name: "player_id", Type: "INTEGER", Description: "batter dismissed"},
		},
	},
	{
		Name:        "partnerships",
		Description: "Batting partnerships with both player ids.",
		Columns: []Column{
			{Name: "match_id", Type: "INTEGER"},
			{Name: "innings", Type: "INTEGER"},
			{Name: "team", Type: "TEXT"},
			{Name: "player1_id", Type: "INTEGER"},
			{Name: "player2_id", Type: "INTEGER"},
			{Name: "runs", Type: "INTEGER"},
			{Name: "balls", Type: "INTEGER"},
		},
	},
}

// All returns every table description, in schema order.
func All() []Table {
	return tables
}

// Lookup finds a table by name.
func Lookup(name string) (*Table, bool) {
	for i := range tables {
		if tables[i].Name == name {
			return &tables[i], true
		}
	}
	return nil, false
}

func TableNames() []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
