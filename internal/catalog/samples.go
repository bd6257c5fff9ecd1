package catalog

var sampleQueries = []SampleQuery{
	{
		Category:    "Player Stats",
		Description: "Top 10 run scorers (all time)",
		SQL: `SELECT p.name,
       COUNT(DISTINCT b.match_id) AS matches,
       SUM(b.runs) AS total_runs,
       ROUND(AVG(b.runs), 2) AS avg_runs,
       MAX(b.runs) AS high_score
FROM batting b
JOIN players p ON b.player_id = p.player_id
WHERE b.runs IS NOT NULL
GROUP BY p.name
HAVING COUNT(DISTINCT b.match_id) >= 20
ORDER BY total_runs DESC
LIMIT 10`,
	},
	{
		Category:    "Matches",
		Description: "Recent matches",
		SQL: `SELECT start_date, team1, team2, winner, stadium, country
FROM matches
ORDER BY start_date DESC
LIMIT 10`,
	},
	{
		Category:    "Player Stats",
		Description: "Career summary for one player",
		SQL: `SELECT p.name,
       COUNT(DISTINCT b.match_id) AS matches,
       SUM(b.runs) AS total_runs,
       ROUND(AVG(b.runs), 2) AS average,
       MAX(b.runs) AS highest_score,
       SUM(CASE WHEN b.runs >= 100 THEN 1 ELSE 0 END) AS centuries,
       SUM(CASE WHEN b.runs >= 50 AND b.runs < 100 THEN 1 ELSE 0 END) AS fifties
FROM batting b
JOIN players p ON b.player_id = p.player_id
WHERE p.name LIKE '%Kohli%'
GROUP BY p.name`,
	},
	{
		Category:    "Partnerships",
		Description: "Best partnerships at a venue",
		SQL: `SELECT m.stadium, p1.name AS player1, p2.name AS player2, part.runs, part.balls, m.start_date
FROM partnerships part
JOIN matches m ON part.match_id = m.match_id
JOIN players p1 ON part.player1_id = p1.player_id
JOIN players p2 ON part.player2_id = p2.player_id
WHERE m.stadium = 'Melbourne Cricket Ground'
ORDER BY part.runs DESC
LIMIT 10`,
	},
	{
		Category:    "Head to Head",
		Description: "India vs Australia head-to-head",
		SQL: `SELECT winner, COUNT(*) AS wins
FROM matches
WHERE (team1 = 'India' AND team2 = 'Australia')
   OR (team1 = 'Australia' AND team2 = 'India')
GROUP BY winner
ORDER BY wins DESC`,
	},
}

// SampleQueries returns worked examples the agent can adapt.
func SampleQueries() []SampleQuery {
	return sampleQueries
}
