package models

// FixtureEntry is one team's directed view of a fixture. Nil fields
// mean the schedule source could not resolve the gameweek and the
// prediction proceeds with degraded context.
type FixtureEntry struct {
	OpponentTeamName *string `json:"opponent_team_name"`
	WasHome          *bool   `json:"was_home"`
}

// FixtureMap maps canonical team names to their fixture context for a
// single target gameweek.
type FixtureMap map[string]FixtureEntry

// Match is a single scheduled fixture as reported by a schedule source.
type Match struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}
