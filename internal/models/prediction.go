package models

// Prediction is a player's expected points for the target gameweek,
// the unweighted mean across all loaded models.
type Prediction struct {
	WebName          string  `json:"web_name"`
	TeamName         string  `json:"team_name"`
	ElementType      int     `json:"element_type"`
	OpponentTeamName *string `json:"opponent_team_name"`
	WasHome          *bool   `json:"was_home"`
	ExpectedPoints   float64 `json:"expected_points"`
}

// TeamEntry is one selected squad member.
type TeamEntry struct {
	WebName          string  `json:"web_name"`
	TeamName         string  `json:"team_name"`
	Position         string  `json:"position"`
	OpponentTeamName *string `json:"opponent_team_name"`
	WasHome          *bool   `json:"was_home"`
	ExpectedPoints   float64 `json:"expected_points"`
	Role             string  `json:"role"`
}

// ScoutDocument is the persisted per-gameweek result bundle.
type ScoutDocument struct {
	ScoutTeam    []TeamEntry  `json:"scout_team"`
	PlayerPoints []Prediction `json:"player_points"`
	Gameweek     int          `json:"gameweek"`
	Version      string       `json:"version"`
}
