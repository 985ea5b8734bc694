package models

// PlayerRecord is one row of historical performance for a player in a
// single past gameweek. Records are read-only input for a run.
type PlayerRecord struct {
	WebName     string `json:"web_name"`
	TeamName    string `json:"team_name"`
	ElementType int    `json:"element_type"`
	Gameweek    int    `json:"gameweek"`

	// Stats holds the config-defined numeric columns (minutes, goals,
	// assists, ...). Columns missing from the upload are zero-filled
	// during parsing.
	Stats map[string]float64 `json:"stats"`

	// Attrs holds any extra configured categorical columns beyond the
	// identity fields.
	Attrs map[string]string `json:"attrs,omitempty"`

	OpponentTeamName *string `json:"opponent_team_name"`
	WasHome          *bool   `json:"was_home"`
}

// PlayerKey identifies a player across records.
type PlayerKey struct {
	WebName  string
	TeamName string
}

// Key returns the grouping identity of the record.
func (r PlayerRecord) Key() PlayerKey {
	return PlayerKey{WebName: r.WebName, TeamName: r.TeamName}
}

// FeatureRow is one aggregated feature row per player, the input shape
// models score against. Numeric columns are means over the recency
// window; categorical columns are carried from the most recent record.
type FeatureRow struct {
	WebName     string
	TeamName    string
	ElementType int

	// Gameweek is stamped with the target gameweek before inference.
	Gameweek int

	Features map[string]float64
	Attrs    map[string]string

	OpponentTeamName *string
	WasHome          *bool
}

// Feature resolves a named model input against the row. Besides the
// aggregated numeric columns, models may reference the target gameweek
// and the home flag (1/0, 0 when the fixture is unresolved). Unknown
// columns score as 0.
func (r FeatureRow) Feature(name string) float64 {
	if v, ok := r.Features[name]; ok {
		return v
	}
	switch name {
	case "gameweek":
		return float64(r.Gameweek)
	case "element_type":
		return float64(r.ElementType)
	case "was_home":
		if r.WasHome != nil && *r.WasHome {
			return 1
		}
		return 0
	}
	return 0
}
