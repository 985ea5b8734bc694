package scout

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/openfpl/scout-api/internal/models"
	"github.com/openfpl/scout-api/pkg/config"
)

// AggregateFeatures reduces each player's multi-game history to a
// single feature row of recent form: the mean of every configured
// numeric column over the most recent window of records (descending
// gameweek), with categorical fields carried from the most recent
// record. Players with fewer records than the window average over
// whatever exists.
func AggregateFeatures(records []models.PlayerRecord, cfg *config.ScoutConfig) ([]models.FeatureRow, error) {
	// Without the identity columns in the carry-forward set the
	// grouping key is unusable; fail loudly instead of silently
	// dropping players.
	if !cfg.HasCategoricalColumn("web_name") || !cfg.HasCategoricalColumn("team_name") {
		return nil, fmt.Errorf("categorical_columns missing grouping identity (web_name, team_name)")
	}

	byPlayer := make(map[models.PlayerKey][]models.PlayerRecord)
	for _, r := range records {
		byPlayer[r.Key()] = append(byPlayer[r.Key()], r)
	}

	keys := make([]models.PlayerKey, 0, len(byPlayer))
	for k := range byPlayer {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].WebName != keys[j].WebName {
			return keys[i].WebName < keys[j].WebName
		}
		return keys[i].TeamName < keys[j].TeamName
	})

	window := cfg.RecentGamesWindow()
	rows := make([]models.FeatureRow, 0, len(keys))
	for _, key := range keys {
		history := byPlayer[key]
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].Gameweek > history[j].Gameweek
		})
		if len(history) > window {
			history = history[:window]
		}

		latest := history[0]
		row := models.FeatureRow{
			WebName:     key.WebName,
			TeamName:    key.TeamName,
			ElementType: latest.ElementType,
			Gameweek:    latest.Gameweek,
			Features:    make(map[string]float64, len(cfg.NumericalColumns)),
			Attrs:       latest.Attrs,
		}

		samples := make([]float64, len(history))
		for _, col := range cfg.NumericalColumns {
			for i, rec := range history {
				samples[i] = rec.Stats[col]
			}
			row.Features[col] = stat.Mean(samples, nil)
		}

		rows = append(rows, row)
	}

	return rows, nil
}
