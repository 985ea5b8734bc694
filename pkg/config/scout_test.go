package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `categorical_columns:
  - web_name
  - team_name
  - element_type
  - opponent_team_name
  - was_home
numerical_columns:
  - minutes
  - goals_scored
  - assists
models:
  xgb:
    path: models/xgb.json
  lgbm:
    path: models/lgbm.json
team_name_mapping:
  Man Utd: Manchester United
  Spurs: Tottenham
gw_team_name_mapping:
  Manchester United: Man United
max_recent_games: 5
`

func writeScoutYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScoutConfig(t *testing.T) {
	cfg, err := LoadScoutConfig(writeScoutYAML(t, sampleYAML))
	require.NoError(t, err)

	assert.Len(t, cfg.CategoricalColumns, 5)
	assert.Len(t, cfg.NumericalColumns, 3)
	assert.Equal(t, "models/xgb.json", cfg.Models["xgb"].Path)
	assert.Equal(t, "Manchester United", cfg.CanonicalTeamName("Man Utd"))
	assert.Equal(t, "Brentford", cfg.CanonicalTeamName("Brentford"))
	assert.Equal(t, DefaultPositionQuota, cfg.PositionQuota)
}

func TestLoadScoutConfig_MissingFile(t *testing.T) {
	_, err := LoadScoutConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadScoutConfig_MissingRequiredKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"no categorical columns",
			"numerical_columns: [minutes]\nmodels: {m: {path: m.json}}\n",
			"categorical_columns",
		},
		{
			"no models",
			"categorical_columns: [web_name, team_name]\nnumerical_columns: [minutes]\n",
			"models",
		},
		{
			"model without path",
			"categorical_columns: [web_name, team_name]\nnumerical_columns: [minutes]\nmodels: {m: {}}\n",
			"has no path",
		},
		{
			"missing identity columns",
			"categorical_columns: [opponent_team_name]\nnumerical_columns: [minutes]\nmodels: {m: {path: m.json}}\n",
			"identity columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScoutConfig(writeScoutYAML(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRecentGamesWindow_Floor(t *testing.T) {
	cfg := &ScoutConfig{MaxRecentGames: 2}
	assert.Equal(t, 5, cfg.RecentGamesWindow())

	cfg.MaxRecentGames = 8
	assert.Equal(t, 8, cfg.RecentGamesWindow())
}
