package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ModelConfig points at a serialized model artifact on disk.
type ModelConfig struct {
	Path string `mapstructure:"path"`
}

// ScoutConfig is the YAML-backed scouting configuration: the tabular
// schema of the player data, the model registry and the team-name
// normalization tables.
type ScoutConfig struct {
	CategoricalColumns []string               `mapstructure:"categorical_columns"`
	NumericalColumns   []string               `mapstructure:"numerical_columns"`
	Models             map[string]ModelConfig `mapstructure:"models"`
	TeamNameMapping    map[string]string      `mapstructure:"team_name_mapping"`
	GWTeamNameMapping  map[string]string      `mapstructure:"gw_team_name_mapping"`
	MaxRecentGames     int                    `mapstructure:"max_recent_games"`
	PositionQuota      map[int]int            `mapstructure:"position_quota"`
}

// DefaultPositionQuota is the fixed 15-man squad composition:
// 2 GK, 5 DEF, 5 MID, 3 FWD.
var DefaultPositionQuota = map[int]int{1: 2, 2: 5, 3: 5, 4: 3}

// PositionNames maps element_type codes to display names.
var PositionNames = map[int]string{
	1: "Goalkeeper",
	2: "Defender",
	3: "Midfielder",
	4: "Forward",
}

// LoadScoutConfig loads and validates the scout YAML configuration.
// Missing required keys are a startup-fatal configuration error.
func LoadScoutConfig(path string) (*ScoutConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scout config %s: %w", path, err)
	}

	var cfg ScoutConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scout config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.PositionQuota == nil {
		cfg.PositionQuota = DefaultPositionQuota
	}

	return &cfg, nil
}

// Validate checks the required configuration keys up front so a bad
// deployment fails at startup instead of on the first request.
func (c *ScoutConfig) Validate() error {
	if len(c.CategoricalColumns) == 0 {
		return fmt.Errorf("scout config missing required key: categorical_columns")
	}
	if len(c.NumericalColumns) == 0 {
		return fmt.Errorf("scout config missing required key: numerical_columns")
	}
	if len(c.Models) == 0 {
		return fmt.Errorf("scout config missing required key: models")
	}
	for name, m := range c.Models {
		if m.Path == "" {
			return fmt.Errorf("scout config model %q has no path", name)
		}
	}
	if !c.HasCategoricalColumn("web_name") || !c.HasCategoricalColumn("team_name") {
		return fmt.Errorf("categorical_columns must include the player identity columns web_name and team_name")
	}
	return nil
}

// HasCategoricalColumn reports whether col is part of the configured
// categorical schema.
func (c *ScoutConfig) HasCategoricalColumn(col string) bool {
	for _, cc := range c.CategoricalColumns {
		if cc == col {
			return true
		}
	}
	return false
}

// RecentGamesWindow returns the recency window with a floor of 5 so a
// degenerate configured value cannot disable recency weighting.
func (c *ScoutConfig) RecentGamesWindow() int {
	if c.MaxRecentGames > 5 {
		return c.MaxRecentGames
	}
	return 5
}

// CanonicalTeamName passes a schedule-source team name through the
// alias table. Unmapped names pass through unchanged.
func (c *ScoutConfig) CanonicalTeamName(name string) string {
	if mapped, ok := c.TeamNameMapping[name]; ok {
		return mapped
	}
	return name
}
