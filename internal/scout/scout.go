package scout

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/openfpl/scout-api/internal/fixtures"
	"github.com/openfpl/scout-api/internal/ml"
	"github.com/openfpl/scout-api/internal/models"
	"github.com/openfpl/scout-api/pkg/config"
)

// Version is stamped into every persisted scout document.
const Version = "1.0.0"

// GameweekThreshold is the last gameweek of a season.
const GameweekThreshold = 38

// Scout runs the prediction pipeline: recency aggregation, fixture
// resolution, ensemble inference and optimal team selection. It is
// immutable after construction and safe for concurrent requests.
type Scout struct {
	cfg      *config.ScoutConfig
	models   []ml.Model
	resolver *fixtures.Resolver
	logger   *logrus.Logger
}

func NewScout(cfg *config.ScoutConfig, modelSet []ml.Model, resolver *fixtures.Resolver, logger *logrus.Logger) *Scout {
	return &Scout{
		cfg:      cfg,
		models:   modelSet,
		resolver: resolver,
		logger:   logger,
	}
}

// NextGameweek determines the target gameweek: one past the maximum
// gameweek present in the data, clamped to [1, 38].
func NextGameweek(records []models.PlayerRecord) int {
	maxGW := 0
	for _, r := range records {
		if r.Gameweek > maxGW {
			maxGW = r.Gameweek
		}
	}

	next := maxGW + 1
	if next < 1 {
		next = 1
	}
	if next > GameweekThreshold {
		next = GameweekThreshold
	}
	return next
}

// filterHistory drops rows at or past the season threshold; the final
// gameweek has no future fixture to predict.
func filterHistory(records []models.PlayerRecord) []models.PlayerRecord {
	filtered := make([]models.PlayerRecord, 0, len(records))
	for _, r := range records {
		if r.Gameweek < GameweekThreshold {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// PredictPlayers produces one expected-points prediction per distinct
// player in the history for the given target gameweek.
func (s *Scout) PredictPlayers(ctx context.Context, records []models.PlayerRecord, gameweek int) ([]models.Prediction, error) {
	history := filterHistory(records)
	if len(history) == 0 {
		return nil, fmt.Errorf("no usable player rows in uploaded data")
	}

	rows, err := AggregateFeatures(history, s.cfg)
	if err != nil {
		return nil, err
	}

	// Fixture resolution is best-effort: an unreachable schedule
	// source degrades opponent/home context to null, it does not fail
	// the request.
	fixtureMap := s.resolver.Resolve(ctx, gameweek)

	for i := range rows {
		rows[i].Gameweek = gameweek
		entry := fixtureMap[s.cfg.CanonicalTeamName(rows[i].TeamName)]
		rows[i].OpponentTeamName = entry.OpponentTeamName
		rows[i].WasHome = entry.WasHome
	}

	points, err := ensemblePredict(ctx, s.models, rows)
	if err != nil {
		return nil, err
	}

	predictions := make([]models.Prediction, len(rows))
	for i, row := range rows {
		predictions[i] = models.Prediction{
			WebName:          row.WebName,
			TeamName:         row.TeamName,
			ElementType:      row.ElementType,
			OpponentTeamName: row.OpponentTeamName,
			WasHome:          row.WasHome,
			ExpectedPoints:   points[i],
		}
	}

	s.logger.WithFields(logrus.Fields{
		"gameweek": gameweek,
		"players":  len(predictions),
		"models":   len(s.models),
	}).Info("Player predictions complete")

	return predictions, nil
}

// Generate is the primary pipeline entry point. A zero gameweek
// defaults to one past the maximum gameweek in the data.
func (s *Scout) Generate(ctx context.Context, records []models.PlayerRecord, gameweek int) (*models.ScoutDocument, error) {
	if gameweek == 0 {
		gameweek = NextGameweek(filterHistory(records))
	}
	if gameweek < 1 || gameweek > GameweekThreshold {
		return nil, fmt.Errorf("gameweek %d out of range [1, %d]", gameweek, GameweekThreshold)
	}

	predictions, err := s.PredictPlayers(ctx, records, gameweek)
	if err != nil {
		return nil, err
	}

	return &models.ScoutDocument{
		ScoutTeam:    s.SelectOptimalTeam(predictions),
		PlayerPoints: predictions,
		Gameweek:     gameweek,
		Version:      Version,
	}, nil
}
