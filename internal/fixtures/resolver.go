package fixtures

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/openfpl/scout-api/internal/models"
)

// ScheduleSource provides the match list for a single gameweek. It is
// a best-effort provider: it may return an empty list.
type ScheduleSource interface {
	Matches(ctx context.Context, gameweek int) ([]models.Match, error)
}

// Resolver maps every team to its opponent and home flag for a target
// gameweek, normalizing schedule-source team names through the
// configured alias table so they line up with the historical data.
type Resolver struct {
	source  ScheduleSource
	aliases map[string]string
	logger  *logrus.Logger
}

func NewResolver(source ScheduleSource, aliases map[string]string, logger *logrus.Logger) *Resolver {
	return &Resolver{
		source:  source,
		aliases: aliases,
		logger:  logger,
	}
}

// Resolve builds the fixture map for a gameweek. An unavailable
// schedule source or an empty match list degrades to an empty map:
// every player's opponent and home flag resolve to null and the
// prediction proceeds.
func (r *Resolver) Resolve(ctx context.Context, gameweek int) models.FixtureMap {
	fixtureMap := make(models.FixtureMap)

	matches, err := r.source.Matches(ctx, gameweek)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"gameweek": gameweek,
			"error":    err.Error(),
		}).Warn("Schedule source unavailable, fixture context degrades to null")
		return fixtureMap
	}
	if len(matches) == 0 {
		r.logger.WithField("gameweek", gameweek).Warn("No matches scheduled, fixture context degrades to null")
		return fixtureMap
	}

	for _, m := range matches {
		home := r.canonical(m.HomeTeam)
		away := r.canonical(m.AwayTeam)

		homeFlag := true
		awayFlag := false
		fixtureMap[home] = models.FixtureEntry{OpponentTeamName: &away, WasHome: &homeFlag}
		fixtureMap[away] = models.FixtureEntry{OpponentTeamName: &home, WasHome: &awayFlag}
	}

	r.logger.WithFields(logrus.Fields{
		"gameweek": gameweek,
		"matches":  len(matches),
	}).Debug("Resolved fixtures")

	return fixtureMap
}

func (r *Resolver) canonical(name string) string {
	if mapped, ok := r.aliases[name]; ok {
		return mapped
	}
	return name
}
