package scout

import (
	"sort"

	"github.com/openfpl/scout-api/internal/models"
	"github.com/openfpl/scout-api/pkg/config"
)

type dedupeKey struct {
	webName     string
	elementType int
}

// selectOptimalTeam picks the quota-count highest-expected-points
// players per position (fixed code order 1,2,3,4), merges the buckets
// sorted by expected points descending, deduplicates by
// (player, position) and assigns captain/vice to the top two entries.
// Ties keep input order; short position pools emit what exists.
func selectOptimalTeam(predictions []models.Prediction, quota map[int]int) []models.Prediction {
	positions := make([]int, 0, len(quota))
	for pos := range quota {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	selected := make([]models.Prediction, 0, 15)
	for _, pos := range positions {
		bucket := make([]models.Prediction, 0)
		for _, p := range predictions {
			if p.ElementType == pos {
				bucket = append(bucket, p)
			}
		}
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].ExpectedPoints > bucket[j].ExpectedPoints
		})
		if max := quota[pos]; len(bucket) > max {
			bucket = bucket[:max]
		}
		selected = append(selected, bucket...)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].ExpectedPoints > selected[j].ExpectedPoints
	})

	// Guard against accidental duplicate input rows.
	seen := make(map[dedupeKey]bool, len(selected))
	team := selected[:0]
	for _, p := range selected {
		key := dedupeKey{webName: p.WebName, elementType: p.ElementType}
		if seen[key] {
			continue
		}
		seen[key] = true
		team = append(team, p)
	}

	return team
}

// SelectOptimalTeam renders the selected squad with captaincy roles
// and display names. Usable standalone for pre-computed predictions.
func (s *Scout) SelectOptimalTeam(predictions []models.Prediction) []models.TeamEntry {
	team := selectOptimalTeam(predictions, s.cfg.PositionQuota)

	entries := make([]models.TeamEntry, 0, len(team))
	for i, p := range team {
		role := ""
		if len(team) >= 2 {
			switch i {
			case 0:
				role = "captain"
			case 1:
				role = "vice"
			}
		}
		entries = append(entries, models.TeamEntry{
			WebName:          p.WebName,
			TeamName:         s.displayTeamName(p.TeamName),
			Position:         config.PositionNames[p.ElementType],
			OpponentTeamName: s.displayOpponent(p.OpponentTeamName),
			WasHome:          p.WasHome,
			ExpectedPoints:   p.ExpectedPoints,
			Role:             role,
		})
	}
	return entries
}

func (s *Scout) displayTeamName(name string) string {
	if display, ok := s.cfg.GWTeamNameMapping[name]; ok {
		return display
	}
	return name
}

func (s *Scout) displayOpponent(name *string) *string {
	if name == nil {
		return nil
	}
	display := s.displayTeamName(*name)
	return &display
}
