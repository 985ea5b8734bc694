package fixtures

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/openfpl/scout-api/internal/models"
)

// CSVSource serves fixtures from a static schedule file with columns
// gameweek,home_team,away_team. Used for offline runs and seasons
// where the external API is not available.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Matches(_ context.Context, gameweek int) ([]models.Match, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture schedule: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture schedule header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}
	for _, col := range []string{"gameweek", "home_team", "away_team"} {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("fixture schedule missing required column %q", col)
		}
	}

	var matches []models.Match
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture schedule row: %w", err)
		}

		gw, err := strconv.Atoi(strings.TrimSpace(row[colIndex["gameweek"]]))
		if err != nil || gw != gameweek {
			continue
		}
		matches = append(matches, models.Match{
			HomeTeam: strings.TrimSpace(row[colIndex["home_team"]]),
			AwayTeam: strings.TrimSpace(row[colIndex["away_team"]]),
		})
	}
	return matches, nil
}
