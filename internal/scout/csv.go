package scout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/openfpl/scout-api/internal/models"
	"github.com/openfpl/scout-api/pkg/config"
)

// identityColumns must be present in the uploaded CSV header; every
// other configured column is zero-filled when absent (a data-quality
// guard against upstream schema drift).
var identityColumns = []string{"web_name", "team_name", "element_type", "gameweek"}

// ReadRecordsFile parses an uploaded player-history CSV into records
// conforming to the configured schema.
func ReadRecordsFile(path string, cfg *config.ScoutConfig) ([]models.PlayerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open player data: %w", err)
	}
	defer f.Close()
	return ReadRecords(f, cfg)
}

// ReadRecords parses player history rows from r.
func ReadRecords(r io.Reader, cfg *config.ScoutConfig) ([]models.PlayerRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}
	for _, col := range identityColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("player data missing required column %q", col)
		}
	}

	var records []models.PlayerRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		line++

		field := func(col string) string {
			if idx, ok := colIndex[col]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		elementType, err := strconv.Atoi(field("element_type"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid element_type %q", line, field("element_type"))
		}
		gameweek, err := strconv.Atoi(field("gameweek"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid gameweek %q", line, field("gameweek"))
		}

		rec := models.PlayerRecord{
			WebName:     field("web_name"),
			TeamName:    field("team_name"),
			ElementType: elementType,
			Gameweek:    gameweek,
			Stats:       make(map[string]float64, len(cfg.NumericalColumns)),
		}

		// Missing or unparseable stat cells are zero-filled, mirroring
		// the pre-aggregation zero-fill guard.
		for _, col := range cfg.NumericalColumns {
			if v, err := strconv.ParseFloat(field(col), 64); err == nil {
				rec.Stats[col] = v
			} else {
				rec.Stats[col] = 0
			}
		}

		if opp := field("opponent_team_name"); opp != "" {
			rec.OpponentTeamName = &opp
		}
		if wh := field("was_home"); wh != "" {
			wasHome := parseBool(wh)
			rec.WasHome = &wasHome
		}

		for _, col := range cfg.CategoricalColumns {
			switch col {
			case "web_name", "team_name", "element_type", "opponent_team_name", "was_home":
				continue
			}
			if v := field(col); v != "" {
				if rec.Attrs == nil {
					rec.Attrs = make(map[string]string)
				}
				rec.Attrs[col] = v
			}
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("player data has zero usable rows")
	}

	return records, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "t", "yes":
		return true
	}
	return false
}
