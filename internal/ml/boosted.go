package ml

import (
	"fmt"

	"github.com/openfpl/scout-api/internal/models"
)

// Stump is one depth-1 regression tree in a boosted additive model.
type Stump struct {
	Feature   string  `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      float64 `json:"left"`
	Right     float64 `json:"right"`
}

// BoostedModel scores rows as base_score plus the sum of stump
// contributions: left when feature < threshold, right otherwise.
type BoostedModel struct {
	name      string
	baseScore float64
	stumps    []Stump
}

func (m *BoostedModel) Name() string { return m.name }

func (m *BoostedModel) Predict(rows []models.FeatureRow) ([]float64, error) {
	if rows == nil {
		return nil, fmt.Errorf("model %s: nil feature rows", m.name)
	}

	out := make([]float64, len(rows))
	for i, row := range rows {
		score := m.baseScore
		for _, s := range m.stumps {
			if row.Feature(s.Feature) < s.Threshold {
				score += s.Left
			} else {
				score += s.Right
			}
		}
		out[i] = score
	}
	return out, nil
}
