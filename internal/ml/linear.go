package ml

import (
	"fmt"

	"github.com/openfpl/scout-api/internal/models"
)

// LinearModel scores rows as intercept + sum(coef_i * feature_i).
// Feature columns absent from a row contribute 0, so rows with
// unresolved fixture context still score.
type LinearModel struct {
	name         string
	intercept    float64
	coefficients map[string]float64
}

func (m *LinearModel) Name() string { return m.name }

func (m *LinearModel) Predict(rows []models.FeatureRow) ([]float64, error) {
	if rows == nil {
		return nil, fmt.Errorf("model %s: nil feature rows", m.name)
	}

	out := make([]float64, len(rows))
	for i, row := range rows {
		score := m.intercept
		for col, coef := range m.coefficients {
			score += coef * row.Feature(col)
		}
		out[i] = score
	}
	return out, nil
}
