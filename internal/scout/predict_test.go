package scout

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfpl/scout-api/internal/ml"
	"github.com/openfpl/scout-api/internal/models"
)

// stubModel returns a fixed constant for every row.
type stubModel struct {
	name  string
	value float64
	err   error
}

func (m stubModel) Name() string { return m.name }

func (m stubModel) Predict(rows []models.FeatureRow) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]float64, len(rows))
	for i := range out {
		out[i] = m.value
	}
	return out, nil
}

func featureRows(n int) []models.FeatureRow {
	rows := make([]models.FeatureRow, n)
	for i := range rows {
		rows[i] = models.FeatureRow{
			WebName:  fmt.Sprintf("player-%d", i),
			TeamName: "team",
			Features: map[string]float64{"minutes": 90},
		}
	}
	return rows
}

func TestEnsemblePredict_ArithmeticMean(t *testing.T) {
	modelSet := []ml.Model{
		stubModel{name: "a", value: 4.0},
		stubModel{name: "b", value: 6.0},
	}

	points, err := ensemblePredict(context.Background(), modelSet, featureRows(3))
	require.NoError(t, err)
	require.Len(t, points, 3)
	for _, p := range points {
		assert.InDelta(t, 5.0, p, 1e-9)
	}
}

func TestEnsemblePredict_SingleModel(t *testing.T) {
	points, err := ensemblePredict(context.Background(), []ml.Model{stubModel{name: "only", value: 7.25}}, featureRows(1))
	require.NoError(t, err)
	assert.InDelta(t, 7.25, points[0], 1e-9)
}

func TestEnsemblePredict_ModelFailureFailsWholeCall(t *testing.T) {
	modelSet := []ml.Model{
		stubModel{name: "good", value: 4.0},
		stubModel{name: "bad", err: fmt.Errorf("feature shape mismatch")},
	}

	_, err := ensemblePredict(context.Background(), modelSet, featureRows(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Contains(t, err.Error(), "feature shape mismatch")
}

func TestEnsemblePredict_NoModels(t *testing.T) {
	_, err := ensemblePredict(context.Background(), nil, featureRows(1))
	require.Error(t, err)
}

func TestEnsemblePredict_LengthMismatch(t *testing.T) {
	short := shortModel{}
	_, err := ensemblePredict(context.Background(), []ml.Model{short}, featureRows(4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 1 predictions for 4 rows")
}

type shortModel struct{}

func (shortModel) Name() string { return "short" }

func (shortModel) Predict(rows []models.FeatureRow) ([]float64, error) {
	return []float64{1.0}, nil
}
