package ml

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfpl/scout-api/internal/models"
	"github.com/openfpl/scout-api/pkg/config"
)

func writeArtifact(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadModel_Linear(t *testing.T) {
	path := writeArtifact(t, "linear.json", `{
		"type": "linear",
		"intercept": 1.5,
		"coefficients": {"minutes": 0.05, "goals_scored": 2.0}
	}`)

	model, err := LoadModel("lin", path)
	require.NoError(t, err)
	assert.Equal(t, "lin", model.Name())

	rows := []models.FeatureRow{
		{Features: map[string]float64{"minutes": 90, "goals_scored": 1}},
		{Features: map[string]float64{"minutes": 60}},
	}

	preds, err := model.Predict(rows)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.InDelta(t, 1.5+0.05*90+2.0, preds[0], 1e-9)
	// Missing goals_scored contributes 0.
	assert.InDelta(t, 1.5+0.05*60, preds[1], 1e-9)
}

func TestLoadModel_Boosted(t *testing.T) {
	path := writeArtifact(t, "boosted.json", `{
		"type": "boosted",
		"base_score": 2.0,
		"stumps": [
			{"feature": "minutes", "threshold": 45, "left": -1.0, "right": 1.0},
			{"feature": "goals_scored", "threshold": 0.5, "left": 0.0, "right": 2.5}
		]
	}`)

	model, err := LoadModel("gbm", path)
	require.NoError(t, err)

	rows := []models.FeatureRow{
		{Features: map[string]float64{"minutes": 90, "goals_scored": 1}},
		{Features: map[string]float64{"minutes": 20, "goals_scored": 0}},
	}

	preds, err := model.Predict(rows)
	require.NoError(t, err)
	assert.InDelta(t, 2.0+1.0+2.5, preds[0], 1e-9)
	assert.InDelta(t, 2.0-1.0+0.0, preds[1], 1e-9)
}

func TestLoadModel_UnknownType(t *testing.T) {
	path := writeArtifact(t, "odd.json", `{"type": "joblib"}`)

	_, err := LoadModel("odd", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model type")
}

func TestLoadModel_CorruptArtifact(t *testing.T) {
	path := writeArtifact(t, "corrupt.json", `{not json`)

	_, err := LoadModel("corrupt", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt artifact")
}

func TestLoadModel_MissingFile(t *testing.T) {
	_, err := LoadModel("gone", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable artifact")
}

func TestLoadModels(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	linear := writeArtifact(t, "a.json", `{"type": "linear", "coefficients": {"minutes": 0.1}}`)
	boosted := writeArtifact(t, "b.json", `{"type": "boosted", "stumps": [{"feature": "minutes", "threshold": 45, "left": 0, "right": 1}]}`)

	loaded, err := LoadModels(map[string]config.ModelConfig{
		"linear":  {Path: linear},
		"boosted": {Path: boosted},
	}, log)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Deterministic load order by name.
	assert.Equal(t, "boosted", loaded[0].Name())
	assert.Equal(t, "linear", loaded[1].Name())
}

func TestLoadModels_FatalOnBadArtifact(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	_, err := LoadModels(map[string]config.ModelConfig{
		"bad": {Path: filepath.Join(t.TempDir(), "nope.json")},
	}, log)
	require.Error(t, err)
}
