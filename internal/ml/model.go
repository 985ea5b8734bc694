package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/openfpl/scout-api/internal/models"
	"github.com/openfpl/scout-api/pkg/config"
)

// Model scores a batch of aggregated feature rows into one expected
// value per row. Models are pre-trained artifacts, stateless at
// inference time.
type Model interface {
	Name() string
	Predict(rows []models.FeatureRow) ([]float64, error)
}

// artifact is the on-disk JSON envelope around a serialized model.
type artifact struct {
	Type string `json:"type"`

	// linear
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`

	// boosted
	BaseScore float64 `json:"base_score"`
	Stumps    []Stump `json:"stumps"`
}

// LoadModels deserializes every configured model artifact. Any
// unreadable or corrupt artifact is fatal at initialization.
func LoadModels(cfgs map[string]config.ModelConfig, log *logrus.Logger) ([]Model, error) {
	// Deterministic load order keeps startup logs stable.
	names := make([]string, 0, len(cfgs))
	for name := range cfgs {
		names = append(names, name)
	}
	sort.Strings(names)

	loaded := make([]Model, 0, len(names))
	for _, name := range names {
		model, err := LoadModel(name, cfgs[name].Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load model %q: %w", name, err)
		}
		log.WithFields(logrus.Fields{
			"model": name,
			"path":  cfgs[name].Path,
		}).Info("Loaded model artifact")
		loaded = append(loaded, model)
	}
	return loaded, nil
}

// LoadModel deserializes a single model artifact from disk.
func LoadModel(name, path string) (Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unreadable artifact: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("corrupt artifact: %w", err)
	}

	switch art.Type {
	case "linear":
		if len(art.Coefficients) == 0 {
			return nil, fmt.Errorf("linear artifact has no coefficients")
		}
		return &LinearModel{
			name:         name,
			intercept:    art.Intercept,
			coefficients: art.Coefficients,
		}, nil
	case "boosted":
		if len(art.Stumps) == 0 {
			return nil, fmt.Errorf("boosted artifact has no stumps")
		}
		return &BoostedModel{
			name:      name,
			baseScore: art.BaseScore,
			stumps:    art.Stumps,
		}, nil
	default:
		return nil, fmt.Errorf("unknown model type %q", art.Type)
	}
}
