package scout

import (
	"context"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/openfpl/scout-api/internal/ml"
	"github.com/openfpl/scout-api/internal/models"
)

// ensemblePredict applies every loaded model to the full feature set
// concurrently and averages the per-row outputs. Models are
// independent and stateless, so the fan-out needs no coordination
// beyond the join. Any single model failure fails the whole call: no
// partial-ensemble averaging.
func ensemblePredict(ctx context.Context, modelSet []ml.Model, rows []models.FeatureRow) ([]float64, error) {
	if len(modelSet) == 0 {
		return nil, fmt.Errorf("no models loaded")
	}

	outputs := make([][]float64, len(modelSet))
	errs := make([]error, len(modelSet))

	var wg sync.WaitGroup
	for i, model := range modelSet {
		wg.Add(1)
		go func(i int, model ml.Model) {
			defer wg.Done()
			preds, err := model.Predict(rows)
			if err != nil {
				errs[i] = fmt.Errorf("model %s inference failed: %w", model.Name(), err)
				return
			}
			if len(preds) != len(rows) {
				errs[i] = fmt.Errorf("model %s returned %d predictions for %d rows", model.Name(), len(preds), len(rows))
				return
			}
			outputs[i] = preds
		}(i, model)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// Elementwise unweighted mean across models.
	mean := make([]float64, len(rows))
	perModel := make([]float64, len(modelSet))
	for i := range rows {
		for m := range outputs {
			perModel[m] = outputs[m][i]
		}
		mean[i] = stat.Mean(perModel, nil)
	}
	return mean, nil
}
