package scoring

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"

	"fraudscore/internal/dataset"
	"fraudscore/internal/metrics"
	"fraudscore/internal/ml"
	"fraudscore/pkg/errors"
	"fraudscore/pkg/logger"
)

// idColumn is carried through the feature frame for joining
// predictions back to rows, never handed to the model
const idColumn = "id"

// Result holds one scoring pass over a feature frame. IDs are
// positionally aligned with probabilities and labels.
type Result struct {
	IDs           []string
	Probabilities []float64
	Labels        []int
}

// Engine invokes the loaded model over the final feature frame and
// converts raw output into calibrated probabilities and thresholded
// binary labels.
type Engine struct {
	model     ml.Model
	threshold float64
	log       *logger.Logger
}

// NewEngine creates a scoring engine bound to one model and threshold
func NewEngine(model ml.Model, threshold float64, log *logger.Logger) *Engine {
	return &Engine{
		model:     model,
		threshold: threshold,
		log:       log,
	}
}

// Score produces one probability and one binary label per row. When
// the model exposes a two-class probability capability the positive
// class is used; otherwise the model's direct prediction, coerced to
// float, stands in as the probability surrogate.
func (e *Engine) Score(df dataframe.DataFrame) (*Result, error) {
	if df.Nrow() == 0 {
		return nil, errors.ErrEmptyFrame
	}

	ids := extractIDs(df)
	features := df
	if dataset.HasColumn(df, idColumn) {
		features = df.Drop(idColumn)
	}

	var proba []float64
	var err error
	if scorer, ok := ml.AsProbabilityScorer(e.model); ok {
		proba, err = scorer.PredictProba(features)
	} else {
		e.log.Debug("model has no probability capability, using predictions as surrogate")
		proba, err = e.model.Predict(features)
	}
	if err != nil {
		return nil, errors.Wrap(err, "model inference failed")
	}
	if len(proba) != len(ids) {
		return nil, errors.Newf("model returned %d scores for %d rows", len(proba), len(ids))
	}

	labels := make([]int, len(proba))
	for i, p := range proba {
		if p >= e.threshold {
			labels[i] = 1
		}
	}

	metrics.RowsScored.Add(float64(len(proba)))
	e.log.Infow("scoring finished",
		"rows", len(proba),
		"threshold", e.threshold,
		"positives", countPositives(labels),
	)
	return &Result{
		IDs:           ids,
		Probabilities: proba,
		Labels:        labels,
	}, nil
}

// extractIDs returns the id column verbatim, or a positional index
// when the frame carries no id
func extractIDs(df dataframe.DataFrame) []string {
	if dataset.HasColumn(df, idColumn) {
		return df.Col(idColumn).Records()
	}
	ids := make([]string, df.Nrow())
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}
	return ids
}

func countPositives(labels []int) int {
	count := 0
	for _, l := range labels {
		count += l
	}
	return count
}
