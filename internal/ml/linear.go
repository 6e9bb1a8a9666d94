package ml

import (
	"math"

	"github.com/go-gota/gota/dataframe"

	"fraudscore/internal/dataset"
)

// LogisticModel is a logistic regression exported to JSON at train
// time. Numeric features contribute weight*value; categorical features
// contribute the weight of the observed value, with one-hot weights
// folded into the export. A feature the frame does not carry simply
// contributes nothing, consistent with the pipeline's silent-repair
// policy for absent optional features.
type LogisticModel struct {
	Bias        float64                       `json:"bias"`
	Weights     map[string]float64            `json:"weights"`
	Categorical map[string]map[string]float64 `json:"categorical,omitempty"`
}

// PredictProba returns the positive-class probability per row
func (m *LogisticModel) PredictProba(features dataframe.DataFrame) ([]float64, error) {
	n := features.Nrow()
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = m.Bias
	}

	for col, weight := range m.Weights {
		if !dataset.HasColumn(features, col) {
			continue
		}
		values := features.Col(col).Float()
		for i, v := range values {
			if !math.IsNaN(v) {
				scores[i] += weight * v
			}
		}
	}

	for col, valueWeights := range m.Categorical {
		if !dataset.HasColumn(features, col) {
			continue
		}
		records := features.Col(col).Records()
		for i, v := range records {
			if w, ok := valueWeights[v]; ok {
				scores[i] += w
			}
		}
	}

	for i, s := range scores {
		scores[i] = sigmoid(s)
	}
	return scores, nil
}

// Predict returns hard 0/1 labels at the 0.5 decision boundary
func (m *LogisticModel) Predict(features dataframe.DataFrame) ([]float64, error) {
	proba, err := m.PredictProba(features)
	if err != nil {
		return nil, err
	}
	labels := make([]float64, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			labels[i] = 1
		}
	}
	return labels, nil
}

// Importances scores each feature by its absolute coefficient. For a
// categorical feature the mean absolute value-weight is used.
func (m *LogisticModel) Importances() (map[string]float64, error) {
	importances := make(map[string]float64, len(m.Weights)+len(m.Categorical))
	for col, w := range m.Weights {
		importances[col] = math.Abs(w)
	}
	for col, valueWeights := range m.Categorical {
		if len(valueWeights) == 0 {
			continue
		}
		sum := 0.0
		for _, w := range valueWeights {
			sum += math.Abs(w)
		}
		importances[col] = sum / float64(len(valueWeights))
	}
	return importances, nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// StumpModel is a single-split decision rule exported to JSON. It has
// no probability output: the scoring engine falls back to treating its
// hard predictions as probability surrogates.
type StumpModel struct {
	Feature string  `json:"feature"`
	Split   float64 `json:"split"`
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
}

// Predict returns Low below the split and High at or above it.
// Missing or non-numeric values take the Low branch.
func (m *StumpModel) Predict(features dataframe.DataFrame) ([]float64, error) {
	n := features.Nrow()
	out := make([]float64, n)
	if !dataset.HasColumn(features, m.Feature) {
		for i := range out {
			out[i] = m.Low
		}
		return out, nil
	}

	values := features.Col(m.Feature).Float()
	for i, v := range values {
		if !math.IsNaN(v) && v >= m.Split {
			out[i] = m.High
		} else {
			out[i] = m.Low
		}
	}
	return out, nil
}
