package ml

import (
	"encoding/json"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fraudscore/internal/dataset"
	"fraudscore/pkg/errors"
)

// transformer is a pre-estimator pipeline step
type transformer interface {
	Apply(features dataframe.DataFrame) dataframe.DataFrame
}

// PipelineModel is a multi-step estimator: zero or more transformer
// steps followed by a terminal estimator. Scoring applies the steps in
// order and delegates to the terminal; the importance capability is
// whatever the terminal exposes.
type PipelineModel struct {
	steps    []transformer
	terminal Model
}

func decodePipeline(data []byte) (*PipelineModel, error) {
	var spec struct {
		Steps []struct {
			Name string          `json:"name"`
			Spec json.RawMessage `json:"spec"`
		} `json:"steps"`
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if len(spec.Steps) == 0 {
		return nil, errors.ErrNoEstimator
	}

	p := &PipelineModel{}
	for i, step := range spec.Steps {
		if i == len(spec.Steps)-1 {
			terminal, err := decodeSpec(step.Spec)
			if err != nil {
				return nil, errors.Wrapf(err, "terminal step %q", step.Name)
			}
			p.terminal = terminal
			break
		}

		var envelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(step.Spec, &envelope); err != nil {
			return nil, errors.Wrapf(err, "step %q", step.Name)
		}
		if envelope.Type != "scaler" {
			return nil, errors.Wrapf(errors.ErrUnknownModelFormat, "transformer type %q in step %q", envelope.Type, step.Name)
		}
		var scaler ScalerStep
		if err := json.Unmarshal(step.Spec, &scaler); err != nil {
			return nil, errors.Wrapf(err, "step %q", step.Name)
		}
		p.steps = append(p.steps, &scaler)
	}
	return p, nil
}

// Predict applies the transformer steps and delegates to the terminal
func (p *PipelineModel) Predict(features dataframe.DataFrame) ([]float64, error) {
	return p.terminal.Predict(p.apply(features))
}

// PredictProba delegates to the terminal estimator's probability
// capability, if it has one
func (p *PipelineModel) PredictProba(features dataframe.DataFrame) ([]float64, error) {
	scorer, ok := p.terminal.(ProbabilityScorer)
	if !ok {
		return nil, errors.New("terminal estimator has no probability capability")
	}
	return scorer.PredictProba(p.apply(features))
}

// Importances surfaces the terminal estimator's importances, if any
func (p *PipelineModel) Importances() (map[string]float64, error) {
	scorer, ok := p.terminal.(ImportanceScorer)
	if !ok {
		return nil, errors.ErrImportancesUnavailable
	}
	return scorer.Importances()
}

// HasProbability reports whether the terminal estimator can emit
// calibrated probabilities
func (p *PipelineModel) HasProbability() bool {
	_, ok := p.terminal.(ProbabilityScorer)
	return ok
}

func (p *PipelineModel) apply(features dataframe.DataFrame) dataframe.DataFrame {
	for _, step := range p.steps {
		features = step.Apply(features)
	}
	return features
}

// ScalerStep standardizes numeric columns with train-time center and
// scale values, the way the training pipeline's scaler did
type ScalerStep struct {
	Center map[string]float64 `json:"center"`
	Scale  map[string]float64 `json:"scale"`
}

// Apply standardizes each configured column present in the frame
func (s *ScalerStep) Apply(features dataframe.DataFrame) dataframe.DataFrame {
	for col, center := range s.Center {
		if !dataset.HasColumn(features, col) {
			continue
		}
		scale := s.Scale[col]
		if scale == 0 {
			scale = 1
		}
		values := features.Col(col).Float()
		scaled := make([]float64, len(values))
		for i, v := range values {
			scaled[i] = (v - center) / scale
		}
		features = features.Mutate(series.New(scaled, series.Float, col))
	}
	return features
}
