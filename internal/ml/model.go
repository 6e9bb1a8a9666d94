package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"fraudscore/pkg/errors"
)

// Model is the minimal capability every trained estimator exposes:
// one prediction per row of the feature frame. For classifiers without
// a probability output the prediction doubles as the probability
// surrogate.
type Model interface {
	Predict(features dataframe.DataFrame) ([]float64, error)
}

// ProbabilityScorer is the optional two-class probability capability.
// When present, the scoring engine uses the positive-class probability
// instead of the raw prediction.
type ProbabilityScorer interface {
	PredictProba(features dataframe.DataFrame) ([]float64, error)
}

// ImportanceScorer is the optional feature-importance capability,
// consumed best-effort by diagnostics.
type ImportanceScorer interface {
	Importances() (map[string]float64, error)
}

// AsProbabilityScorer resolves the probability capability of a model.
// Composite models implement ProbabilityScorer structurally but may
// wrap a terminal estimator that does not; they report that through
// HasProbability and are treated as probability-less here.
func AsProbabilityScorer(m Model) (ProbabilityScorer, bool) {
	scorer, ok := m.(ProbabilityScorer)
	if !ok {
		return nil, false
	}
	if reporter, ok := m.(interface{ HasProbability() bool }); ok && !reporter.HasProbability() {
		return nil, false
	}
	return scorer, true
}

// Load reads a serialized trained model. The format is dispatched on
// the file extension: .onnx loads an ONNX Runtime session, .json loads
// one of the exported JSON estimator families.
func Load(path string) (Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".onnx":
		return LoadONNX(path)
	case ".json":
		return loadJSONModel(path)
	default:
		return nil, errors.Wrapf(errors.ErrUnknownModelFormat, "%s", path)
	}
}

func loadJSONModel(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModelLoad, "%s: %v", path, err)
	}
	model, err := decodeSpec(data)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModelLoad, "%s: %v", path, err)
	}
	return model, nil
}

// decodeSpec instantiates an estimator from its JSON spec. Pipeline
// specs recurse into their steps.
func decodeSpec(data []byte) (Model, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	switch envelope.Type {
	case "logistic":
		var m LogisticModel
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case "stump":
		var m StumpModel
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case "pipeline":
		return decodePipeline(data)
	default:
		return nil, errors.Wrapf(errors.ErrUnknownModelFormat, "estimator type %q", envelope.Type)
	}
}
