package ml

import (
	"github.com/go-gota/gota/dataframe"
	onnxruntime "github.com/yalue/onnxruntime_go"

	"fraudscore/pkg/errors"
)

// ONNXModel wraps an ONNX Runtime session for binary fraud inference.
// The exported graph takes a float feature tensor named "input" with
// shape [rows, features] and produces "output" (predicted labels,
// int64) and "probabilities" ([rows, 2], negative class first).
//
// ONNX exports fold categorical encoding into the graph at train time,
// so the feature frame handed here must be fully numeric.
type ONNXModel struct {
	session     *onnxruntime.DynamicAdvancedSession
	inputName   string
	outputNames []string
}

// LoadONNX loads an ONNX model from file
func LoadONNX(modelPath string) (*ONNXModel, error) {
	// Initialize ONNX runtime environment (only once)
	err := onnxruntime.InitializeEnvironment()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize ONNX runtime")
	}

	options, err := onnxruntime.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session options")
	}
	defer options.Destroy()

	// Dynamic session allows tensor creation per batch size
	session, err := onnxruntime.NewDynamicAdvancedSession(modelPath,
		[]string{"input"}, []string{"output", "probabilities"}, options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ONNX model")
	}

	return &ONNXModel{
		session:     session,
		inputName:   "input",
		outputNames: []string{"output", "probabilities"},
	}, nil
}

// PredictProba runs inference and returns the positive-class
// probability per row
func (m *ONNXModel) PredictProba(features dataframe.DataFrame) ([]float64, error) {
	_, probabilities, err := m.run(features)
	if err != nil {
		return nil, err
	}

	proba := make([]float64, len(probabilities)/2)
	for i := range proba {
		proba[i] = probabilities[i*2+1]
	}
	return proba, nil
}

// Predict runs inference and returns the hard labels as floats
func (m *ONNXModel) Predict(features dataframe.DataFrame) ([]float64, error) {
	labels, _, err := m.run(features)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(labels))
	for i, label := range labels {
		out[i] = float64(label)
	}
	return out, nil
}

func (m *ONNXModel) run(features dataframe.DataFrame) ([]int64, []float64, error) {
	if m.session == nil {
		return nil, nil, errors.New("model session is nil")
	}

	rows := features.Nrow()
	names := features.Names()
	cols := len(names)
	if rows == 0 || cols == 0 {
		return nil, nil, errors.ErrEmptyFrame
	}

	// Flatten the frame row-major, preserving the feature order the
	// selector established
	flat := make([]float64, rows*cols)
	for j, name := range names {
		values := features.Col(name).Float()
		for i, v := range values {
			flat[i*cols+j] = v
		}
	}

	inputShape := onnxruntime.NewShape(int64(rows), int64(cols))
	inputTensor, err := onnxruntime.NewTensor(inputShape, flat)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create input tensor")
	}
	defer inputTensor.Destroy()

	labels := make([]int64, rows)
	labelShape := onnxruntime.NewShape(int64(rows))
	labelTensor, err := onnxruntime.NewTensor(labelShape, labels)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create label output tensor")
	}
	defer labelTensor.Destroy()

	probabilities := make([]float64, rows*2)
	probShape := onnxruntime.NewShape(int64(rows), 2)
	probTensor, err := onnxruntime.NewTensor(probShape, probabilities)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create probabilities output tensor")
	}
	defer probTensor.Destroy()

	inputs := []onnxruntime.Value{inputTensor}
	outputs := []onnxruntime.Value{labelTensor, probTensor}
	if err := m.session.Run(inputs, outputs); err != nil {
		return nil, nil, errors.Wrap(err, "inference failed")
	}

	return labels, probabilities, nil
}

// Destroy cleans up the ONNX session
func (m *ONNXModel) Destroy() {
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
}
