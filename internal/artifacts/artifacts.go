package artifacts

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"fraudscore/pkg/errors"
	"fraudscore/pkg/logger"
)

// DefaultThreshold binarizes probabilities when no threshold artifact exists
const DefaultThreshold = 0.5

// Bundle holds every train-time artifact a scoring run consumes.
// Loaded once at startup and read-only afterwards, so each pipeline
// stage can take it by reference without synchronization.
type Bundle struct {
	// Features is the ordered feature set the model was trained on.
	// It defines the output schema contract of the transform pipeline.
	Features []string

	// Medians maps numeric column name to its train-time median.
	// Nil when medians.json is absent (batch-median fallback mode).
	Medians map[string]float64

	// RareMaps maps categorical column name to its value mapping.
	// Frequent values map to themselves, everything else collapses
	// to the rare sentinel. Nil when rare_maps.json is absent.
	RareMaps map[string]map[string]string

	// Threshold binarizes probabilities into 0/1 labels.
	Threshold float64
}

// Paths names the artifact files for a deployment
type Paths struct {
	Features  string
	Medians   string
	RareMaps  string
	Threshold string
}

// Load reads all artifacts. The feature list is required; everything
// else degrades to a documented default when absent.
func Load(paths Paths, log *logger.Logger) (*Bundle, error) {
	features, err := loadFeatures(paths.Features)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		Features:  features,
		Threshold: LoadThreshold(paths.Threshold),
	}

	if err := loadJSON(paths.Medians, &b.Medians); err != nil {
		return nil, errors.Wrapf(errors.ErrArtifactMalformed, "medians: %v", err)
	}
	if err := loadJSON(paths.RareMaps, &b.RareMaps); err != nil {
		return nil, errors.Wrapf(errors.ErrArtifactMalformed, "rare maps: %v", err)
	}

	log.Infow("artifacts loaded",
		"features", len(b.Features),
		"medians", len(b.Medians),
		"rare_maps", len(b.RareMaps),
		"threshold", b.Threshold,
	)
	return b, nil
}

// loadFeatures reads the ordered feature list. A run cannot proceed
// without it: the list is the train/serve schema contract.
func loadFeatures(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrFeatureListMissing, "%s: %v", path, err)
	}

	var features []string
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, errors.Wrapf(errors.ErrFeatureListMissing, "%s: %v", path, err)
	}
	if len(features) == 0 {
		return nil, errors.Wrapf(errors.ErrFeatureListMissing, "%s: empty feature list", path)
	}
	return features, nil
}

// loadJSON decodes an optional JSON artifact into out. A missing file
// is not an error; the target stays nil and the consumer falls back.
func loadJSON(path string, out interface{}) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}

// LoadThreshold reads the decision threshold from a plain-text file.
// The threshold is a probability cutoff, so values outside [0, 1] are
// treated like malformed content: absent, unparseable or out-of-range
// all fall back to DefaultThreshold.
func LoadThreshold(path string) float64 {
	if path == "" {
		return DefaultThreshold
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultThreshold
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil || value < 0 || value > 1 {
		return DefaultThreshold
	}
	return value
}

// Median returns the train-time median for a column, if one was supplied
func (b *Bundle) Median(column string) (float64, bool) {
	v, ok := b.Medians[column]
	return v, ok
}

// RareMap returns the value mapping for a categorical column, if any
func (b *Bundle) RareMap(column string) (map[string]string, bool) {
	m, ok := b.RareMaps[column]
	return m, ok
}
