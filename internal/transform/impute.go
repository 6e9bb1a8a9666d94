package transform

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fraudscore/internal/artifacts"
	"fraudscore/internal/dataset"
)

// ImputeStats reports how many cells were defaulted by an impute pass.
// Sentinel substitution is expected behavior, not an error, so it is
// surfaced as a count instead of propagated.
type ImputeStats struct {
	NumericFilled     int
	CategoricalFilled int
}

// ImputeMissing coerces every configured numeric column to float and
// fills the gaps, then fills categorical gaps with the na sentinel.
//
// Numeric fill value, per column: the train-time median from the
// artifact bundle when present (production mode, immune to median
// drift between batches), otherwise the median of the current batch,
// or 0.0 when the batch has no valid value at all. Columns absent from
// the frame are synthesized before filling so the model never sees a
// missing feature.
func ImputeMissing(df dataframe.DataFrame, schema Schema, bundle *artifacts.Bundle) (dataframe.DataFrame, ImputeStats) {
	var stats ImputeStats
	n := df.Nrow()

	for _, col := range schema.Numeric {
		var values []float64
		if dataset.HasColumn(df, col) {
			values = df.Col(col).Float()
		} else {
			values = make([]float64, n)
			for i := range values {
				values[i] = math.NaN()
			}
		}

		fill, ok := bundle.Median(col)
		if !ok {
			fill = batchMedian(values)
		}

		filled := make([]float64, n)
		for i, v := range values {
			if math.IsNaN(v) {
				filled[i] = fill
				stats.NumericFilled++
			} else {
				filled[i] = v
			}
		}
		df = df.Mutate(series.New(filled, series.Float, col))
	}

	for _, col := range schema.Categorical {
		if !dataset.HasColumn(df, col) {
			values := make([]string, n)
			for i := range values {
				values[i] = SentinelNA
			}
			stats.CategoricalFilled += n
			df = df.Mutate(series.New(values, series.String, col))
			continue
		}

		records := df.Col(col).Records()
		values := make([]string, n)
		for i, v := range records {
			if v == "" || v == "NaN" {
				values[i] = SentinelNA
				stats.CategoricalFilled++
			} else {
				values[i] = v
			}
		}
		df = df.Mutate(series.New(values, series.String, col))
	}

	return df, stats
}

// batchMedian computes the median of the valid values, averaging the
// two middle elements for even counts the way the training pipeline
// did. Returns 0.0 when no value is valid.
func batchMedian(values []float64) float64 {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return 0.0
	}
	sort.Float64s(valid)
	mid := len(valid) / 2
	if len(valid)%2 == 1 {
		return valid[mid]
	}
	return (valid[mid-1] + valid[mid]) / 2
}
