package transform

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fraudscore/internal/artifacts"
	"fraudscore/internal/dataset"
)

// MapRareCategories collapses low-frequency categorical values using
// the train-time frequency maps. Every string column with a map is
// covered, merchant and postal columns included. A value the map has
// never seen becomes the rare sentinel, so serve-time cardinality can
// never exceed what the model saw at train time. Must run after text
// normalization so map keys and incoming values share the same
// canonical form.
//
// Columns without a map, and runs without a rare_maps artifact, pass
// through untouched.
func MapRareCategories(df dataframe.DataFrame, schema Schema, bundle *artifacts.Bundle) dataframe.DataFrame {
	for _, col := range schema.StringColumns() {
		mapping, ok := bundle.RareMap(col)
		if !ok || !dataset.HasColumn(df, col) {
			continue
		}

		records := df.Col(col).Records()
		mapped := make([]string, len(records))
		for i, v := range records {
			if canonical, seen := mapping[v]; seen {
				mapped[i] = canonical
			} else {
				mapped[i] = SentinelRare
			}
		}
		df = df.Mutate(series.New(mapped, series.String, col))
	}
	return df
}
