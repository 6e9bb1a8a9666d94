package transform

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fraudscore/internal/dataset"
)

// SelectFeatures projects the transformed frame down to exactly
// ["id"] + features, in that order, dropping everything else including
// the intermediate geo and time source columns. A feature the frame
// does not carry is synthesized as a zero-filled column: silent repair,
// not an error, because an optional feature skipped upstream (geo
// distance without coordinates) must not abort a production run.
// Returns the number of synthesized feature columns.
func SelectFeatures(df dataframe.DataFrame, schema Schema, features []string) (dataframe.DataFrame, int) {
	n := df.Nrow()
	synthesized := 0

	var ids series.Series
	if dataset.HasColumn(df, schema.ID) {
		// The id is preserved verbatim end-to-end, never transformed
		ids = series.New(df.Col(schema.ID).Records(), series.String, schema.ID)
	} else {
		positional := make([]string, n)
		for i := range positional {
			positional[i] = strconv.Itoa(i)
		}
		ids = series.New(positional, series.String, schema.ID)
	}

	columns := make([]series.Series, 0, len(features)+1)
	columns = append(columns, ids)
	for _, feat := range features {
		if dataset.HasColumn(df, feat) {
			s := df.Col(feat).Copy()
			s.Name = feat
			columns = append(columns, s)
			continue
		}
		zeros := make([]float64, n)
		columns = append(columns, series.New(zeros, series.Float, feat))
		synthesized++
	}

	return dataframe.New(columns...), synthesized
}
