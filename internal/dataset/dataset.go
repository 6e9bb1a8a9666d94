package dataset

import (
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fraudscore/pkg/errors"
)

// ReadCSV loads a raw transaction file into a frame. Type detection is
// disabled on purpose: every cell arrives as its raw string and the
// transform pipeline owns all coercion, so a malformed cell can degrade
// to a sentinel instead of poisoning a whole column's inferred type.
func ReadCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(errors.ErrInputNotFound, "%s: %v", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(errors.ErrInvalidInput, "%s: %v", path, df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.Wrapf(errors.ErrEmptyFrame, "%s", path)
	}
	return df, nil
}

// HasColumn reports whether the frame carries the named column
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
