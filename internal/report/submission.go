package report

import (
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fraudscore/internal/scoring"
	"fraudscore/pkg/errors"
	"fraudscore/pkg/logger"
)

const (
	probabilityFile = "sample_submission.csv"
	binaryFile      = "sample_submission_binary.csv"
)

// Writer delivers the primary scoring outputs to the output directory.
// Submission writes are the load-bearing contract of a run: a failure
// here is fatal, unlike the diagnostics in this package.
type Writer struct {
	dir string
	log *logger.Logger
}

// NewWriter creates the output directory if needed
func NewWriter(dir string, log *logger.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output dir %s", dir)
	}
	return &Writer{dir: dir, log: log}, nil
}

// WriteSubmissions writes the probability and binary submission files,
// each keyed by the original row ids
func (w *Writer) WriteSubmissions(result *scoring.Result) error {
	proba := dataframe.New(
		series.New(result.IDs, series.String, "id"),
		series.New(result.Probabilities, series.Float, "target"),
	)
	if err := w.writeCSV(probabilityFile, proba); err != nil {
		return err
	}

	binary := dataframe.New(
		series.New(result.IDs, series.String, "id"),
		series.New(result.Labels, series.Int, "target"),
	)
	if err := w.writeCSV(binaryFile, binary); err != nil {
		return err
	}

	w.log.Infow("submissions written",
		"rows", len(result.IDs),
		"probabilities", filepath.Join(w.dir, probabilityFile),
		"binary", filepath.Join(w.dir, binaryFile),
	)
	return nil
}

func (w *Writer) writeCSV(name string, df dataframe.DataFrame) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
