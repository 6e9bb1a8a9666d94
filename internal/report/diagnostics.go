package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"fraudscore/internal/metrics"
	"fraudscore/internal/ml"
)

const (
	importancesFile = "importances.json"
	densityFile     = "scores_density.png"

	topImportances = 5
	histogramBins  = 50
)

// WriteImportances writes the top-5 feature importances, descending by
// score, when the model exposes the importance capability. Best-effort:
// a model without the capability, or any extraction or write error,
// leaves no file behind and never fails the run.
func (w *Writer) WriteImportances(model ml.Model) {
	scorer, ok := model.(ml.ImportanceScorer)
	if !ok {
		w.skipDiagnostic("importances", "model has no importance capability")
		return
	}

	importances, err := scorer.Importances()
	if err != nil || len(importances) == 0 {
		w.skipDiagnostic("importances", "importances unavailable")
		return
	}

	type pair struct {
		name  string
		score float64
	}
	pairs := make([]pair, 0, len(importances))
	for name, score := range importances {
		pairs = append(pairs, pair{name, score})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		return pairs[i].name < pairs[j].name
	})
	if len(pairs) > topImportances {
		pairs = pairs[:topImportances]
	}

	// Hand-built object so the descending order survives into the file
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, p := range pairs {
		key, err := json.Marshal(p.name)
		if err != nil {
			w.skipDiagnostic("importances", "encode failed")
			return
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.WriteString(strconv.FormatFloat(p.score, 'g', -1, 64))
		if i < len(pairs)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	path := filepath.Join(w.dir, importancesFile)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		w.skipDiagnostic("importances", "write failed")
		return
	}
	w.log.Infow("importances written", "path", path, "features", len(pairs))
}

// WriteDensityPlot renders the 50-bin normalized histogram of the
// probability column. Best-effort: rendering errors are suppressed and
// the plot is simply absent.
func (w *Writer) WriteDensityPlot(proba []float64) {
	if len(proba) == 0 {
		w.skipDiagnostic("density_plot", "no scores")
		return
	}

	mean, std := stat.MeanStdDev(proba, nil)
	w.log.Infow("score distribution", "mean", mean, "stddev", std)

	p := plot.New()
	p.Title.Text = "Distribution of predicted scores"
	p.X.Label.Text = "Predicted score"
	p.Y.Label.Text = "Density"

	hist, err := plotter.NewHist(plotter.Values(proba), histogramBins)
	if err != nil {
		w.skipDiagnostic("density_plot", "histogram build failed")
		return
	}
	hist.Normalize(1)
	p.Add(hist)

	path := filepath.Join(w.dir, densityFile)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		w.skipDiagnostic("density_plot", "render failed")
		return
	}
	w.log.Infow("density plot written", "path", path)
}

func (w *Writer) skipDiagnostic(artifact, reason string) {
	metrics.DiagnosticsSkipped.WithLabelValues(artifact).Inc()
	w.log.Debugw("diagnostic skipped", "artifact", artifact, "reason", reason)
}
