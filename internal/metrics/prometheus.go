package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Scoring run metrics
	ScoringRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudscore_runs_total",
			Help: "Total number of scoring runs",
		},
		[]string{"status"}, // status: success|error
	)

	RowsScored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fraudscore_rows_scored_total",
			Help: "Total number of transaction rows scored",
		},
	)

	// Transform pipeline metrics
	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fraudscore_stage_duration_seconds",
			Help:    "Transform stage duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"stage"},
	)

	CellsDefaulted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudscore_cells_defaulted_total",
			Help: "Total number of cells replaced with a sentinel or default",
		},
		[]string{"stage"},
	)

	FeaturesSynthesized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fraudscore_features_synthesized_total",
			Help: "Total number of zero-filled feature columns synthesized",
		},
	)

	// Diagnostics metrics
	DiagnosticsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudscore_diagnostics_skipped_total",
			Help: "Total number of diagnostics skipped as unavailable",
		},
		[]string{"artifact"}, // artifact: importances|density_plot
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(ScoringRuns)
	prometheus.MustRegister(RowsScored)
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(CellsDefaulted)
	prometheus.MustRegister(FeaturesSynthesized)
	prometheus.MustRegister(DiagnosticsSkipped)
}

// Serve exposes the metrics endpoint. Diagnostics only: a scoring run
// never depends on the listener.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}

// ObserveStage records a stage duration sample
func ObserveStage(stage string, started time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}
