package main

import (
	"github.com/google/uuid"

	"fraudscore/internal/adapters/config"
	"fraudscore/internal/adapters/errors/noop"
	"fraudscore/internal/adapters/errors/sentry"
	"fraudscore/internal/artifacts"
	"fraudscore/internal/dataset"
	"fraudscore/internal/metrics"
	"fraudscore/internal/ml"
	"fraudscore/internal/report"
	"fraudscore/internal/scoring"
	"fraudscore/internal/transform"
	"fraudscore/pkg/errors"
	"fraudscore/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	runID := uuid.NewString()
	log := logger.Get().With("run_id", runID)
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log, runID)
	logger.SetErrorTracker(errorTracker)

	// Initialize metrics
	metrics.Init()
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				log.Warnf("Metrics server stopped: %v", err)
			}
		}()
	}

	if err := run(cfg, log); err != nil {
		metrics.ScoringRuns.WithLabelValues("error").Inc()
		log.Fatalf("Scoring run failed: %v", err)
	}
	metrics.ScoringRuns.WithLabelValues("success").Inc()
	log.Info("Scoring run finished")
}

// run executes one batch scoring pass: artifacts, raw frame, transform
// pipeline, model inference, outputs, diagnostics. Any error before
// the submissions are written aborts the run with no partial output.
func run(cfg *config.Config, log *logger.Logger) error {
	bundle, err := artifacts.Load(artifacts.Paths{
		Features:  cfg.Paths.Features,
		Medians:   cfg.Paths.Medians,
		RareMaps:  cfg.Paths.RareMaps,
		Threshold: cfg.Paths.Threshold,
	}, log)
	if err != nil {
		return err
	}

	raw, err := dataset.ReadCSV(cfg.Paths.Input)
	if err != nil {
		return err
	}
	log.Infow("input loaded", "path", cfg.Paths.Input, "rows", raw.Nrow(), "columns", raw.Ncol())

	pipeline := transform.NewPipeline(transform.DefaultSchema(), bundle, log)
	features, err := pipeline.Run(raw)
	if err != nil {
		return errors.Wrap(err, "transform pipeline failed")
	}

	model, err := ml.Load(cfg.Paths.Model)
	if err != nil {
		return err
	}
	if closer, ok := model.(interface{ Destroy() }); ok {
		defer closer.Destroy()
	}

	engine := scoring.NewEngine(model, bundle.Threshold, log)
	result, err := engine.Score(features)
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(cfg.Paths.OutputDir, log)
	if err != nil {
		return err
	}
	if err := writer.WriteSubmissions(result); err != nil {
		return err
	}

	// Diagnostics are best-effort and never block delivery
	writer.WriteImportances(model)
	writer.WriteDensityPlot(result.Probabilities)
	return nil
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger, runID string) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment, runID)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}
