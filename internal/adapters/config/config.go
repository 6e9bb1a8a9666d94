package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"fraudscore/pkg/errors"
)

type Config struct {
	App           AppConfig
	Paths         PathsConfig
	Metrics       MetricsConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"fraudscore"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// PathsConfig wires the conventional file locations for a scoring run.
// All artifacts are produced at train time and read-only here.
type PathsConfig struct {
	Input     string `envconfig:"INPUT_PATH" default:"input/test.csv"`
	Model     string `envconfig:"MODEL_PATH" default:"model.json"`
	Features  string `envconfig:"FEATURES_PATH" default:"features.json"`
	Medians   string `envconfig:"MEDIANS_PATH" default:"medians.json"`
	RareMaps  string `envconfig:"RARE_MAPS_PATH" default:"rare_maps.json"`
	Threshold string `envconfig:"THRESHOLD_PATH" default:"threshold.txt"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"output"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	Addr    string `envconfig:"METRICS_ADDR" default:":9090"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
