// Package config loads the settings shared by the scanbench tools from the
// environment, optionally layered over a YAML or TOML file.
package config

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Environment string `yaml:"environment" toml:"environment" env:"SCANBENCH_ENVIRONMENT" env-default:"development"`
	SentryDSN   string `yaml:"sentry_dsn" toml:"sentry_dsn" env:"SENTRY_DSN"`
	LogLevel    string `yaml:"log_level" toml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// PerfBinary is the profiler the sweep runs benchmarks under.
	PerfBinary string `yaml:"perf_binary" toml:"perf_binary" env:"PERF_BINARY" env-default:"perf"`
	// ReportBucket is where sweep reports are stored, e.g. gs://bucket or
	// file:///var/lib/scanbench. Reports aren't stored when empty.
	ReportBucket string `yaml:"report_bucket" toml:"report_bucket" env:"REPORT_BUCKET"`

	// Viewer is run on every rendered plot; scanplot waits for it to exit.
	Viewer string `yaml:"viewer" toml:"viewer" env:"SCANPLOT_VIEWER"`
}

// Load reads path when set, then applies environment overrides.
func Load(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// InitSentry configures error reporting. An empty DSN leaves it disabled.
func (c Config) InitSentry(release string) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:              c.SentryDSN,
		EnableTracing:    true,
		Environment:      c.Environment,
		Release:          release,
		TracesSampleRate: 1.0,
	})
}

// Fatal reports err to Sentry and waits for it to be delivered.
func Fatal(err error) {
	sentry.CaptureException(err)
	sentry.Flush(5 * time.Second)
}
