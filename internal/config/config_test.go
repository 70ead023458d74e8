package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scanbench/scanbench/internal/testutil"
)

var keys = []string{"SCANBENCH_ENVIRONMENT", "SENTRY_DSN", "LOG_LEVEL", "PERF_BINARY", "REPORT_BUCKET", "SCANPLOT_VIEWER"}

// unsetenv clears the configuration variables for the duration of the test.
func unsetenv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PerfBinary != "perf" || cfg.Environment != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanbench.yaml")
	content := "perf_binary: /usr/bin/perf\nreport_bucket: file:///tmp/sweeps\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unsetenv(t)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{
		Environment:  "development",
		LogLevel:     "warn",
		PerfBinary:   "/usr/bin/perf",
		ReportBucket: "file:///tmp/sweeps",
	}
	if diff := testutil.Diff(cfg, want); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
