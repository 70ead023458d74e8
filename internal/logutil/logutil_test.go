package logutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevelSampler(t *testing.T) {
	tests := []struct {
		name    string
		sampler LevelSampler
		level   zerolog.Level
		want    bool
	}{
		{name: "below", sampler: LevelSampler{Level: zerolog.InfoLevel}, level: zerolog.DebugLevel, want: false},
		{name: "equal", sampler: LevelSampler{Level: zerolog.InfoLevel}, level: zerolog.InfoLevel, want: true},
		{name: "above", sampler: LevelSampler{Level: zerolog.WarnLevel}, level: zerolog.FatalLevel, want: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.sampler.Sample(test.level); got != test.want {
				t.Fatalf("Sample(%v) = %v, want %v", test.level, got, test.want)
			}
		})
	}
}

func TestSeverityHook(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(SeverityHook{})
	logger.Warn().Msg("profiler exited with a non-zero status")
	if !strings.Contains(buf.String(), `"severity":"warn"`) {
		t.Fatalf("expected a severity field, got %s", buf.String())
	}
}
