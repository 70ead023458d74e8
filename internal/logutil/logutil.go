// Package logutil configures the global zerolog logger for the scanbench
// binaries.
package logutil

import (
	"os"

	"cloud.google.com/go/compute/metadata"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigureLogger sets up the global logger. Events below level are sampled
// out; an unknown level falls back to info. On GCE events are JSON with a
// severity field, elsewhere they are printed for a terminal on stderr.
func ConfigureLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Caller().Stack().Logger().Sample(LevelSampler{Level: lvl})
	if metadata.OnGCE() {
		log.Logger = log.Hook(SeverityHook{})
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

// SeverityHook adds the field Cloud Logging reads the level from.
type SeverityHook struct{}

func (SeverityHook) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	e.Str("severity", level.String())
}

// LevelSampler keeps events at or above Level.
type LevelSampler struct {
	Level zerolog.Level
}

func (s LevelSampler) Sample(lvl zerolog.Level) bool {
	return lvl >= s.Level
}
