// Package sweep runs a benchmark case under the profiler once per thread
// count and relates the hardware counters to the measured runtime.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scanbench/scanbench/internal/perfstat"
	"github.com/scanbench/scanbench/internal/timeutil"
)

// Config selects the benchmark case and the thread counts to sweep.
type Config struct {
	Tool       string
	Benchmark  string
	Algorithm  string
	Size       int
	MinThreads int
	MaxThreads int
	Counters   []string
}

func (c Config) Validate() error {
	switch {
	case c.Benchmark == "":
		return errors.New("benchmark executable is required")
	case c.Tool == "":
		return errors.New("profiler binary is required")
	case c.MinThreads < 1 || c.MaxThreads < c.MinThreads:
		return fmt.Errorf("invalid thread range [%d,%d]", c.MinThreads, c.MaxThreads)
	case c.Size < 1:
		return fmt.Errorf("invalid input size %d", c.Size)
	case len(c.Counters) == 0:
		return errors.New("at least one counter is required")
	}
	return nil
}

// Sweeper runs one trial per thread count.
type Sweeper struct {
	Config Config
	Runner perfstat.Runner
	// Out receives every command line and its captured output.
	Out io.Writer
}

// Run executes the trials in order and returns the analyzed report. The
// first trial without a runtime aborts the sweep.
func (s *Sweeper) Run(ctx context.Context) (*Report, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	r := &Report{
		ID:        uuid.New(),
		Benchmark: s.Config.Benchmark,
		Algorithm: s.Config.Algorithm,
		Size:      s.Config.Size,
		Counters:  s.Config.Counters,
		StartedAt: timeutil.Now(),
	}
	for n := s.Config.MinThreads; n <= s.Config.MaxThreads; n++ {
		m, err := s.trial(ctx, n)
		if err != nil {
			return nil, err
		}
		r.Measurements = append(r.Measurements, m)
	}
	if err := r.Analyze(); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Sweeper) trial(ctx context.Context, threads int) (Measurement, error) {
	cmd := perfstat.Command{
		Tool:      s.Config.Tool,
		Counters:  s.Config.Counters,
		Benchmark: s.Config.Benchmark,
		Filter:    perfstat.Pattern(s.Config.Algorithm, s.Config.Size, threads),
	}

	span := sentry.StartSpan(ctx, "perf.stat")
	span.Description = cmd.String()
	out, err := perfstat.Run(span.Context(), s.Runner, cmd)
	span.Finish()
	if err != nil {
		return Measurement{}, fmt.Errorf("running %q: %w", cmd.String(), err)
	}

	fmt.Fprintf(s.Out, "ran: %s\nstdout:\n%s\nstderr:\n%s\n", cmd, out.Stdout, out.Stderr)
	if out.ExitCode != 0 {
		log.Warn().Int("threads", threads).Int("exit_code", out.ExitCode).Msg("profiler exited with a non-zero status")
	}

	runtime, err := perfstat.ParseRuntime(out.Stdout, cmd.Filter)
	if err != nil {
		return Measurement{}, err
	}
	counters, err := perfstat.ParseCounters(out.Stderr, s.Config.Counters)
	if err != nil {
		return Measurement{}, err
	}
	for _, c := range s.Config.Counters {
		if _, ok := counters[c]; !ok {
			log.Debug().Int("threads", threads).Str("counter", c).Msg("counter missing from profiler output")
		}
	}

	return Measurement{Threads: threads, Runtime: runtime, Counters: counters}, nil
}
