// Package perfstat runs a google-benchmark executable under `perf stat` and
// extracts the benchmark runtime and hardware counter values from its output.
package perfstat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCounters are the hardware events tracked when none are configured.
var DefaultCounters = []string{
	"LLC-load-misses",
	"LLC-store-misses",
	"L1-dcache-load-misses",
	"alignment-faults",
	"dTLB-load-misses",
	"dTLB-store-misses",
}

// Pattern returns the benchmark filter selecting one multi-threaded scan case.
func Pattern(algorithm string, size, threads int) string {
	return fmt.Sprintf("%s/%d/%d/real_time", algorithm, size, threads)
}

// Command is one `perf stat` invocation of a filtered benchmark.
type Command struct {
	Tool      string
	Counters  []string
	Benchmark string
	Filter    string
}

// Args returns the arguments passed to Tool.
func (c Command) Args() []string {
	args := make([]string, 0, 2*len(c.Counters)+3)
	args = append(args, "stat")
	for _, counter := range c.Counters {
		args = append(args, "-e", counter)
	}
	return append(args, c.Benchmark, "--benchmark_filter="+c.Filter)
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Tool}, c.Args()...), " ")
}

// Output holds the captured streams and exit status of a finished command.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes a command and captures both of its output streams in full.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner runs commands as child processes. A non-zero exit status is
// reported through Output.ExitCode rather than as an error.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}

// Run executes c through r.
func Run(ctx context.Context, r Runner, c Command) (Output, error) {
	return r.Run(ctx, c.Tool, c.Args()...)
}
