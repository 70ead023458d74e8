package perfstat

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/scanbench/scanbench/internal/errorutil"
)

const maxLineSize = 1024 * 1024

func lines(b []byte, fn func(fields []string) error) error {
	s := bufio.NewScanner(bytes.NewReader(b))
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for s.Scan() {
		if err := fn(strings.Fields(s.Text())); err != nil {
			return err
		}
	}
	return s.Err()
}

// ParseRuntime finds the first benchmark report line whose name equals
// pattern and returns the runtime that follows it. A zero runtime counts as
// no runtime at all.
func ParseRuntime(stdout []byte, pattern string) (int64, error) {
	var (
		runtime int64
		found   bool
	)
	err := lines(stdout, func(fields []string) error {
		if found || len(fields) < 2 || fields[0] != pattern {
			return nil
		}
		v, err := parseRuntime(fields[1])
		if err != nil {
			return fmt.Errorf("%w: runtime %q for %s", errorutil.ErrDataIntegrity, fields[1], pattern)
		}
		runtime, found = v, true
		return nil
	})
	if err != nil {
		return 0, err
	}
	if !found || runtime == 0 {
		return 0, fmt.Errorf("%w %s", errorutil.ErrRuntimeNotFound, pattern)
	}
	return runtime, nil
}

func parseRuntime(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// ParseCounters reads `perf stat` counter lines: two or three fields, the
// first a comma-grouped count and the second one of counters.
func ParseCounters(stderr []byte, counters []string) (map[string]int64, error) {
	tracked := make(map[string]struct{}, len(counters))
	for _, c := range counters {
		tracked[c] = struct{}{}
	}

	values := make(map[string]int64)
	err := lines(stderr, func(fields []string) error {
		if len(fields) < 2 || len(fields) > 3 {
			return nil
		}
		if _, ok := tracked[fields[1]]; !ok {
			return nil
		}
		v, err := strconv.ParseInt(strings.ReplaceAll(fields[0], ",", ""), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: value %q for counter %s", errorutil.ErrDataIntegrity, fields[0], fields[1])
		}
		values[fields[1]] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}
