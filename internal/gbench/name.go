// Package gbench derives plotting fields from google-benchmark result names
// and reshapes the results for comparison against a baseline algorithm.
//
// Names follow the convention registered by the scan benchmarks:
//
//	<algorithm>/<size>/real_time             single-threaded baseline
//	<algorithm>/<size>/<threads>/real_time   multi-threaded variants
package gbench

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scanbench/scanbench/internal/errorutil"
)

// Baseline is the reference algorithm every series is normalized against.
const Baseline = "std::partial_sum"

// ParseSize returns the input size, the second segment of name.
func ParseSize(name string) (int64, error) {
	segments := strings.Split(name, "/")
	if len(segments) < 2 {
		return 0, fmt.Errorf("%w: no size in %q", errorutil.ErrMalformedName, name)
	}
	size, err := strconv.ParseInt(segments[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: size %q in %q", errorutil.ErrMalformedName, segments[1], name)
	}
	return size, nil
}

// ParseLabel returns the legend key: the baseline name for baseline results,
// "<algorithm>/<threads>" otherwise.
func ParseLabel(name, baseline string) (string, error) {
	segments := strings.Split(name, "/")
	if segments[0] == baseline {
		return segments[0], nil
	}
	if len(segments) <= 3 {
		return "", fmt.Errorf("%w: could not get thread count from %q", errorutil.ErrMalformedName, name)
	}
	threads, err := strconv.Atoi(segments[2])
	if err != nil {
		return "", fmt.Errorf("%w: thread count %q in %q", errorutil.ErrMalformedName, segments[2], name)
	}
	return fmt.Sprintf("%s/%d", segments[0], threads), nil
}

// ParseThreads returns 1 for three-segment names and the third segment for
// four-segment names. Any other shape is rejected.
func ParseThreads(name string) (int, error) {
	segments := strings.Split(name, "/")
	switch len(segments) {
	case 3:
		return 1, nil
	case 4:
		threads, err := strconv.Atoi(segments[2])
		if err != nil {
			return 0, fmt.Errorf("%w: thread count %q in %q", errorutil.ErrMalformedName, segments[2], name)
		}
		return threads, nil
	default:
		return 0, fmt.Errorf("%w: %d segments in %q", errorutil.ErrMalformedName, len(segments), name)
	}
}

// Algorithm returns the first segment of name.
func Algorithm(name string) string {
	algorithm, _, _ := strings.Cut(name, "/")
	return algorithm
}
