package gbench

import (
	"fmt"
	"sort"

	"github.com/scanbench/scanbench/internal/errorutil"
	"github.com/scanbench/scanbench/internal/table"
)

// Result is a record with its derived fields.
type Result struct {
	Record
	Size      int64
	Label     string
	Algorithm string
	Threads   int
}

// Derive computes size, label and thread count for every record.
func Derive(records []Record, baseline string) ([]Result, error) {
	results := make([]Result, 0, len(records))
	for _, r := range records {
		size, err := ParseSize(r.Name)
		if err != nil {
			return nil, err
		}
		label, err := ParseLabel(r.Name, baseline)
		if err != nil {
			return nil, err
		}
		threads, err := ParseThreads(r.Name)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			Record:    r,
			Size:      size,
			Label:     label,
			Algorithm: Algorithm(r.Name),
			Threads:   threads,
		})
	}
	return results, nil
}

// Pivot lays results out with one row per size and one column per label.
func Pivot(results []Result) (*table.Table, error) {
	t := table.New("size")
	for _, r := range results {
		if err := t.Set(r.Size, r.Label, r.RealTime); err != nil {
			return nil, err
		}
	}
	t.Sort()
	return t, nil
}

// Normalize divides every column of a pivoted table by the baseline column.
func Normalize(pivoted *table.Table, baseline string) (*table.Table, error) {
	return pivoted.DivideBy(baseline)
}

// Point is one value of the thread-count cross-section.
type Point struct {
	Algorithm string
	Threads   int
	Value     float64
}

// BaselineValue returns the baseline's real time at size. Exactly one
// baseline result must exist for that size.
func BaselineValue(results []Result, baseline string, size int64) (float64, error) {
	var (
		value float64
		found int
	)
	for _, r := range results {
		if r.Label == baseline && r.Size == size {
			value = r.RealTime
			found++
		}
	}
	if found != 1 {
		return 0, fmt.Errorf("%w: %d results for %s at size %d", errorutil.ErrBaselineNotFound, found, baseline, size)
	}
	return value, nil
}

// CrossSection returns the non-baseline results at size, normalized by the
// baseline's real time at that size, ordered by algorithm and thread count.
func CrossSection(results []Result, baseline string, size int64) ([]Point, error) {
	norm, err := BaselineValue(results, baseline, size)
	if err != nil {
		return nil, err
	}
	var points []Point
	for _, r := range results {
		if r.Size != size || r.Label == baseline {
			continue
		}
		points = append(points, Point{
			Algorithm: r.Algorithm,
			Threads:   r.Threads,
			Value:     r.RealTime / norm,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Algorithm != points[j].Algorithm {
			return points[i].Algorithm < points[j].Algorithm
		}
		return points[i].Threads < points[j].Threads
	})
	return points, nil
}
