package gbench

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/scanbench/scanbench/internal/errorutil"
	"github.com/scanbench/scanbench/internal/testutil"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "baseline", in: "std::partial_sum/1000/1", want: "std::partial_sum"},
		{name: "baseline with suffix", in: "std::partial_sum/1000/real_time", want: "std::partial_sum"},
		{name: "threaded", in: "myalgo/1000/1/4", want: "myalgo/1"},
		{name: "threaded leading zero", in: "inclusive_scan/1000/04/real_time", want: "inclusive_scan/4"},
		{name: "too few segments", in: "myalgo/1000/1", wantErr: true},
		{name: "non-numeric threads", in: "myalgo/1000/x/real_time", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseLabel(test.in, Baseline)
			if test.wantErr {
				if !errors.Is(err, errorutil.ErrMalformedName) {
					t.Fatalf("expected a malformed name error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Fatalf("ParseLabel(%q) = %q, want %q", test.in, got, test.want)
			}
		})
	}
}

func TestParseThreads(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "std::partial_sum/1000/real_time", want: 1},
		{in: "myalgo/1000/6/real_time", want: 6},
		{in: "myalgo/1000", wantErr: true},
		{in: "myalgo/1000/6/real_time/extra", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			got, err := ParseThreads(test.in)
			if test.wantErr {
				if !errors.Is(err, errorutil.ErrMalformedName) {
					t.Fatalf("expected a malformed name error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Fatalf("ParseThreads(%q) = %d, want %d", test.in, got, test.want)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	got, err := ParseSize("inclusive_scan/16777216/2/real_time")
	if err != nil || got != 16777216 {
		t.Fatalf("ParseSize() = %d, %v", got, err)
	}
	if _, err := ParseSize("BM_scan"); !errors.Is(err, errorutil.ErrMalformedName) {
		t.Fatalf("expected a malformed name error, got %v", err)
	}
}

func TestReadCSV(t *testing.T) {
	in := `name,iterations,real_time,cpu_time,time_unit,bytes_per_second,items_per_second,label,error_occurred,error_message
"std::partial_sum/2/real_time",100000,12.5,12.4,ns,,,,,
"inclusive_scan/2/3/real_time",1000,2500,30,ns,,,,,
"inclusive_scan/4/3/real_time",,,,,,,,true,"failed"
`
	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Record{
		{Name: "std::partial_sum/2/real_time", RealTime: 12.5},
		{Name: "inclusive_scan/2/3/real_time", RealTime: 2500},
		{Name: "inclusive_scan/4/3/real_time", RealTime: math.NaN()},
	}
	if diff := testutil.Diff(got, want); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "empty", in: "", wantErr: errorutil.ErrInvalidCSV},
		{name: "missing real_time", in: "name,cpu_time\na/1/real_time,3\n", wantErr: errorutil.ErrMissingColumn},
		{name: "missing name", in: "real_time\n3\n", wantErr: errorutil.ErrMissingColumn},
		{name: "bad quoting", in: "name,real_time\n\"a/1,3\n", wantErr: errorutil.ErrInvalidCSV},
		{name: "bad number", in: "name,real_time\na/1/real_time,fast\n", wantErr: errorutil.ErrInvalidCSV},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(test.in))
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestPivotAndCrossSection(t *testing.T) {
	records := []Record{
		{Name: "std::partial_sum/16777216/1", RealTime: 100},
		{Name: "myalgo/16777216/1/4", RealTime: 50},
	}
	results, err := Derive(records, Baseline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pivoted, err := Pivot(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := testutil.Diff(pivoted.Index(), []int64{16777216}); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
	if diff := testutil.Diff(pivoted.Columns(), []string{"myalgo/1", "std::partial_sum"}); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}

	normalized, err := Normalize(pivoted, Baseline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := testutil.Diff(normalized.Column(Baseline), []float64{1}); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
	if diff := testutil.Diff(normalized.Column("myalgo/1"), []float64{0.5}); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}

	points, err := CrossSection(results, Baseline, 16777216)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Point{{Algorithm: "myalgo", Threads: 1, Value: 0.5}}
	if diff := testutil.Diff(points, want); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestCrossSectionByThreadCount(t *testing.T) {
	records := []Record{
		{Name: "std::partial_sum/1024/real_time", RealTime: 10},
		{Name: "std::partial_sum/16777216/real_time", RealTime: 100},
		{Name: "inclusive_scan/16777216/4/real_time", RealTime: 50},
		{Name: "inclusive_scan/16777216/2/real_time", RealTime: 80},
		{Name: "inclusive_scan/1024/2/real_time", RealTime: 30},
		{Name: "chunked_scan/16777216/2/real_time", RealTime: 70},
	}
	results, err := Derive(records, Baseline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	points, err := CrossSection(results, Baseline, 16777216)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Point{
		{Algorithm: "chunked_scan", Threads: 2, Value: 0.7},
		{Algorithm: "inclusive_scan", Threads: 2, Value: 0.8},
		{Algorithm: "inclusive_scan", Threads: 4, Value: 0.5},
	}
	if diff := testutil.ApproxDiff(points, want, 1e-12); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestCrossSectionNeedsSingleBaseline(t *testing.T) {
	results := []Result{
		{Record: Record{RealTime: 50}, Size: 8, Label: "inclusive_scan/2", Algorithm: "inclusive_scan", Threads: 2},
	}
	if _, err := CrossSection(results, Baseline, 8); !errors.Is(err, errorutil.ErrBaselineNotFound) {
		t.Fatalf("expected a baseline error, got %v", err)
	}

	results = append(results,
		Result{Record: Record{RealTime: 100}, Size: 8, Label: Baseline, Algorithm: Baseline, Threads: 1},
		Result{Record: Record{RealTime: 110}, Size: 8, Label: Baseline, Algorithm: Baseline, Threads: 1},
	)
	if _, err := CrossSection(results, Baseline, 8); !errors.Is(err, errorutil.ErrBaselineNotFound) {
		t.Fatalf("expected a baseline error, got %v", err)
	}
}

func TestPivotRejectsDuplicates(t *testing.T) {
	records := []Record{
		{Name: "inclusive_scan/8/2/real_time", RealTime: 1},
		{Name: "inclusive_scan/8/2/real_time", RealTime: 2},
	}
	results, err := Derive(records, Baseline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Pivot(results); !errors.Is(err, errorutil.ErrDuplicateEntry) {
		t.Fatalf("expected a duplicate entry error, got %v", err)
	}
}
