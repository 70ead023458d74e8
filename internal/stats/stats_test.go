package stats

import (
	"math"
	"testing"

	"github.com/scanbench/scanbench/internal/testutil"
)

func TestCorrelation(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		x    []float64
		y    []float64
		want float64
	}{
		{
			name: "perfectly correlated",
			x:    []float64{1, 2, 3, 4},
			y:    []float64{10, 20, 30, 40},
			want: 1,
		},
		{
			name: "perfectly anti-correlated",
			x:    []float64{1, 2, 3, 4},
			y:    []float64{8, 6, 4, 2},
			want: -1,
		},
		{
			name: "constant column",
			x:    []float64{7, 7, 7, 7},
			y:    []float64{1, 2, 3, 4},
			want: nan,
		},
		{
			name: "missing values are skipped pairwise",
			x:    []float64{1, nan, 3, 4},
			y:    []float64{2, 100, 6, 8},
			want: 1,
		},
		{
			name: "single complete row",
			x:    []float64{1, nan, nan},
			y:    []float64{2, 3, 4},
			want: nan,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Correlation(test.x, test.y)
			if diff := testutil.ApproxDiff(got, test.want, 1e-9); diff != "" {
				t.Fatalf("Result mismatch: got - want +\n%s", diff)
			}
		})
	}
}

func TestRankDropsUndefinedAndSortsDescending(t *testing.T) {
	runtime := []float64{100, 90, 80, 70, 60}
	columns := map[string][]float64{
		"LLC-load-misses":  {50, 45, 40, 35, 30},
		"alignment-faults": {0, 0, 0, 0, 0},
		"dTLB-load-misses": {1, 2, 3, 4, 5},
		"L1-dcache-misses": {9, 10, 7, 8, 4},
	}
	names := []string{"alignment-faults", "dTLB-load-misses", "L1-dcache-misses", "LLC-load-misses"}

	got := Rank(runtime, columns, names)

	if len(got) != 3 {
		t.Fatalf("expected 3 coefficients, got %d: %v", len(got), got)
	}
	for _, c := range got {
		if c.Name == "alignment-faults" {
			t.Fatalf("constant counter should have been dropped: %v", got)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Value > got[i-1].Value {
			t.Fatalf("coefficients are not sorted in descending order: %v", got)
		}
	}
	if got[0].Name != "LLC-load-misses" || got[len(got)-1].Name != "dTLB-load-misses" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize([]float64{2, math.NaN(), 4, 4, 4, 5, 5, 7, 9})
	want := Summary{
		Count:  8,
		Min:    2,
		Max:    9,
		Mean:   5,
		StdDev: math.Sqrt(32.0 / 7.0),
	}
	if diff := testutil.ApproxDiff(got, want, 1e-9); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
	single := Summary{Count: 1, Min: 3, Max: 3, Mean: 3}
	if diff := testutil.Diff(Summarize([]float64{math.NaN(), 3}), single); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
	if diff := testutil.Diff(Summarize([]float64{math.NaN()}), Summary{}); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}
