// Package stats holds the descriptive statistics and correlation ranking used
// to interpret counter sweeps.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the defined values of one column.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Coefficient is the correlation of one named column against a target column.
type Coefficient struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Defined returns the values of xs that are not NaN.
func Defined(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Summarize describes xs, ignoring NaN values.
func Summarize(xs []float64) Summary {
	d := Defined(xs)
	if len(d) == 0 {
		return Summary{}
	}
	sum := Summary{
		Count: len(d),
		Min:   floats.Min(d),
		Max:   floats.Max(d),
		Mean:  stat.Mean(d, nil),
	}
	// A single value has no spread.
	if len(d) > 1 {
		sum.StdDev = stat.StdDev(d, nil)
	}
	return sum
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// Correlation returns the Pearson correlation of x and y over the rows where
// both are defined. It is NaN when fewer than two such rows exist or either
// side has no variance.
func Correlation(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// Rank correlates each named column against target, drops undefined
// coefficients and orders the rest from most to least correlated. Ties keep
// the order of names.
func Rank(target []float64, columns map[string][]float64, names []string) []Coefficient {
	coeffs := make([]Coefficient, 0, len(names))
	for _, name := range names {
		c := Correlation(columns[name], target)
		if math.IsNaN(c) {
			continue
		}
		coeffs = append(coeffs, Coefficient{Name: name, Value: c})
	}
	sort.SliceStable(coeffs, func(i, j int) bool {
		return coeffs[i].Value > coeffs[j].Value
	})
	return coeffs
}
