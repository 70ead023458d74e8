// Package table implements the small labelled table both tools reshape their
// measurements into: an int64 index (thread count, input size) and one
// float64 column per series. Cells that were never written hold NaN.
package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/scanbench/scanbench/internal/errorutil"
)

type Table struct {
	IndexName string

	columns []string
	index   []int64
	rows    map[int64]int
	data    map[string][]float64
	filled  map[string][]bool
}

func New(indexName string, columns ...string) *Table {
	t := &Table{
		IndexName: indexName,
		rows:      make(map[int64]int),
		data:      make(map[string][]float64),
		filled:    make(map[string][]bool),
	}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// Columns returns the column names in display order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Index returns the row keys in display order.
func (t *Table) Index() []int64 {
	return append([]int64(nil), t.index...)
}

func (t *Table) Len() int {
	return len(t.index)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.data[name]
	return ok
}

// AddColumn appends an empty column. Adding an existing column is a no-op.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.columns = append(t.columns, name)
	values := make([]float64, len(t.index))
	for i := range values {
		values[i] = math.NaN()
	}
	t.data[name] = values
	t.filled[name] = make([]bool, len(t.index))
}

func (t *Table) row(idx int64) int {
	if r, ok := t.rows[idx]; ok {
		return r
	}
	r := len(t.index)
	t.index = append(t.index, idx)
	t.rows[idx] = r
	for _, c := range t.columns {
		t.data[c] = append(t.data[c], math.NaN())
		t.filled[c] = append(t.filled[c], false)
	}
	return r
}

// Append adds a new row. Columns missing from values stay undefined and
// unknown columns are added.
func (t *Table) Append(idx int64, values map[string]float64) error {
	if _, exists := t.rows[idx]; exists {
		return fmt.Errorf("%w: %s %d", errorutil.ErrDuplicateEntry, t.IndexName, idx)
	}
	r := t.row(idx)
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.AddColumn(name)
		t.data[name][r] = values[name]
		t.filled[name][r] = true
	}
	return nil
}

// Set writes a single cell, creating its row and column if needed. Writing a
// cell twice is an error.
func (t *Table) Set(idx int64, column string, v float64) error {
	t.AddColumn(column)
	r := t.row(idx)
	if t.filled[column][r] {
		return fmt.Errorf("%w: %s %d, column %q", errorutil.ErrDuplicateEntry, t.IndexName, idx, column)
	}
	t.data[column][r] = v
	t.filled[column][r] = true
	return nil
}

// Column returns a copy of the named column, or nil if it doesn't exist.
func (t *Table) Column(name string) []float64 {
	values, ok := t.data[name]
	if !ok {
		return nil
	}
	return append([]float64(nil), values...)
}

// Value returns the cell at (idx, column) and whether it was ever written.
func (t *Table) Value(idx int64, column string) (float64, bool) {
	r, ok := t.rows[idx]
	if !ok || !t.HasColumn(column) || !t.filled[column][r] {
		return math.NaN(), false
	}
	return t.data[column][r], true
}

// Sort orders rows by ascending index and columns by name.
func (t *Table) Sort() {
	sort.Strings(t.columns)

	order := make([]int, len(t.index))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return t.index[order[i]] < t.index[order[j]]
	})

	index := make([]int64, len(order))
	for i, r := range order {
		index[i] = t.index[r]
		t.rows[index[i]] = i
	}
	t.index = index

	for _, c := range t.columns {
		values := make([]float64, len(order))
		filled := make([]bool, len(order))
		for i, r := range order {
			values[i] = t.data[c][r]
			filled[i] = t.filled[c][r]
		}
		t.data[c] = values
		t.filled[c] = filled
	}
}

// DivideBy returns a new table where every column is divided elementwise by
// the named column.
func (t *Table) DivideBy(column string) (*Table, error) {
	base, ok := t.data[column]
	if !ok {
		return nil, fmt.Errorf("%w: column %q", errorutil.ErrBaselineNotFound, column)
	}
	out := New(t.IndexName)
	out.index = t.Index()
	for i, idx := range out.index {
		out.rows[idx] = i
	}
	for _, c := range t.columns {
		values := make([]float64, len(t.index))
		filled := make([]bool, len(t.index))
		for r, v := range t.data[c] {
			values[r] = v / base[r]
			filled[r] = t.filled[c][r] && t.filled[column][r]
			if !filled[r] {
				values[r] = math.NaN()
			}
		}
		out.columns = append(out.columns, c)
		out.data[c] = values
		out.filled[c] = filled
	}
	return out, nil
}

// FormatValue renders whole numbers without a fraction and everything else
// with six significant digits.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
}

// Render draws the table for a terminal.
func (t *Table) Render() string {
	headers := append([]string{t.IndexName}, t.columns...)
	rows := make([][]string, 0, len(t.index))
	for r, idx := range t.index {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.FormatInt(idx, 10))
		for _, c := range t.columns {
			row = append(row, FormatValue(t.data[c][r]))
		}
		rows = append(rows, row)
	}
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}
