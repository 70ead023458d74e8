package sweep

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/scanbench/scanbench/internal/stats"
	"github.com/scanbench/scanbench/internal/table"
	"github.com/scanbench/scanbench/internal/timeutil"
)

// RuntimeColumn names the runtime column of the measurement table.
const RuntimeColumn = "runtime"

// Measurement is the outcome of one trial. Counters that didn't show up in
// the profiler output are absent from Counters.
type Measurement struct {
	Threads  int              `json:"threads"`
	Runtime  int64            `json:"runtime"`
	Counters map[string]int64 `json:"counters"`
}

type Report struct {
	ID           uuid.UUID                `json:"id"`
	Benchmark    string                   `json:"benchmark"`
	Algorithm    string                   `json:"algorithm"`
	Size         int                      `json:"size"`
	Counters     []string                 `json:"counters"`
	StartedAt    timeutil.Time            `json:"started_at"`
	Measurements []Measurement            `json:"measurements"`
	Coefficients []stats.Coefficient      `json:"coefficients"`
	Summary      map[string]stats.Summary `json:"summary"`
}

// ObjectName is the storage key of a report.
func ObjectName(id uuid.UUID) string {
	return id.String() + ".json.lz4"
}

// Table lays the measurements out one row per thread count, one column per
// counter followed by the runtime.
func (r *Report) Table() (*table.Table, error) {
	columns := append(append([]string(nil), r.Counters...), RuntimeColumn)
	t := table.New("threads", columns...)
	for _, m := range r.Measurements {
		values := make(map[string]float64, len(m.Counters)+1)
		for _, c := range r.Counters {
			if v, ok := m.Counters[c]; ok {
				values[c] = float64(v)
			}
		}
		values[RuntimeColumn] = float64(m.Runtime)
		if err := t.Append(int64(m.Threads), values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Analyze ranks the counters by their correlation with runtime and
// summarizes every column.
func (r *Report) Analyze() error {
	t, err := r.Table()
	if err != nil {
		return err
	}
	columns := make(map[string][]float64, len(r.Counters))
	r.Summary = make(map[string]stats.Summary, len(r.Counters)+1)
	for _, c := range t.Columns() {
		columns[c] = t.Column(c)
		r.Summary[c] = stats.Summarize(columns[c])
	}
	r.Coefficients = stats.Rank(columns[RuntimeColumn], columns, r.Counters)
	return nil
}

// WriteText prints the measurement table and the ranked coefficients.
func WriteText(w io.Writer, r *Report) error {
	t, err := r.Table()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	for _, c := range r.Coefficients {
		if _, err := fmt.Fprintf(w, "%-24s %9.6f\n", c.Name, c.Value); err != nil {
			return err
		}
	}
	return nil
}

func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
