package gbench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/scanbench/scanbench/internal/errorutil"
)

const (
	nameColumn     = "name"
	realTimeColumn = "real_time"
)

// Record is one row of a google-benchmark CSV report.
type Record struct {
	Name     string
	RealTime float64
}

// ReadCSV reads a report produced with --benchmark_format=csv. Only the name
// and real_time columns are kept; an empty real_time (errored benchmark) is
// NaN.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", errorutil.ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: %v", errorutil.ErrInvalidCSV, err)
	}
	nameIdx, timeIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case nameColumn:
			nameIdx = i
		case realTimeColumn:
			timeIdx = i
		}
	}
	for col, idx := range map[string]int{nameColumn: nameIdx, realTimeColumn: timeIdx} {
		if idx < 0 {
			return nil, fmt.Errorf("%w: %w %q", errorutil.ErrInvalidCSV, errorutil.ErrMissingColumn, col)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errorutil.ErrInvalidCSV, err)
		}
		line, _ := cr.FieldPos(0)
		if nameIdx >= len(row) || timeIdx >= len(row) {
			return nil, fmt.Errorf("%w: line %d has %d fields", errorutil.ErrInvalidCSV, line, len(row))
		}
		rt := math.NaN()
		if s := strings.TrimSpace(row[timeIdx]); s != "" {
			rt, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: real_time %q", errorutil.ErrInvalidCSV, line, s)
			}
		}
		records = append(records, Record{Name: row[nameIdx], RealTime: rt})
	}
	return records, nil
}
