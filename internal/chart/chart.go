// Package chart renders benchmark series as line plots.
package chart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/scanbench/scanbench/internal/table"
)

// ErrNoData is returned when none of the series has a plottable point.
var ErrNoData = errors.New("nothing to plot")

type Series struct {
	Name string
	X    []float64
	Y    []float64
}

type Options struct {
	Title  string
	XLabel string
	YLabel string
	LogX   bool
}

// FromTable turns every column of t into a series over the table index.
func FromTable(t *table.Table) []Series {
	index := t.Index()
	x := make([]float64, len(index))
	for i, idx := range index {
		x[i] = float64(idx)
	}
	series := make([]Series, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		series = append(series, Series{Name: c, X: x, Y: t.Column(c)})
	}
	return series
}

func (s Series) points(logX bool) plotter.XYs {
	xys := make(plotter.XYs, 0, len(s.X))
	for i := range s.X {
		if i >= len(s.Y) {
			break
		}
		x, y := s.X[i], s.Y[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		if logX && x <= 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: y})
	}
	return xys
}

// Line draws one line per series. Undefined points are left out, so a series
// with gaps is drawn through its defined points only.
func Line(opts Options, series []Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	if opts.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	drawn := 0
	for i, s := range series {
		xys := s.points(opts.LogX)
		if len(xys) == 0 {
			continue
		}
		l, pts, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		l.Color = plotutil.Color(i)
		l.Dashes = plotutil.Dashes(i)
		pts.Color = plotutil.Color(i)
		pts.Shape = plotutil.Shape(i)
		p.Add(l, pts)
		p.Legend.Add(s.Name, l, pts)
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoData
	}
	return p, nil
}

// Save writes p to path; the extension picks the image format.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	return p.Save(width, height, path)
}

// View opens path with the viewer command and blocks until it exits.
func View(ctx context.Context, viewer, path string) error {
	fields := strings.Fields(viewer)
	if len(fields) == 0 {
		return errors.New("empty viewer command")
	}
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
