package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/scanbench/scanbench/internal/chart"
	"github.com/scanbench/scanbench/internal/gbench"
)

// render saves p under the output directory and, when a viewer is set,
// blocks until the viewer is closed.
func render(ctx context.Context, p *plot.Plot, name string, opts options) (string, error) {
	path := filepath.Join(opts.outDir, name+"."+opts.format)
	if err := chart.Save(p, path, vg.Length(opts.width)*vg.Inch, vg.Length(opts.height)*vg.Inch); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("plot written")

	if opts.viewer == "" {
		return path, nil
	}
	if err := chart.View(ctx, opts.viewer, path); err != nil {
		return "", fmt.Errorf("viewing %s: %w", path, err)
	}
	return path, nil
}

// threadSeries groups cross-section points into one line per algorithm.
func threadSeries(points []gbench.Point) []chart.Series {
	var series []chart.Series
	for _, p := range points {
		if len(series) == 0 || series[len(series)-1].Name != p.Algorithm {
			series = append(series, chart.Series{Name: p.Algorithm})
		}
		s := &series[len(series)-1]
		s.X = append(s.X, float64(p.Threads))
		s.Y = append(s.Y, p.Value)
	}
	return series
}

func shortName(algorithm string) string {
	return strings.TrimPrefix(algorithm, "std::")
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dM", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dK", n>>10)
	default:
		return fmt.Sprintf("%d", n)
	}
}
