package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scanbench/scanbench/internal/chart"
	"github.com/scanbench/scanbench/internal/config"
	"github.com/scanbench/scanbench/internal/gbench"
	"github.com/scanbench/scanbench/internal/logutil"
)

var release string

type options struct {
	configPath string
	baseline   string
	size       int64
	outDir     string
	format     string
	viewer     string
	width      float64
	height     float64
}

func newRootCmd() *cobra.Command {
	var (
		opts options
		cfg  config.Config
	)
	cmd := &cobra.Command{
		Use:   "scanplot",
		Short: "Visualize google-benchmark results for the multi-threaded scan algorithms",
		Example: "  benchmark_scan --benchmark_format=csv | scanplot\n" +
			"  scanplot --viewer xdg-open < results.csv",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(opts.configPath)
			if err != nil {
				return err
			}
			logutil.ConfigureLogger(cfg.LogLevel)
			return cfg.InitSentry(release)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.viewer == "" {
				opts.viewer = cfg.Viewer
			}
			_, err := run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "optional YAML or TOML configuration file")
	f.StringVar(&opts.baseline, "baseline", gbench.Baseline, "algorithm every series is normalized to")
	f.Int64Var(&opts.size, "size", 16777216, "input size of the thread-count cross-section")
	f.StringVar(&opts.outDir, "out-dir", ".", "directory the plots are written to")
	f.StringVar(&opts.format, "format", "png", "image format: png, svg or pdf")
	f.StringVar(&opts.viewer, "viewer", "", "command run on each plot; waits for it to exit")
	f.Float64Var(&opts.width, "width", 8, "plot width in inches")
	f.Float64Var(&opts.height, "height", 6, "plot height in inches")

	return cmd
}

// run renders both plots and returns their paths.
func run(ctx context.Context, stdin io.Reader, stdout io.Writer, opts options) ([]string, error) {
	switch opts.format {
	case "png", "svg", "pdf":
	default:
		return nil, fmt.Errorf("unknown image format %q", opts.format)
	}

	records, err := gbench.ReadCSV(stdin)
	if err != nil {
		return nil, err
	}
	results, err := gbench.Derive(records, opts.baseline)
	if err != nil {
		return nil, err
	}
	pivoted, err := gbench.Pivot(results)
	if err != nil {
		return nil, err
	}
	normalized, err := gbench.Normalize(pivoted, opts.baseline)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(stdout, pivoted.Render())
	fmt.Fprintln(stdout, normalized.Render())

	bySize, err := chart.Line(chart.Options{
		Title:  fmt.Sprintf("delay vs size (normalized to %s)", shortName(opts.baseline)),
		XLabel: "size",
		YLabel: "normalized delay",
		LogX:   true,
	}, chart.FromTable(normalized))
	if err != nil {
		return nil, err
	}
	sizePath, err := render(ctx, bySize, "delay_vs_size", opts)
	if err != nil {
		return nil, err
	}

	points, err := gbench.CrossSection(results, opts.baseline, opts.size)
	if err != nil {
		return nil, err
	}
	byThreads, err := chart.Line(chart.Options{
		Title:  fmt.Sprintf("delay vs thread count (normalized) for %s ints", humanSize(opts.size)),
		XLabel: "nthreads",
		YLabel: "normalized delay",
	}, threadSeries(points))
	if err != nil {
		return nil, err
	}
	threadsPath, err := render(ctx, byThreads, "delay_vs_nthreads", opts)
	if err != nil {
		return nil, err
	}

	return []string{sizePath, threadsPath}, nil
}

func main() {
	logutil.ConfigureLogger("info")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		config.Fatal(err)
		log.Fatal().Err(err).Msg("plotting failed")
	}
}
