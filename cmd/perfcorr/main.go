package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scanbench/scanbench/internal/config"
	"github.com/scanbench/scanbench/internal/logutil"
	"github.com/scanbench/scanbench/internal/perfstat"
	"github.com/scanbench/scanbench/internal/storageprovider"
	"github.com/scanbench/scanbench/internal/storageutil"
	"github.com/scanbench/scanbench/internal/sweep"
)

var release string

type options struct {
	configPath string
	benchmark  string
	algorithm  string
	size       int
	minThreads int
	maxThreads int
	events     []string
	format     string
}

func newRootCmd() *cobra.Command {
	var (
		opts options
		cfg  config.Config
	)
	cmd := &cobra.Command{
		Use:           "perfcorr --benchmark <path>",
		Short:         "Run benchmarks while counting performance events",
		Long:          "Runs one scan benchmark case under perf stat for each thread count and ranks\nthe hardware counters by their correlation with the measured runtime.",
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
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "optional YAML or TOML configuration file")
	f.StringVar(&opts.benchmark, "benchmark", "", "path to benchmark executable")
	f.StringVar(&opts.algorithm, "algorithm", "inclusive_scan", "benchmark name to filter on")
	f.IntVar(&opts.size, "size", 16777216, "input size to filter on")
	f.IntVar(&opts.minThreads, "min-threads", 2, "first thread count of the sweep")
	f.IntVar(&opts.maxThreads, "max-threads", 8, "last thread count of the sweep (inclusive)")
	f.StringArrayVar(&opts.events, "event", perfstat.DefaultCounters, "hardware event to count (repeatable)")
	f.StringVar(&opts.format, "format", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("benchmark")

	return cmd
}

func run(ctx context.Context, stdout, stderr io.Writer, cfg config.Config, opts options) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	trialOut := stdout
	if opts.format == "json" {
		trialOut = stderr
	}

	tx := sentry.StartTransaction(ctx, "perfcorr")
	defer tx.Finish()

	s := sweep.Sweeper{
		Config: sweep.Config{
			Tool:       cfg.PerfBinary,
			Benchmark:  opts.benchmark,
			Algorithm:  opts.algorithm,
			Size:       opts.size,
			MinThreads: opts.minThreads,
			MaxThreads: opts.maxThreads,
			Counters:   opts.events,
		},
		Runner: perfstat.ExecRunner{},
		Out:    trialOut,
	}
	r, err := s.Run(tx.Context())
	if err != nil {
		return err
	}

	if opts.format == "json" {
		err = sweep.WriteJSON(stdout, r)
	} else {
		err = sweep.WriteText(stdout, r)
	}
	if err != nil {
		return err
	}

	if cfg.ReportBucket == "" {
		return nil
	}
	return store(ctx, cfg.ReportBucket, r)
}

func store(ctx context.Context, url string, r *sweep.Report) error {
	b, err := storageprovider.Open(ctx, url)
	if err != nil {
		return err
	}
	defer b.Close()

	objectName := sweep.ObjectName(r.ID)
	if err := storageutil.CompressedWrite(ctx, b, objectName, r); err != nil {
		return fmt.Errorf("storing report %s: %w", objectName, err)
	}
	log.Info().Str("run_id", r.ID.String()).Str("bucket", url).Msg("report stored")
	return nil
}

func main() {
	logutil.ConfigureLogger("info")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		config.Fatal(err)
		log.Fatal().Err(err).Msg("sweep failed")
	}
}
