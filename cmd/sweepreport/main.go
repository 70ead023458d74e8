package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scanbench/scanbench/internal/config"
	"github.com/scanbench/scanbench/internal/logutil"
	"github.com/scanbench/scanbench/internal/storageprovider"
	"github.com/scanbench/scanbench/internal/storageutil"
	"github.com/scanbench/scanbench/internal/sweep"
)

var release string

var errNoBucket = errors.New("no report bucket configured, set REPORT_BUCKET")

type options struct {
	configPath string
	format     string
}

func newRootCmd() *cobra.Command {
	var (
		opts options
		cfg  config.Config
	)
	cmd := &cobra.Command{
		Use:           "sweepreport <run-id>...",
		Short:         "Print counter sweep reports stored by perfcorr",
		Args:          cobra.MinimumNArgs(1),
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
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "optional YAML or TOML configuration file")
	f.StringVar(&opts.format, "format", "text", "output format: text or json")

	return cmd
}

func run(ctx context.Context, stdout io.Writer, cfg config.Config, opts options, args []string) error {
	var write func(io.Writer, *sweep.Report) error
	switch opts.format {
	case "text":
		write = sweep.WriteText
	case "json":
		write = sweep.WriteJSON
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}
	if cfg.ReportBucket == "" {
		return errNoBucket
	}

	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}

	b, err := storageprovider.Open(ctx, cfg.ReportBucket)
	if err != nil {
		return err
	}
	defer b.Close()

	reports, err := fetch(ctx, b, ids)
	if err != nil {
		return err
	}
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if err := write(stdout, r); err != nil {
			return err
		}
	}
	return nil
}

// fetch downloads the reports concurrently and returns them in the order of
// ids. The first error wins.
func fetch(ctx context.Context, b storageutil.ObjectHandler, ids []uuid.UUID) ([]*sweep.Report, error) {
	var (
		wg      sync.WaitGroup
		reports = make([]*sweep.Report, len(ids))
		errs    = make([]error, len(ids))
	)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			var r sweep.Report
			if err := storageutil.UnmarshalCompressed(ctx, b, sweep.ObjectName(id), &r); err != nil {
				errs[i] = fmt.Errorf("run %s: %w", id, err)
				return
			}
			log.Debug().Str("run_id", id.String()).Msg("report fetched")
			reports[i] = &r
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}

func main() {
	logutil.ConfigureLogger("info")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		config.Fatal(err)
		log.Fatal().Err(err).Msg("couldn't print reports")
	}
}
