package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/layofflens/internal/layoffs/config"
	"github.com/gartstein/layofflens/internal/layoffs/db"
	"github.com/gartstein/layofflens/internal/layoffs/loader"
	"github.com/gartstein/layofflens/internal/layoffs/metrics"
	"github.com/gartstein/layofflens/internal/layoffs/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type importOptions struct {
	csvPath string
	atomic  bool
}

func newImportCmd(load func() (*config.Config, error), logger *zap.Logger) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored layoffs with the contents of a CSV extract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if opts.csvPath == "" {
				opts.csvPath = cfg.CSVPath
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := runImport(ctx, cfg, opts, logger)
			if report != nil {
				printReport(cmd, report)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "CSV file to import (default: CSV_PATH from the config)")
	cmd.Flags().BoolVar(&opts.atomic, "atomic", false, "Run the wipe and all inserts in one transaction")
	return cmd
}

func runImport(ctx context.Context, cfg *config.Config, opts importOptions, logger *zap.Logger) (*models.ImportReport, error) {
	f, err := os.Open(opts.csvPath)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	repo, err := openRepository(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closePublisher()

	l := loader.New(importStore{repo}, loader.Config{
		BatchSize:  cfg.BatchSize,
		BatchDelay: cfg.BatchDelay(),
		Atomic:     opts.atomic,
	}, publisher, metrics.New(), logger)
	return l.Import(ctx, f)
}

func printReport(cmd *cobra.Command, r *models.ImportReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Import %s\n", r.ImportID)
	fmt.Fprintf(out, "  rows read:         %d\n", r.RowsRead)
	fmt.Fprintf(out, "  valid:             %d\n", r.RowsValidated)
	fmt.Fprintf(out, "  inserted:          %d\n", r.RowsInserted)
	fmt.Fprintf(out, "  validation failed: %d\n", r.ValidationFailed)
	fmt.Fprintf(out, "  insert failed:     %d\n", r.InsertFailed)
	for _, msg := range r.ValidationErrors {
		fmt.Fprintf(out, "    %s\n", msg)
	}
	if r.MoreValidationErrors > 0 {
		fmt.Fprintf(out, "    ... and %d more errors\n", r.MoreValidationErrors)
	}
	for _, b := range r.BatchErrors {
		fmt.Fprintf(out, "    batch %d (%d records): %s\n", b.Batch, b.Size, b.Message)
	}
}

// importStore lets the loader run an import inside one repository transaction.
type importStore struct {
	*db.Repository
}

func (s importStore) Atomically(ctx context.Context, fn func(tx loader.Store) error) error {
	return s.WithTransaction(ctx, func(tx *db.Repository) error {
		return fn(tx)
	})
}
