// Package loader replaces the stored layoff records with a freshly normalized
// CSV extract, inserting in fixed-size batches.
package loader

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/events"
	"github.com/gartstein/layofflens/internal/layoffs/metrics"
	"github.com/gartstein/layofflens/internal/layoffs/models"
	"github.com/gartstein/layofflens/internal/layoffs/normalize"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBatchSize is the number of rows inserted per batch.
	DefaultBatchSize = 100
	// DefaultBatchDelay is the pause between batches.
	DefaultBatchDelay = 100 * time.Millisecond
	// reportedErrors is how many validation errors the report spells out.
	reportedErrors = 10
)

// Store is the part of the record store the loader writes to.
type Store interface {
	DeleteAllRecords(ctx context.Context) (int64, error)
	InsertRecords(ctx context.Context, records []models.LayoffRecord) ([]models.LayoffRecord, error)
}

// Transactor is implemented by stores that can run the whole import atomically.
type Transactor interface {
	Atomically(ctx context.Context, fn func(tx Store) error) error
}

// Config tunes how records are written. A non-positive BatchSize means
// DefaultBatchSize; a zero BatchDelay disables the pause.
type Config struct {
	BatchSize  int
	BatchDelay time.Duration
	// Atomic wraps the wipe and every batch in one transaction when the
	// store is a Transactor.
	Atomic bool
}

// Loader replaces the record store's contents with a normalized CSV import.
type Loader struct {
	store      Store
	normalizer *normalize.Normalizer
	publisher  events.Publisher
	metrics    *metrics.Metrics
	logger     *zap.Logger
	cfg        Config
	now        func() time.Time
	sleep      func(context.Context, time.Duration) error
}

// New builds a Loader. publisher and m may be nil.
func New(store Store, cfg Config, publisher events.Publisher, m *metrics.Metrics, logger *zap.Logger) *Loader {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = 0
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Loader{
		store:      store,
		normalizer: normalize.NewNormalizer(logger),
		publisher:  publisher,
		metrics:    m,
		logger:     logger.Named("loader"),
		cfg:        cfg,
		now:        time.Now,
		sleep:      sleepContext,
	}
}

// Import normalizes the CSV in r and loads the result.
func (l *Loader) Import(ctx context.Context, r io.Reader) (*models.ImportReport, error) {
	res, err := l.normalizer.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return l.Load(ctx, res)
}

// Load wipes the store and inserts res.Records. Batch failures are reported,
// not returned; the error is non-nil only when ctx ends the run early or an
// atomic import is rolled back.
func (l *Loader) Load(ctx context.Context, res *normalize.Result) (*models.ImportReport, error) {
	report := l.newReport(res)
	logger := l.logger.With(zap.String("import_id", report.ImportID.String()))
	l.publish(events.ImportStarted, report, nil)

	for _, verr := range res.Errors {
		logger.Warn("Skipping invalid row", zap.Int("row", verr.Row), zap.Error(verr.Err))
	}

	if len(res.Records) == 0 {
		logger.Warn("No valid records to import; existing records are kept")
		return l.finish(logger, report), nil
	}

	var err error
	if tx, ok := l.store.(Transactor); ok && l.cfg.Atomic {
		report.Atomic = true
		err = l.loadAtomically(ctx, logger, tx, res.Records, report)
	} else {
		if l.cfg.Atomic {
			logger.Warn("Store does not support transactions; importing without atomicity")
		}
		err = l.loadBatches(ctx, logger, res.Records, report)
	}
	return l.finish(logger, report), err
}

func (l *Loader) loadBatches(ctx context.Context, logger *zap.Logger, records []models.LayoffRecord, report *models.ImportReport) error {
	logger.Info("Clearing existing records")
	if deleted, err := l.store.DeleteAllRecords(ctx); err != nil {
		logger.Error("Failed to clear existing records, continuing", zap.Error(err))
	} else {
		logger.Info("Cleared existing records", zap.Int64("deleted", deleted))
	}

	batches := partition(records, l.cfg.BatchSize)
	for i, batch := range batches {
		n := i + 1
		inserted, err := l.store.InsertRecords(ctx, batch)
		if err != nil {
			l.batchFailed(logger, report, n, len(batch), err)
		} else {
			report.RowsInserted += len(inserted)
			l.metrics.ObserveBatch(true)
			logger.Info("Inserted batch",
				zap.Int("batch", n),
				zap.Int("batches", len(batches)),
				zap.Int("size", len(inserted)),
			)
		}

		if n < len(batches) {
			if err := l.sleep(ctx, l.cfg.BatchDelay); err != nil {
				return fmt.Errorf("import interrupted after batch %d: %w", n, err)
			}
		}
	}
	return nil
}

// loadAtomically does not pause between batches: the transaction stays open
// for the whole run.
func (l *Loader) loadAtomically(ctx context.Context, logger *zap.Logger, tx Transactor, records []models.LayoffRecord, report *models.ImportReport) error {
	batches := partition(records, l.cfg.BatchSize)
	err := tx.Atomically(ctx, func(store Store) error {
		if _, err := store.DeleteAllRecords(ctx); err != nil {
			return fmt.Errorf("clear existing records: %w", err)
		}
		for i, batch := range batches {
			if _, err := store.InsertRecords(ctx, batch); err != nil {
				l.batchFailed(logger, report, i+1, len(batch), err)
				return fmt.Errorf("insert batch %d: %w", i+1, err)
			}
			l.metrics.ObserveBatch(true)
		}
		return nil
	})
	if err != nil {
		logger.Error("Atomic import rolled back", zap.Error(err))
		report.RowsInserted = 0
		report.InsertFailed = len(records)
		return err
	}
	report.RowsInserted = len(records)
	logger.Info("Atomic import committed", zap.Int("batches", len(batches)))
	return nil
}

func (l *Loader) batchFailed(logger *zap.Logger, report *models.ImportReport, batch, size int, err error) {
	logger.Error("Failed to insert batch",
		zap.Int("batch", batch),
		zap.Int("size", size),
		zap.Error(err),
	)
	be := models.BatchError{Batch: batch, Size: size, Message: err.Error()}
	report.BatchErrors = append(report.BatchErrors, be)
	report.InsertFailed += size
	l.metrics.ObserveBatch(false)
	l.publish(events.ImportBatchFailed, report, &be)
}

func (l *Loader) newReport(res *normalize.Result) *models.ImportReport {
	report := &models.ImportReport{
		ImportID:         uuid.New(),
		RowsRead:         res.RowsRead,
		RowsValidated:    len(res.Records),
		ValidationFailed: len(res.Errors),
		StartedAt:        l.now().UTC(),
	}
	for i, verr := range res.Errors {
		if i == reportedErrors {
			report.MoreValidationErrors = len(res.Errors) - reportedErrors
			break
		}
		report.ValidationErrors = append(report.ValidationErrors, verr.Error())
	}
	return report
}

func (l *Loader) finish(logger *zap.Logger, report *models.ImportReport) *models.ImportReport {
	report.FinishedAt = l.now().UTC()
	l.metrics.ObserveImport(report)
	l.publish(events.ImportCompleted, report, nil)
	logger.Info("Import completed",
		zap.Int("rows_read", report.RowsRead),
		zap.Int("rows_validated", report.RowsValidated),
		zap.Int("rows_inserted", report.RowsInserted),
		zap.Int("validation_failed", report.ValidationFailed),
		zap.Int("insert_failed", report.InsertFailed),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}

func (l *Loader) publish(t events.EventType, report *models.ImportReport, batch *models.BatchError) {
	snapshot := *report
	l.publisher.Publish(events.Event{
		Type:       t,
		Import:     &snapshot,
		Batch:      batch,
		OccurredAt: l.now().UTC(),
	})
}

func partition(records []models.LayoffRecord, size int) [][]models.LayoffRecord {
	batches := make([][]models.LayoffRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		batches = append(batches, records[start:end])
	}
	return batches
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
