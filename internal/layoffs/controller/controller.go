// Package controller implements the analytics service layer: it loads record
// snapshots from the repository, runs the aggregation and geo packages over
// them and publishes creation events.
package controller

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/aggregate"
	e "github.com/gartstein/layofflens/internal/layoffs/errors"
	"github.com/gartstein/layofflens/internal/layoffs/events"
	"github.com/gartstein/layofflens/internal/layoffs/geo"
	"github.com/gartstein/layofflens/internal/layoffs/models"
	"golang.org/x/sync/errgroup"
	"go.uber.org/zap"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 1000
	// MaxPage keeps the row offset of a page well inside the store's range.
	MaxPage = 1_000_000
	// RecentLimit is the size of the dashboard's recent activity feed.
	RecentLimit = 12
)

// Repository defines the storage interface for layoff records.
type Repository interface {
	QueryRecords(ctx context.Context, filter models.Filter, page, limit int) ([]models.LayoffRecord, int64, error)
	ListRecords(ctx context.Context, filter models.Filter) ([]models.LayoffRecord, error)
	InsertRecord(ctx context.Context, record *models.LayoffRecord) error
	Distinct(ctx context.Context, column string) ([]string, error)
}

// AnalyticsService answers read queries over the record store. Every call
// works on its own snapshot; nothing is cached between calls.
type AnalyticsService struct {
	repo      Repository
	resolver  *geo.Resolver
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService. publisher may be nil.
func NewAnalyticsService(repo Repository, publisher events.Publisher, logger *zap.Logger) *AnalyticsService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &AnalyticsService{
		repo:      repo,
		resolver:  geo.DefaultResolver(),
		publisher: publisher,
		logger:    logger.Named("analytics_service"),
		now:       time.Now,
	}
}

func (s *AnalyticsService) Stats(ctx context.Context, filter models.Filter) (*models.AggregatedStats, error) {
	records, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats := aggregate.ComputeStats(records, s.now())
	return &stats, nil
}

// Industries returns the topN sector shares of the filtered records.
func (s *AnalyticsService) Industries(ctx context.Context, filter models.Filter, topN int) ([]models.ChartPoint, error) {
	records, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	return aggregate.IndustryDistribution(records, topN), nil
}

// TimeSeries returns the monthly series of the filtered records. months <= 0
// selects the default window; more than aggregate.MaxMonths is rejected.
func (s *AnalyticsService) TimeSeries(ctx context.Context, filter models.Filter, months int) ([]models.TimeSeriesPoint, error) {
	if months > aggregate.MaxMonths {
		return nil, fmt.Errorf("%w: months must be at most %d", e.ErrInvalidInput, aggregate.MaxMonths)
	}
	records, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	return aggregate.MonthlyTimeSeries(records, months, s.now()), nil
}

// Geographic summarizes records by map location. Only the date bounds of
// filter apply; sector and location are ignored.
func (s *AnalyticsService) Geographic(ctx context.Context, filter models.Filter) (*models.GeoSummary, error) {
	records, err := s.snapshot(ctx, dateBounds(filter))
	if err != nil {
		return nil, err
	}
	summary := s.resolver.Summarize(records)
	return &summary, nil
}

// Layoffs returns one page of records, newest first. limit is capped at MaxLimit.
func (s *AnalyticsService) Layoffs(ctx context.Context, filter models.Filter, page, limit int) (*models.LayoffPage, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("%w: page and limit must be positive", e.ErrInvalidInput)
	}
	if page > MaxPage {
		return nil, fmt.Errorf("%w: page must be at most %d", e.ErrInvalidInput, MaxPage)
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	limit = min(limit, MaxLimit)

	records, total, err := s.repo.QueryRecords(ctx, filter, page, limit)
	if err != nil {
		return nil, s.fetchFailed("Failed to query layoffs", err)
	}
	return &models.LayoffPage{
		Records: records,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// CreateLayoff validates and stores a single record, then publishes LayoffCreated.
func (s *AnalyticsService) CreateLayoff(ctx context.Context, record *models.LayoffRecord) (*models.LayoffRecord, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: empty record", e.ErrInvalidInput)
	}
	rec := *record
	rec.Company = strings.TrimSpace(rec.Company)
	rec.Sector = strings.TrimSpace(rec.Sector)
	rec.Location = strings.TrimSpace(rec.Location)
	rec.SourceURL = strings.TrimSpace(rec.SourceURL)

	if rec.Company == "" {
		return nil, fmt.Errorf("%w: %w", e.ErrInvalidInput, e.ErrMissingCompany)
	}
	if rec.Count != nil && *rec.Count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", e.ErrInvalidInput)
	}
	if rec.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", e.ErrInvalidInput)
	}
	if rec.Sector == "" {
		rec.Sector = models.UnknownLabel
	}
	rec.Date = rec.Date.UTC()

	if err := s.repo.InsertRecord(ctx, &rec); err != nil {
		s.logger.Error("Failed to create layoff", zap.String("company", rec.Company), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", e.ErrStoreFailed, err)
	}

	s.logger.Info("Layoff created", zap.String("id", rec.ID.String()), zap.String("company", rec.Company))
	created := rec
	s.publisher.Publish(events.Event{Type: events.LayoffCreated, Layoff: &created, OccurredAt: s.now().UTC()})
	return &rec, nil
}

// Sectors lists the distinct non-empty sectors, sorted.
func (s *AnalyticsService) Sectors(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "sector")
}

// Locations lists the distinct non-empty locations, sorted.
func (s *AnalyticsService) Locations(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "location")
}

// Dashboard builds every overview view from a single date-bounded snapshot,
// fetched alongside the recent activity feed. Sector and location narrow the
// stats, industries and series; the map only honours the dates.
func (s *AnalyticsService) Dashboard(ctx context.Context, filter models.Filter) (*models.Dashboard, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	var (
		snapshot []models.LayoffRecord
		recent   []models.LayoffRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot, err = s.repo.ListRecords(gctx, dateBounds(filter))
		if err != nil {
			return s.fetchFailed("Failed to load dashboard snapshot", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recent, _, err = s.repo.QueryRecords(gctx, models.Filter{}, 1, RecentLimit)
		if err != nil {
			return s.fetchFailed("Failed to load recent layoffs", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	filtered := aggregate.FilterRecords(snapshot, filter)
	return &models.Dashboard{
		Stats:      aggregate.ComputeStats(filtered, now),
		Industries: aggregate.IndustryDistribution(filtered, aggregate.DefaultTopIndustries),
		TimeSeries: aggregate.MonthlyTimeSeries(filtered, aggregate.DefaultMonths, now),
		Geo:        s.resolver.Summarize(snapshot),
		Recent:     recent,
	}, nil
}

func (s *AnalyticsService) snapshot(ctx context.Context, filter models.Filter) ([]models.LayoffRecord, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	records, err := s.repo.ListRecords(ctx, filter)
	if err != nil {
		return nil, s.fetchFailed("Failed to load layoffs", err)
	}
	return records, nil
}

func (s *AnalyticsService) distinct(ctx context.Context, column string) ([]string, error) {
	values, err := s.repo.Distinct(ctx, column)
	if err != nil {
		return nil, s.fetchFailed("Failed to list distinct values", err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func (s *AnalyticsService) fetchFailed(msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	return fmt.Errorf("%w: %w", e.ErrFetchFailed, err)
}

func validateFilter(f models.Filter) error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("%w: startDate is after endDate", e.ErrInvalidInput)
	}
	return nil
}

func dateBounds(f models.Filter) models.Filter {
	return models.Filter{StartDate: f.StartDate, EndDate: f.EndDate}
}
