package handlers

import (
	"context"

	"github.com/gartstein/layofflens/internal/layoffs/models"
)

// mockAnalyticsController is a simple mock implementation of AnalyticsController.
// Unset functions panic, which fails the test that reached them.
type mockAnalyticsController struct {
	statsFunc        func(ctx context.Context, f models.Filter) (*models.AggregatedStats, error)
	industriesFunc   func(ctx context.Context, f models.Filter, topN int) ([]models.ChartPoint, error)
	timeSeriesFunc   func(ctx context.Context, f models.Filter, months int) ([]models.TimeSeriesPoint, error)
	geographicFunc   func(ctx context.Context, f models.Filter) (*models.GeoSummary, error)
	layoffsFunc      func(ctx context.Context, f models.Filter, page, limit int) (*models.LayoffPage, error)
	createLayoffFunc func(ctx context.Context, r *models.LayoffRecord) (*models.LayoffRecord, error)
	sectorsFunc      func(ctx context.Context) ([]string, error)
	locationsFunc    func(ctx context.Context) ([]string, error)
	dashboardFunc    func(ctx context.Context, f models.Filter) (*models.Dashboard, error)
}

func (m *mockAnalyticsController) Stats(ctx context.Context, f models.Filter) (*models.AggregatedStats, error) {
	return m.statsFunc(ctx, f)
}

func (m *mockAnalyticsController) Industries(ctx context.Context, f models.Filter, topN int) ([]models.ChartPoint, error) {
	return m.industriesFunc(ctx, f, topN)
}

func (m *mockAnalyticsController) TimeSeries(ctx context.Context, f models.Filter, months int) ([]models.TimeSeriesPoint, error) {
	return m.timeSeriesFunc(ctx, f, months)
}

func (m *mockAnalyticsController) Geographic(ctx context.Context, f models.Filter) (*models.GeoSummary, error) {
	return m.geographicFunc(ctx, f)
}

func (m *mockAnalyticsController) Layoffs(ctx context.Context, f models.Filter, page, limit int) (*models.LayoffPage, error) {
	return m.layoffsFunc(ctx, f, page, limit)
}

func (m *mockAnalyticsController) CreateLayoff(ctx context.Context, r *models.LayoffRecord) (*models.LayoffRecord, error) {
	return m.createLayoffFunc(ctx, r)
}

func (m *mockAnalyticsController) Sectors(ctx context.Context) ([]string, error) {
	return m.sectorsFunc(ctx)
}

func (m *mockAnalyticsController) Locations(ctx context.Context) ([]string, error) {
	return m.locationsFunc(ctx)
}

func (m *mockAnalyticsController) Dashboard(ctx context.Context, f models.Filter) (*models.Dashboard, error) {
	return m.dashboardFunc(ctx, f)
}
