package aggregate

import (
	"testing"
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/models"
	"github.com/gartstein/layofflens/internal/pkg/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func rec(company, sector, location string, count *int, date time.Time) models.LayoffRecord {
	return models.LayoffRecord{Company: company, Sector: sector, Location: location, Count: count, Date: date}
}

func daysAgo(n int) time.Time {
	return now.Add(-time.Duration(n) * 24 * time.Hour)
}

func sample() []models.LayoffRecord {
	return []models.LayoffRecord{
		rec("Acme", "Tech", "SF Bay Area", utils.Ptr(300), daysAgo(5)),
		rec("acme ", "Tech", "Seattle", utils.Ptr(100), daysAgo(40)),
		rec("Globex", "Retail", "Seattle", utils.Ptr(250), daysAgo(90)),
		rec("Initech", "", "", nil, daysAgo(200)),
		rec("Hooli", "Finance", "London", utils.Ptr(50), daysAgo(10)),
	}
}

func TestFilterRecords(t *testing.T) {
	start := daysAgo(45)
	end := daysAgo(5)

	tests := []struct {
		name   string
		filter models.Filter
		want   []string
	}{
		{name: "no constraint", filter: models.Filter{}, want: []string{"Acme", "acme ", "Globex", "Initech", "Hooli"}},
		{name: "sector", filter: models.Filter{Sector: "Tech"}, want: []string{"Acme", "acme "}},
		{name: "location", filter: models.Filter{Location: "Seattle"}, want: []string{"acme ", "Globex"}},
		{name: "inclusive range", filter: models.Filter{StartDate: &start, EndDate: &end}, want: []string{"Acme", "acme ", "Hooli"}},
		{name: "start only", filter: models.Filter{StartDate: &end}, want: []string{"Acme"}},
		{name: "combined", filter: models.Filter{Sector: "Tech", Location: "Seattle"}, want: []string{"acme "}},
		{name: "sector match is exact", filter: models.Filter{Sector: "tech"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRecords(sample(), tt.filter)
			names := make([]string, 0, len(got))
			for _, r := range got {
				names = append(names, r.Company)
			}
			assert.Equal(t, tt.want, names)

			again := FilterRecords(got, tt.filter)
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("filter not idempotent (-first +second):\n%s", diff)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sample(), now)

	want := models.AggregatedStats{
		TotalLayoffs:           5,
		TotalCompanies:         4,
		TotalEmployeesAffected: 700,
		AverageLayoffSize:      140,
		MostAffectedIndustry:   "Tech",
		MostAffectedCountry:    "Seattle",
		RecentTrend:            models.TrendIncreasing,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("ComputeStats mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, now)

	assert.Equal(t, 0, stats.TotalLayoffs)
	assert.Equal(t, 0, stats.AverageLayoffSize)
	assert.Equal(t, 0, stats.TotalCompanies)
	assert.Equal(t, "Unknown", stats.MostAffectedIndustry)
	assert.Equal(t, "Unknown", stats.MostAffectedCountry)
	assert.Equal(t, models.TrendStable, stats.RecentTrend)
}

func TestComputeStats_CompanyFolding(t *testing.T) {
	stats := ComputeStats([]models.LayoffRecord{
		rec("Acme", "Tech", "", utils.Ptr(1), daysAgo(1)),
		rec("acme ", "Tech", "", utils.Ptr(1), daysAgo(1)),
	}, now)

	assert.Equal(t, 1, stats.TotalCompanies)
}

func TestComputeStats_TiesKeepFirstSeen(t *testing.T) {
	stats := ComputeStats([]models.LayoffRecord{
		rec("A", "Retail", "Berlin", utils.Ptr(100), daysAgo(1)),
		rec("B", "Tech", "Paris", utils.Ptr(100), daysAgo(1)),
		rec("C", "", "", nil, daysAgo(1)),
	}, now)

	assert.Equal(t, "Retail", stats.MostAffectedIndustry)
	assert.Equal(t, "Berlin", stats.MostAffectedCountry)
	assert.Equal(t, 67, stats.AverageLayoffSize)
}

func TestComputeStats_BlankLabelsGroupAsUnknown(t *testing.T) {
	stats := ComputeStats([]models.LayoffRecord{
		rec("A", "", "  ", utils.Ptr(10), daysAgo(1)),
		rec("B", "Unknown", "Unknown", utils.Ptr(10), daysAgo(1)),
		rec("C", "Tech", "Austin", utils.Ptr(15), daysAgo(1)),
	}, now)

	assert.Equal(t, "Unknown", stats.MostAffectedIndustry)
	assert.Equal(t, "Unknown", stats.MostAffectedCountry)
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name     string
		recent   int
		previous int
		want     models.Trend
	}{
		{name: "exactly ten percent is stable", recent: 110, previous: 100, want: models.TrendStable},
		{name: "eleven percent increases", recent: 111, previous: 100, want: models.TrendIncreasing},
		{name: "fifteen percent increases", recent: 115, previous: 100, want: models.TrendIncreasing},
		{name: "minus ten percent is stable", recent: 90, previous: 100, want: models.TrendStable},
		{name: "minus eleven percent decreases", recent: 89, previous: 100, want: models.TrendDecreasing},
		{name: "nothing before, something now", recent: 5, previous: 0, want: models.TrendIncreasing},
		{name: "nothing at all", recent: 0, previous: 0, want: models.TrendStable},
		{name: "everything stopped", recent: 0, previous: 40, want: models.TrendDecreasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTrend(tt.recent, tt.previous))
		})
	}
}

func TestRecentTrend_Windows(t *testing.T) {
	window := 30 * 24 * time.Hour

	records := []models.LayoffRecord{
		rec("now", "Tech", "", utils.Ptr(60), now),
		rec("recent edge", "Tech", "", utils.Ptr(50), now.Add(-window).Add(time.Second)),
		rec("previous upper edge", "Tech", "", utils.Ptr(100), now.Add(-window)),
		rec("previous lower edge", "Tech", "", utils.Ptr(1000), now.Add(-2*window)),
		rec("future", "Tech", "", utils.Ptr(1000), now.Add(time.Hour)),
	}

	// recent = 110, previous = 100: exactly ten percent.
	assert.Equal(t, models.TrendStable, RecentTrend(records, now))

	records = append(records, rec("one more", "Tech", "", utils.Ptr(1), daysAgo(1)))
	assert.Equal(t, models.TrendIncreasing, RecentTrend(records, now))
}

func TestIndustryDistribution(t *testing.T) {
	points := IndustryDistribution(sample(), 0)

	want := []models.ChartPoint{
		{Name: "Tech", Value: 57, Color: SectorColor("Tech")},
		{Name: "Retail", Value: 36, Color: SectorColor("Retail")},
		{Name: "Finance", Value: 7, Color: SectorColor("Finance")},
		{Name: "Unknown", Value: 0, Color: SectorColor("Unknown")},
	}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("IndustryDistribution mismatch (-want +got):\n%s", diff)
	}
}

func TestIndustryDistribution_SumsToHundred(t *testing.T) {
	var records []models.LayoffRecord
	for i, sector := range []string{"A", "B", "C", "D", "E", "F"} {
		records = append(records, rec("c", sector, "", utils.Ptr(7*(i+1)), now))
	}

	points := IndustryDistribution(records, 100)

	sum := 0
	for _, p := range points {
		sum += p.Value
	}
	assert.InDelta(t, 100, sum, float64(len(points)))
}

func TestIndustryDistribution_TopN(t *testing.T) {
	var records []models.LayoffRecord
	for i := 0; i < 12; i++ {
		records = append(records, rec("c", string(rune('A'+i)), "", utils.Ptr(10+i), now))
	}

	assert.Len(t, IndustryDistribution(records, 0), DefaultTopIndustries)
	top3 := IndustryDistribution(records, 3)
	assert.Len(t, top3, 3)
	assert.Equal(t, "L", top3[0].Name)
}

func TestIndustryDistribution_NoCounts(t *testing.T) {
	points := IndustryDistribution([]models.LayoffRecord{rec("A", "Tech", "", nil, now)}, 8)

	assert.NotNil(t, points)
	assert.Empty(t, points)
	assert.Empty(t, IndustryDistribution(nil, 8))
}

func TestSectorColor(t *testing.T) {
	tests := []struct {
		sector string
		want   string
	}{
		{sector: "Tech", want: "#84CC16"},
		{sector: "tech", want: "#84CC16"},
		{sector: "Retail", want: "#06B6D4"},
		{sector: "Healthcare", want: "#10B981"},
		{sector: "Consumer", want: "#F472B6"},
		{sector: "Transportation and Logistics", want: "#F59E0B"},
		{sector: "", want: "#3B82F6"},
	}

	for _, tt := range tests {
		t.Run(tt.sector, func(t *testing.T) {
			assert.Equal(t, tt.want, SectorColor(tt.sector))
		})
	}
}

func TestMonthlyTimeSeries(t *testing.T) {
	records := []models.LayoffRecord{
		rec("A", "Tech", "", utils.Ptr(100), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		rec("B", "Tech", "", utils.Ptr(50), time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC)),
		rec("C", "Tech", "", utils.Ptr(20), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)),
		rec("D", "Tech", "", nil, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)),
		rec("E", "Tech", "", utils.Ptr(999), time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)),
	}

	series := MonthlyTimeSeries(records, 12, now)

	assert.Len(t, series, 12)
	assert.Equal(t, models.TimeSeriesPoint{Key: "2024-07", Date: "Jul 24", Value: 0}, series[0])
	assert.Equal(t, models.TimeSeriesPoint{Key: "2025-01", Date: "Jan 25", Value: 20}, series[6])
	assert.Equal(t, models.TimeSeriesPoint{Key: "2025-06", Date: "Jun 25", Value: 150}, series[11])
	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Key, series[i].Key, "series must be oldest first")
	}
}

func TestMonthlyTimeSeries_Sparse(t *testing.T) {
	for _, months := range []int{1, 3, 12, 24} {
		series := MonthlyTimeSeries(nil, months, now)
		assert.Len(t, series, months)
		for _, p := range series {
			assert.Zero(t, p.Value)
		}
	}

	assert.Len(t, MonthlyTimeSeries(nil, 0, now), DefaultMonths)
}

func TestMonthlyTimeSeries_ClampsToMaxMonths(t *testing.T) {
	for _, months := range []int{MaxMonths + 1, 1 << 40} {
		series := MonthlyTimeSeries(nil, months, now)
		require.Len(t, series, MaxMonths)
		assert.Equal(t, "2025-06", series[MaxMonths-1].Key)
		assert.Equal(t, "2015-07", series[0].Key)
	}
}

func TestMonthlyTimeSeries_YearBoundary(t *testing.T) {
	jan := time.Date(2025, 1, 31, 8, 0, 0, 0, time.UTC)

	series := MonthlyTimeSeries(nil, 3, jan)

	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01"}, []string{series[0].Key, series[1].Key, series[2].Key})
	assert.Equal(t, "Dec 24", series[1].Date)
}
