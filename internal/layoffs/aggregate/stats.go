package aggregate

import (
	"math"
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/models"
)

const (
	trendWindow = 30 * 24 * time.Hour
	// trendThreshold is the percent change beyond which a trend is not stable.
	trendThreshold = 10.0
)

// ComputeStats summarizes records. An empty set yields zeros and "Unknown" labels.
func ComputeStats(records []models.LayoffRecord, now time.Time) models.AggregatedStats {
	stats := models.AggregatedStats{
		TotalLayoffs:         len(records),
		MostAffectedIndustry: models.UnknownLabel,
		MostAffectedCountry:  models.UnknownLabel,
		RecentTrend:          RecentTrend(records, now),
	}

	companies := make(map[string]struct{}, len(records))
	for _, r := range records {
		stats.TotalEmployeesAffected += r.Affected()
		if key := companyKey(r.Company); key != "" {
			companies[key] = struct{}{}
		}
	}
	stats.TotalCompanies = len(companies)

	if stats.TotalLayoffs > 0 {
		stats.AverageLayoffSize = int(math.Round(float64(stats.TotalEmployeesAffected) / float64(stats.TotalLayoffs)))
	}
	if sector, ok := groupBySector(records).top(); ok {
		stats.MostAffectedIndustry = sector
	}
	if location, ok := groupByLocation(records).top(); ok {
		stats.MostAffectedCountry = location
	}
	return stats
}

// RecentTrend compares the employees affected in (now-30d, now] with (now-60d, now-30d].
func RecentTrend(records []models.LayoffRecord, now time.Time) models.Trend {
	recentStart := now.Add(-trendWindow)
	previousStart := recentStart.Add(-trendWindow)

	var recent, previous int
	for _, r := range records {
		switch {
		case r.Date.After(recentStart) && !r.Date.After(now):
			recent += r.Affected()
		case r.Date.After(previousStart) && !r.Date.After(recentStart):
			previous += r.Affected()
		}
	}
	return ClassifyTrend(recent, previous)
}

// ClassifyTrend maps the two window sums to a trend direction.
func ClassifyTrend(recent, previous int) models.Trend {
	if previous > 0 {
		change := float64(recent-previous) * 100 / float64(previous)
		switch {
		case change > trendThreshold:
			return models.TrendIncreasing
		case change < -trendThreshold:
			return models.TrendDecreasing
		default:
			return models.TrendStable
		}
	}
	if recent > 0 {
		return models.TrendIncreasing
	}
	return models.TrendStable
}
