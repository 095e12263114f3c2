package aggregate

import (
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/models"
)

const (
	// DefaultMonths is the length of the monthly series.
	DefaultMonths = 12
	// MaxMonths bounds the series length; longer requests are clamped.
	MaxMonths = 120
)

const (
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "Jan 06"
)

// MonthlyTimeSeries sums employees affected per calendar month (UTC) and returns
// exactly months buckets ending at now's month, oldest first, zero filled.
// months is clamped to MaxMonths.
func MonthlyTimeSeries(records []models.LayoffRecord, months int, now time.Time) []models.TimeSeriesPoint {
	if months <= 0 {
		months = DefaultMonths
	}
	months = min(months, MaxMonths)

	byMonth := make(map[string]int)
	for _, r := range records {
		byMonth[r.Date.UTC().Format(monthKeyLayout)] += r.Affected()
	}

	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	series := make([]models.TimeSeriesPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := current.AddDate(0, -i, 0)
		key := month.Format(monthKeyLayout)
		series = append(series, models.TimeSeriesPoint{
			Key:   key,
			Date:  month.Format(monthLabelLayout),
			Value: byMonth[key],
		})
	}
	return series
}
