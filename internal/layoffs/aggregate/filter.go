// Package aggregate computes the dashboard statistics from a snapshot of layoff
// records. Every function is pure: the same records and the same now give the
// same result.
package aggregate

import (
	"github.com/gartstein/layofflens/internal/layoffs/models"
)

// FilterRecords returns the records matching every constraint set in f.
// Sector and location match exactly; date bounds are inclusive.
func FilterRecords(records []models.LayoffRecord, f models.Filter) []models.LayoffRecord {
	out := make([]models.LayoffRecord, 0, len(records))
	for _, r := range records {
		if matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.LayoffRecord, f models.Filter) bool {
	if f.Sector != "" && r.Sector != f.Sector {
		return false
	}
	if f.Location != "" && r.Location != f.Location {
		return false
	}
	if f.StartDate != nil && r.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && r.Date.After(*f.EndDate) {
		return false
	}
	return true
}
