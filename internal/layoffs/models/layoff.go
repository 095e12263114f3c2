// Package models defines the core domain models for layoff records and the
// derived shapes computed from them.
package models

import (
	"time"

	"github.com/google/uuid"
)

// UnknownLabel is substituted for blank sectors and locations.
const UnknownLabel = "Unknown"

// LayoffRecord is a single layoff event.
type LayoffRecord struct {
	// ID is assigned by the store on insert.
	ID uuid.UUID `json:"id"`
	// Company is the affected company's name. Never empty once persisted.
	Company string `json:"company"`
	// Date is the event date in UTC.
	Date time.Time `json:"date"`
	// Count is the number of employees affected, nil when unknown. The store
	// column is a 32-bit integer; the importer treats larger values as unknown.
	Count *int `json:"count"`
	// Sector is the free-text industry label.
	Sector string `json:"sector"`
	// Location is the free-text location label. May be empty.
	Location string `json:"location"`
	// SourceURL is the citation for the record. May be empty.
	SourceURL string `json:"source_url"`
	// CreatedAt records when the store accepted the record.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Affected returns Count, treating an unknown count as zero.
func (r LayoffRecord) Affected() int {
	if r.Count == nil {
		return 0
	}
	return *r.Count
}

// Filter narrows a record set. Zero values mean "no constraint".
type Filter struct {
	Sector    string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.Sector == "" && f.Location == "" && f.StartDate == nil && f.EndDate == nil
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// LayoffPage is a page of records plus its pagination metadata.
type LayoffPage struct {
	Records    []LayoffRecord
	Pagination Pagination
}
