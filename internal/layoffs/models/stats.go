package models

import (
	"time"

	"github.com/google/uuid"
)

// Trend is the direction of the recent-vs-previous window comparison.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// AggregatedStats summarizes a record set.
type AggregatedStats struct {
	TotalLayoffs           int    `json:"totalLayoffs"`
	TotalCompanies         int    `json:"totalCompanies"`
	TotalEmployeesAffected int    `json:"totalEmployeesAffected"`
	AverageLayoffSize      int    `json:"averageLayoffSize"`
	MostAffectedIndustry   string `json:"mostAffectedIndustry"`
	MostAffectedCountry    string `json:"mostAffectedCountry"`
	RecentTrend            Trend  `json:"recentTrend"`
}

// ChartPoint is one slice of the industry distribution. Value is a percentage.
type ChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// TimeSeriesPoint is one calendar-month bucket.
type TimeSeriesPoint struct {
	Key   string `json:"key"`
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// GeoPoint is a resolved location with its aggregated count.
type GeoPoint struct {
	Location  string  `json:"location"`
	City      string  `json:"city"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Country   string  `json:"country"`
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"`
}

// CountryCount is the summed count for one country.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// GeoSummary is the map view of a record set.
type GeoSummary struct {
	Locations      []GeoPoint     `json:"locations"`
	TopCountries   []CountryCount `json:"topCountries"`
	TotalLocations int            `json:"totalLocations"`
}

// Dashboard bundles the views the overview page needs in one response.
type Dashboard struct {
	Stats      AggregatedStats   `json:"stats"`
	Industries []ChartPoint      `json:"industries"`
	TimeSeries []TimeSeriesPoint `json:"timeSeries"`
	Geo        GeoSummary        `json:"geo"`
	Recent     []LayoffRecord    `json:"recent"`
}

// BatchError records a failed batch insert.
type BatchError struct {
	Batch   int    `json:"batch"`
	Size    int    `json:"size"`
	Message string `json:"message"`
}

// ImportReport is the outcome of one loader run.
type ImportReport struct {
	ImportID             uuid.UUID    `json:"importId"`
	RowsRead             int          `json:"rowsRead"`
	RowsValidated        int          `json:"rowsValidated"`
	RowsInserted         int          `json:"rowsInserted"`
	ValidationFailed     int          `json:"validationFailed"`
	InsertFailed         int          `json:"insertFailed"`
	BatchErrors          []BatchError `json:"batchErrors,omitempty"`
	ValidationErrors     []string     `json:"validationErrors,omitempty"`
	MoreValidationErrors int          `json:"moreValidationErrors,omitempty"`
	Atomic               bool         `json:"atomic"`
	StartedAt            time.Time    `json:"startedAt"`
	FinishedAt           time.Time    `json:"finishedAt"`
}
