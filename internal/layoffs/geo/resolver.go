// Package geo maps free-text layoff locations onto a fixed table of known cities
// and aggregates counts for the map view.
package geo

import (
	"math"
	"sort"
	"strings"

	"github.com/gartstein/layofflens/internal/layoffs/models"
)

const (
	// intensityScale is the count at which a location reaches full intensity.
	intensityScale = 1000.0
	topCountries   = 10
)

// Resolver matches location text against an ordered city table. It is safe
// for concurrent use: the table is never modified after construction.
type Resolver struct {
	cities []City
	byName map[string]City
}

// NewResolver builds a resolver over cities, which are matched in order.
func NewResolver(cities []City) *Resolver {
	r := &Resolver{
		cities: make([]City, len(cities)),
		byName: make(map[string]City, len(cities)),
	}
	copy(r.cities, cities)
	for _, c := range r.cities {
		if _, dup := r.byName[c.Name]; !dup {
			r.byName[c.Name] = c
		}
	}
	return r
}

// DefaultResolver returns a resolver over the built-in city table.
func DefaultResolver() *Resolver {
	return NewResolver(defaultCities())
}

// Resolve returns the city for location and whether it is a known one. An
// exact name wins; otherwise the first city whose name contains the location,
// or is contained in it, is used.
func (r *Resolver) Resolve(location string) (City, bool) {
	if strings.TrimSpace(location) == "" {
		return Unknown, false
	}
	if c, ok := r.byName[location]; ok {
		return c, c.Name != Unknown.Name
	}
	for _, c := range r.cities {
		if strings.Contains(location, c.Name) || strings.Contains(c.Name, location) {
			return c, c.Name != Unknown.Name
		}
	}
	return Unknown, false
}

// Summarize sums counts per location, resolves each location and drops the
// ones that stay unknown. Locations are ordered by count, largest first.
func (r *Resolver) Summarize(records []models.LayoffRecord) models.GeoSummary {
	var order []string
	sums := make(map[string]int)
	for _, rec := range records {
		location := rec.Location
		if location == "" {
			location = models.UnknownLabel
		}
		if _, ok := sums[location]; !ok {
			order = append(order, location)
		}
		sums[location] += rec.Affected()
	}

	points := make([]models.GeoPoint, 0, len(order))
	for _, location := range order {
		city, ok := r.Resolve(location)
		if !ok {
			continue
		}
		count := sums[location]
		points = append(points, models.GeoPoint{
			Location:  location,
			City:      city.Name,
			Lat:       city.Lat,
			Lng:       city.Lng,
			Country:   city.Country,
			Count:     count,
			Intensity: math.Min(float64(count)/intensityScale, 1),
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Count > points[j].Count
	})

	return models.GeoSummary{
		Locations:      points,
		TopCountries:   countryTotals(points),
		TotalLocations: len(points),
	}
}

func countryTotals(points []models.GeoPoint) []models.CountryCount {
	var countries []models.CountryCount
	index := make(map[string]int)
	for _, p := range points {
		i, ok := index[p.Country]
		if !ok {
			i = len(countries)
			index[p.Country] = i
			countries = append(countries, models.CountryCount{Country: p.Country})
		}
		countries[i].Count += p.Count
	}
	sort.SliceStable(countries, func(i, j int) bool {
		return countries[i].Count > countries[j].Count
	})
	if len(countries) > topCountries {
		countries = countries[:topCountries]
	}
	if countries == nil {
		countries = []models.CountryCount{}
	}
	return countries
}
