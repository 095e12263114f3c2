package geo

// City is a known map location.
type City struct {
	Name    string
	Lat     float64
	Lng     float64
	Country string
}

// Unknown is returned for locations that match no known city.
var Unknown = City{Name: "Unknown", Country: "Unknown"}

// defaultCities is in match priority order: substring matching stops at the first hit.
func defaultCities() []City {
	return []City{
		{Name: "SF Bay Area", Lat: 37.7749, Lng: -122.4194, Country: "United States"},
		{Name: "New York City", Lat: 40.7128, Lng: -74.0060, Country: "United States"},
		{Name: "Seattle", Lat: 47.6062, Lng: -122.3321, Country: "United States"},
		{Name: "Austin", Lat: 30.2672, Lng: -97.7431, Country: "United States"},
		{Name: "Los Angeles", Lat: 34.0522, Lng: -118.2437, Country: "United States"},
		{Name: "Boston", Lat: 42.3601, Lng: -71.0589, Country: "United States"},
		{Name: "Chicago", Lat: 41.8781, Lng: -87.6298, Country: "United States"},
		{Name: "Denver", Lat: 39.7392, Lng: -104.9903, Country: "United States"},
		{Name: "Atlanta", Lat: 33.7490, Lng: -84.3880, Country: "United States"},
		{Name: "Dallas", Lat: 32.7767, Lng: -96.7970, Country: "United States"},
		{Name: "Miami", Lat: 25.7617, Lng: -80.1918, Country: "United States"},
		{Name: "Portland", Lat: 45.5152, Lng: -122.6784, Country: "United States"},
		{Name: "Phoenix", Lat: 33.4484, Lng: -112.0740, Country: "United States"},
		{Name: "San Diego", Lat: 32.7157, Lng: -117.1611, Country: "United States"},
		{Name: "Detroit", Lat: 42.3314, Lng: -83.0458, Country: "United States"},
		{Name: "Minneapolis", Lat: 44.9778, Lng: -93.2650, Country: "United States"},
		{Name: "Raleigh", Lat: 35.7796, Lng: -78.6382, Country: "United States"},
		{Name: "Sacramento", Lat: 38.5816, Lng: -121.4944, Country: "United States"},
		{Name: "Salt Lake City", Lat: 40.7608, Lng: -111.8910, Country: "United States"},
		{Name: "Orlando", Lat: 28.5383, Lng: -81.3792, Country: "United States"},
		{Name: "Baltimore", Lat: 39.2904, Lng: -76.6122, Country: "United States"},
		{Name: "Wilmington", Lat: 34.2257, Lng: -77.9447, Country: "United States"},

		{Name: "Toronto", Lat: 43.6532, Lng: -79.3832, Country: "Canada"},
		{Name: "Vancouver", Lat: 49.2827, Lng: -123.1207, Country: "Canada"},
		{Name: "Montreal", Lat: 45.5017, Lng: -73.5673, Country: "Canada"},
		{Name: "Quebec", Lat: 46.8139, Lng: -71.2080, Country: "Canada"},

		{Name: "London", Lat: 51.5074, Lng: -0.1278, Country: "United Kingdom"},
		{Name: "Berlin", Lat: 52.5200, Lng: 13.4050, Country: "Germany"},
		{Name: "Paris", Lat: 48.8566, Lng: 2.3522, Country: "France"},
		{Name: "Amsterdam", Lat: 52.3676, Lng: 4.9041, Country: "Netherlands"},
		{Name: "Stockholm", Lat: 59.3293, Lng: 18.0686, Country: "Sweden"},
		{Name: "Dublin", Lat: 53.3498, Lng: -6.2603, Country: "Ireland"},
		{Name: "Zurich", Lat: 47.3769, Lng: 8.5417, Country: "Switzerland"},

		{Name: "Bengaluru", Lat: 12.9716, Lng: 77.5946, Country: "India"},
		{Name: "Mumbai", Lat: 19.0760, Lng: 72.8777, Country: "India"},
		{Name: "New Delhi", Lat: 28.6139, Lng: 77.2090, Country: "India"},
		{Name: "Hyderabad", Lat: 17.3850, Lng: 78.4867, Country: "India"},
		{Name: "Gurugram", Lat: 28.4595, Lng: 77.0266, Country: "India"},
		{Name: "Singapore", Lat: 1.3521, Lng: 103.8198, Country: "Singapore"},
		{Name: "Tokyo", Lat: 35.6762, Lng: 139.6503, Country: "Japan"},
		{Name: "Beijing", Lat: 39.9042, Lng: 116.4074, Country: "China"},
		{Name: "Tel Aviv", Lat: 32.0853, Lng: 34.7818, Country: "Israel"},

		{Name: "Sydney", Lat: -33.8688, Lng: 151.2093, Country: "Australia"},
		{Name: "Melbourne", Lat: -37.8136, Lng: 144.9631, Country: "Australia"},

		{Name: "Lagos", Lat: 6.5244, Lng: 3.3792, Country: "Nigeria"},
		{Name: "Cape Town", Lat: -33.9249, Lng: 18.4241, Country: "South Africa"},

		Unknown,
	}
}
