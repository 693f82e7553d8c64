// Package demoapi is a self-contained weather collaborator used by --demo
// and by tests. It serves a small gazetteer and synthetic Google-shaped
// forecasts, and keeps favorites in memory.
package demoapi

import (
	"math"
	"strings"
)

// City is one place the demo collaborator knows about.
type City struct {
	PlaceID   string
	Name      string
	Address   string
	Lat       float64
	Lng       float64
	BaseC     float64
	Condition string
}

// DefaultCities is the built-in gazetteer.
var DefaultCities = []City{
	{"demo-paris", "Paris", "Paris, France", 48.8566, 2.3522, 14, "PARTLY_CLOUDY"},
	{"demo-london", "London", "London, UK", 51.5074, -0.1278, 11, "LIGHT_RAIN"},
	{"demo-new-york", "New York", "New York, NY, USA", 40.7128, -74.0060, 16, "CLEAR"},
	{"demo-tokyo", "Tokyo", "Tokyo, Japan", 35.6762, 139.6503, 19, "CLOUDY"},
	{"demo-sydney", "Sydney", "Sydney NSW, Australia", -33.8688, 151.2093, 22, "CLEAR"},
	{"demo-reykjavik", "Reykjavik", "Reykjavik, Iceland", 64.1466, -21.9426, 4, "SNOW_SHOWERS"},
	{"demo-cairo", "Cairo", "Cairo, Egypt", 30.0444, 31.2357, 29, "CLEAR"},
	{"demo-lima", "Lima", "Lima, Peru", -12.0464, -77.0428, 18, "MOSTLY_CLOUDY"},
	{"demo-oslo", "Oslo", "Oslo, Norway", 59.9139, 10.7522, 7, "RAIN"},
	{"demo-berlin", "Berlin", "Berlin, Germany", 52.5200, 13.4050, 12, "MOSTLY_CLOUDY"},
	{"demo-barcelona", "Barcelona", "Barcelona, Spain", 41.3874, 2.1686, 20, "PARTLY_CLOUDY"},
	{"demo-portland", "Portland", "Portland, OR, USA", 45.5152, -122.6784, 13, "LIGHT_RAIN"},
	{"demo-porto", "Porto", "Porto, Portugal", 41.1579, -8.6291, 17, "WINDY"},
	{"demo-paraty", "Paraty", "Paraty, RJ, Brazil", -23.2178, -44.7131, 24, "THUNDERSTORM"},
}

const maxPredictions = 5

// search matches the query against names (prefix) and addresses (substring).
// Name matches sort first.
func search(cities []City, query string) []City {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var prefix, contains []City
	for _, c := range cities {
		switch {
		case strings.HasPrefix(strings.ToLower(c.Name), q):
			prefix = append(prefix, c)
		case strings.Contains(strings.ToLower(c.Address), q):
			contains = append(contains, c)
		}
	}
	out := append(prefix, contains...)
	if len(out) > maxPredictions {
		out = out[:maxPredictions]
	}
	return out
}

func byPlaceID(cities []City, id string) (City, bool) {
	for _, c := range cities {
		if c.PlaceID == id {
			return c, true
		}
	}
	return City{}, false
}

// nearest returns the known city at lat/lng, or a synthetic one whose
// climate follows latitude.
func nearest(cities []City, lat, lng float64) City {
	for _, c := range cities {
		if math.Abs(c.Lat-lat) < 0.05 && math.Abs(c.Lng-lng) < 0.05 {
			return c
		}
	}
	return City{
		Lat:       lat,
		Lng:       lng,
		BaseC:     math.Round((27-math.Abs(lat)*0.4)*10) / 10,
		Condition: "CLOUDY",
	}
}
