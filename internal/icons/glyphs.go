package icons

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Loader turns a reference into something displayable. A failed load is
// reported as an error so the caller can substitute the default asset.
type Loader interface {
	Load(ref Reference) (string, error)
}

// Glyphs is the terminal loader: each canonical icon has a glyph.
// Provider assets load when their base name is a known asset.
type Glyphs struct{}

var glyphs = map[string]string{
	"sunny":               "☀️",
	"mostly_sunny":        "🌤️",
	"clear_night":         "🌙",
	"mostly_clear_night":  "🌙",
	"partly_cloudy":       "⛅",
	"partly_cloudy_night": "☁️",
	"mostly_cloudy":       "🌥️",
	"mostly_cloudy_night": "☁️",
	"cloudy":              "☁️",
	"drizzle":             "🌦️",
	"showers":             "🌦️",
	"showers_night":       "🌧️",
	"rain":                "🌧️",
	"heavy_rain":          "🌧️",
	"thunderstorm":        "⛈️",
	"flurries":            "🌨️",
	"snow":                "❄️",
	"snow_showers":        "🌨️",
	"snow_showers_night":  "🌨️",
	"heavy_snow":          "❄️",
	"blizzard":            "🌬️",
	"sleet":               "🌨️",
	"hail":                "🧊",
	"fog":                 "🌫️",
	"haze":                "🌫️",
	"windy":               "💨",
}

// providerAssets maps the base names used by provider icon URIs onto
// canonical glyph names.
var providerAssets = map[string]string{
	"sunny":               "sunny",
	"clear":               "clear_night",
	"mostly_sunny":        "mostly_sunny",
	"mostly_clear":        "mostly_clear_night",
	"partly_cloudy":       "partly_cloudy",
	"partly_clear":        "partly_cloudy_night",
	"mostly_cloudy":       "mostly_cloudy",
	"mostly_cloudy_night": "mostly_cloudy_night",
	"cloudy":              "cloudy",
	"drizzle":             "drizzle",
	"showers":             "showers",
	"rain":                "rain",
	"heavy_rain":          "heavy_rain",
	"thunderstorms":       "thunderstorm",
	"thunderstorm":        "thunderstorm",
	"flurries":            "flurries",
	"snow_showers":        "snow_showers",
	"heavy_snow":          "heavy_snow",
	"snow":                "snow",
	"blizzard":            "blizzard",
	"mixed_rain_snow":     "sleet",
	"sleet":               "sleet",
	"hail":                "hail",
	"fog":                 "fog",
	"haze":                "haze",
	"windy":               "windy",
}

// Load implements Loader.
func (Glyphs) Load(ref Reference) (string, error) {
	if ref.URI != "" {
		name, err := assetName(ref.URI)
		if err != nil {
			return "", err
		}
		canonical, ok := providerAssets[name]
		if !ok {
			return "", fmt.Errorf("unknown provider asset %q", name)
		}
		return glyphs[canonical], nil
	}
	g, ok := glyphs[ref.Name]
	if !ok {
		return "", fmt.Errorf("unknown icon %q", ref.Name)
	}
	return g, nil
}

// Display loads ref and falls back to the default icon when the load fails.
func Display(l Loader, ref Reference) string {
	if l == nil {
		l = Glyphs{}
	}
	if g, err := l.Load(ref); err == nil && g != "" {
		return g
	}
	if g, err := l.Load(Reference{Name: Default}); err == nil && g != "" {
		return g
	}
	return glyphs[Default]
}

func assetName(uri string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return "", fmt.Errorf("parse icon uri: %w", err)
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("icon uri %q has no asset name", uri)
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.TrimSuffix(base, "_dark")
	return Normalize(base), nil
}
