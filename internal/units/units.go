// Package units holds the temperature and wind unit preferences and the
// conversions used to display cached weather payloads.
package units

import (
	"math"
	"strconv"
	"strings"
)

// Temperature is the display unit for temperatures.
type Temperature string

// Wind is the display unit for wind speeds.
type Wind string

const (
	Celsius    Temperature = "C"
	Fahrenheit Temperature = "F"

	KMH Wind = "KMH"
	MPH Wind = "MPH"
)

// Placeholder is rendered for missing or non-numeric readings.
const Placeholder = "--"

const mphPerKmh = 0.621371

// Preferences is the persisted unit selection.
type Preferences struct {
	Temperature Temperature
	Wind        Wind
}

// Defaults returns {C, KMH}.
func Defaults() Preferences {
	return Preferences{Temperature: Celsius, Wind: KMH}
}

// Normalize replaces unknown values with the defaults.
func (p Preferences) Normalize() Preferences {
	if t, ok := ParseTemperature(string(p.Temperature)); ok {
		p.Temperature = t
	} else {
		p.Temperature = Celsius
	}
	if w, ok := ParseWind(string(p.Wind)); ok {
		p.Wind = w
	} else {
		p.Wind = KMH
	}
	return p
}

// ParseTemperature accepts C/F in any case, with or without a degree sign.
func ParseTemperature(value string) (Temperature, bool) {
	v := strings.ToUpper(strings.TrimSpace(value))
	v = strings.TrimPrefix(v, "°")
	switch v {
	case "C", "CELSIUS":
		return Celsius, true
	case "F", "FAHRENHEIT":
		return Fahrenheit, true
	}
	return "", false
}

// ParseWind accepts KMH/MPH and the common spellings of both.
func ParseWind(value string) (Wind, bool) {
	v := strings.ToUpper(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, "/", "")
	switch v {
	case "KMH", "KPH", "KILOMETERS_PER_HOUR":
		return KMH, true
	case "MPH", "MILES_PER_HOUR":
		return MPH, true
	}
	return "", false
}

// Toggle returns the other temperature unit.
func (t Temperature) Toggle() Temperature {
	if t == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// Symbol returns the display suffix, e.g. "°C".
func (t Temperature) Symbol() string {
	if t == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// Toggle returns the other wind unit.
func (w Wind) Toggle() Wind {
	if w == MPH {
		return KMH
	}
	return MPH
}

// Label returns the display suffix, e.g. "km/h".
func (w Wind) Label() string {
	if w == MPH {
		return "mph"
	}
	return "km/h"
}

// ToFahrenheit converts Celsius to Fahrenheit.
func ToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// ToCelsius converts Fahrenheit to Celsius.
func ToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

// ToMph converts km/h to mph.
func ToMph(kmh float64) float64 { return kmh * mphPerKmh }

// ToKmh converts mph to km/h.
func ToKmh(mph float64) float64 { return mph / mphPerKmh }

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatTemperature renders a Celsius reading in the requested unit without
// the unit suffix. ok=false renders the placeholder.
func FormatTemperature(celsius float64, ok bool, unit Temperature) string {
	if !ok || !finite(celsius) {
		return Placeholder
	}
	if unit == Fahrenheit {
		celsius = ToFahrenheit(celsius)
	}
	return formatNumber(celsius)
}

// FormatWind renders a km/h reading in the requested unit without the unit
// suffix. ok=false renders the placeholder.
func FormatWind(kmh float64, ok bool, unit Wind) string {
	if !ok || !finite(kmh) {
		return Placeholder
	}
	if unit == MPH {
		kmh = ToMph(kmh)
	}
	return formatNumber(kmh)
}

// FormatTemperature renders a Celsius reading with its unit symbol, or the bare
// placeholder when missing.
func (p Preferences) FormatTemperature(celsius float64, ok bool) string {
	s := FormatTemperature(celsius, ok, p.Temperature)
	if s == Placeholder {
		return s
	}
	return s + p.Temperature.Symbol()
}

// FormatWind renders a km/h reading with its unit label, or the bare
// placeholder when missing.
func (p Preferences) FormatWind(kmh float64, ok bool) string {
	s := FormatWind(kmh, ok, p.Wind)
	if s == Placeholder {
		return s
	}
	return s + " " + p.Wind.Label()
}

// FormatNumber renders a unitless reading rounded to one decimal.
func FormatNumber(v float64, ok bool) string {
	if !ok || !finite(v) {
		return Placeholder
	}
	return formatNumber(v)
}

func formatNumber(v float64) string {
	v = Round1(v)
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
