package units

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTemperatureRoundTrip(t *testing.T) {
	for x := -40.0; x <= 50; x += 2.5 {
		require.InDelta(t, x, ToCelsius(ToFahrenheit(x)), 0.1, "x=%v", x)
	}
}

func TestWindRoundTrip(t *testing.T) {
	for x := 0.0; x <= 200; x += 7.5 {
		require.InDelta(t, x, ToKmh(ToMph(x)), 0.1, "x=%v", x)
	}
}

func TestFormatTemperature(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		ok   bool
		unit Temperature
		want string
	}{
		{"celsius", 21.44, true, Celsius, "21.4"},
		{"fahrenheit", 20, true, Fahrenheit, "68"},
		{"fahrenheit_rounds", 13.7, true, Fahrenheit, "56.7"},
		{"freezing_point", -17.78, true, Fahrenheit, "0"},
		{"missing", 0, false, Fahrenheit, Placeholder},
		{"nan", math.NaN(), true, Celsius, Placeholder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTemperature(tc.in, tc.ok, tc.unit); got != tc.want {
				t.Fatalf("FormatTemperature(%v, %v, %s) = %q, want %q", tc.in, tc.ok, tc.unit, got, tc.want)
			}
		})
	}
}

func TestFormatWind(t *testing.T) {
	if got := FormatWind(10, true, MPH); got != "6.2" {
		t.Fatalf("FormatWind(10 km/h, MPH) = %q, want 6.2", got)
	}
	if got := FormatWind(10, true, KMH); got != "10" {
		t.Fatalf("FormatWind(10 km/h, KMH) = %q, want 10", got)
	}
	if got := FormatWind(math.Inf(1), true, KMH); got != Placeholder {
		t.Fatalf("FormatWind(inf) = %q, want placeholder", got)
	}
}

func TestPreferencesFormatting(t *testing.T) {
	p := Preferences{Temperature: Fahrenheit, Wind: MPH}
	require.Equal(t, "68°F", p.FormatTemperature(20, true))
	require.Equal(t, "6.2 mph", p.FormatWind(10, true))
	require.Equal(t, Placeholder, p.FormatTemperature(0, false))
	require.Equal(t, Placeholder, p.FormatWind(0, false))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, Defaults(), Preferences{}.Normalize())
	require.Equal(t, Preferences{Temperature: Fahrenheit, Wind: MPH},
		Preferences{Temperature: "f", Wind: "mph"}.Normalize())
	require.Equal(t, Defaults(), Preferences{Temperature: "K", Wind: "knots"}.Normalize())
}

func TestParseWindProviderSpellings(t *testing.T) {
	w, ok := ParseWind("KILOMETERS_PER_HOUR")
	require.True(t, ok)
	require.Equal(t, KMH, w)

	w, ok = ParseWind("km/h")
	require.True(t, ok)
	require.Equal(t, KMH, w)

	w, ok = ParseWind("MILES_PER_HOUR")
	require.True(t, ok)
	require.Equal(t, MPH, w)
}

func TestStoreTogglePersists(t *testing.T) {
	var saved []Preferences
	s := NewStore(Preferences{}, func(p Preferences) error {
		saved = append(saved, p)
		return nil
	})
	require.Equal(t, Defaults(), s.Current())

	p, err := s.ToggleTemperature()
	require.NoError(t, err)
	require.Equal(t, Fahrenheit, p.Temperature)

	p, err = s.ToggleWind()
	require.NoError(t, err)
	require.Equal(t, MPH, p.Wind)

	require.Equal(t, []Preferences{
		{Temperature: Fahrenheit, Wind: KMH},
		{Temperature: Fahrenheit, Wind: MPH},
	}, saved)
}

func TestStoreKeepsToggleWhenSaveFails(t *testing.T) {
	s := NewStore(Defaults(), func(Preferences) error { return errors.New("disk full") })
	p, err := s.ToggleTemperature()
	require.Error(t, err)
	require.Equal(t, Fahrenheit, p.Temperature)
	require.Equal(t, Fahrenheit, s.Current().Temperature)
}
