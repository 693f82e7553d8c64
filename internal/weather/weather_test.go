package weather

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/nimbus/internal/icons"
	"github.com/five82/nimbus/internal/units"
)

const currentPayload = `{
  "isDaytime": false,
  "weatherCondition": {
    "type": "CLEAR",
    "description": {"text": "Clear", "languageCode": "en"}
  },
  "temperature": {"degrees": 20, "unit": "CELSIUS"},
  "relativeHumidity": 64,
  "wind": {"speed": {"value": 10, "unit": "KILOMETERS_PER_HOUR"}}
}`

func TestCurrent(t *testing.T) {
	c, err := Current(json.RawMessage(currentPayload), units.Defaults())
	require.NoError(t, err)
	require.Equal(t, Conditions{
		Temperature: "20°C",
		Description: "Clear",
		Humidity:    "64%",
		Wind:        "10 km/h",
		Icon:        icons.Reference{Name: "clear_night"},
	}, c)

	c, err = Current(json.RawMessage(currentPayload), units.Preferences{Temperature: units.Fahrenheit, Wind: units.MPH})
	require.NoError(t, err)
	require.Equal(t, "68°F", c.Temperature)
	require.Equal(t, "6.2 mph", c.Wind)
}

func TestCurrentLegacyShapeAndProviderUnits(t *testing.T) {
	raw := `{
	  "condition": {"type": "light_rain", "description": "Light rain", "iconBaseUri": "https://maps.gstatic.com/weather/v1/drizzle"},
	  "temperature": {"degrees": 50, "unit": "FAHRENHEIT"},
	  "wind": {"speed": {"value": 10, "unit": "MILES_PER_HOUR"}}
	}`
	c, err := Current(json.RawMessage(raw), units.Defaults())
	require.NoError(t, err)
	require.Equal(t, "10°C", c.Temperature)
	require.Equal(t, "16.1 km/h", c.Wind)
	require.Equal(t, "Light rain", c.Description)
	require.Equal(t, units.Placeholder, c.Humidity)
	require.Equal(t, icons.Reference{URI: "https://maps.gstatic.com/weather/v1/drizzle"}, c.Icon)
}

func TestCurrentMissingFieldsDegrade(t *testing.T) {
	raw := `{"temperature": {"degrees": "warm"}, "wind": {"speed": {}}}`
	c, err := Current(json.RawMessage(raw), units.Defaults())
	require.NoError(t, err)
	require.Equal(t, units.Placeholder, c.Temperature)
	require.Equal(t, units.Placeholder, c.Wind)
	require.Equal(t, "No data", c.Description)
	require.Equal(t, icons.Reference{Name: icons.Default}, c.Icon)

	_, err = Current(json.RawMessage(`[1,2]`), units.Defaults())
	require.Error(t, err)
	_, err = Current(nil, units.Defaults())
	require.Error(t, err)
}

func TestForecast(t *testing.T) {
	raw := `{"forecastDays": [
	  {"displayDate": {"year": 2026, "month": 10, "day": 16},
	   "daytimeForecast": {"weatherCondition": {"type": "LIGHT_RAIN", "description": {"text": "Light rain"}}},
	   "maxTemperature": {"degrees": 18.25}, "minTemperature": {"degrees": 9}},
	  {"displayDate": {"year": 2026, "month": 10, "day": 17},
	   "daytimeForecast": {"temperature": {"degrees": 21}, "weatherCondition": {"type": "SUNNY"}},
	   "nighttimeForecast": {"temperature": {"degrees": 11}}},
	  {"date": {"year": 2026, "month": 10, "day": 18}},
	  {"date": {"year": 2026, "month": 10, "day": 19}},
	  {"date": {"year": 2026, "month": 10, "day": 20}},
	  {"date": {"year": 2026, "month": 10, "day": 21}}
	]}`

	days, err := Forecast(json.RawMessage(raw), units.Defaults(), 0)
	require.NoError(t, err)
	require.Len(t, days, DefaultDays)

	require.Equal(t, Day{
		Label:       "Today",
		High:        "18.3°C",
		Low:         "9°C",
		Description: "Light rain",
		Icon:        icons.Reference{Name: "drizzle"},
	}, days[0])
	require.Equal(t, "Sat", days[1].Label)
	require.Equal(t, "21°C", days[1].High)
	require.Equal(t, "11°C", days[1].Low)
	require.Equal(t, icons.Reference{Name: "sunny"}, days[1].Icon)
	require.Equal(t, "Sun", days[2].Label)
	require.Equal(t, units.Placeholder, days[2].High)
	require.Equal(t, icons.Reference{Name: icons.Default}, days[2].Icon)

	days, err = Forecast(json.RawMessage(raw), units.Preferences{Temperature: units.Fahrenheit, Wind: units.KMH}, 2)
	require.NoError(t, err)
	require.Len(t, days, 2)
	require.Equal(t, "69.8°F", days[1].High)
}

func TestForecastDaysAliasAndEmpty(t *testing.T) {
	days, err := Forecast(json.RawMessage(`{"days": [{"maxTemperature": {"degrees": 3}}]}`), units.Defaults(), 5)
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Equal(t, "3°C", days[0].High)

	days, err = Forecast(json.RawMessage(`{}`), units.Defaults(), 5)
	require.NoError(t, err)
	require.Empty(t, days)
}

func TestHourly(t *testing.T) {
	raw := `{"forecastHours": [
	  {"displayDateTime": {"hours": 7}, "isDaytime": true, "temperature": {"degrees": 12}, "weatherCondition": {"type": "PARTLY_CLOUDY"}},
	  {"interval": {"startTime": "2026-10-16T08:00:00Z"}, "isDaytime": false, "temperature": {"degrees": 13}, "weatherCondition": {"type": "PARTLY_CLOUDY"}},
	  {"temperature": {}}
	]}`
	hours, err := Hourly(json.RawMessage(raw), units.Defaults(), 12)
	require.NoError(t, err)
	require.Equal(t, []Hour{
		{Label: "07:00", Temperature: "12°C", Icon: icons.Reference{Name: "partly_cloudy"}},
		{Label: "08:00", Temperature: "13°C", Icon: icons.Reference{Name: "partly_cloudy_night"}},
		{Label: units.Placeholder, Temperature: units.Placeholder, Icon: icons.Reference{Name: icons.Default}},
	}, hours)

	hours, err = Hourly(json.RawMessage(raw), units.Defaults(), 1)
	require.NoError(t, err)
	require.Len(t, hours, 1)
}
