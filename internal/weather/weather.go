// Package weather turns cached collaborator payloads into display-ready
// values for the current unit preferences. Parsing is pure: the same raw
// snapshot can be rendered again after a unit toggle without a request.
//
// Missing or non-numeric readings render as units.Placeholder rather than
// failing; only a payload that is not a JSON object is an error.
package weather

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/five82/nimbus/internal/icons"
	"github.com/five82/nimbus/internal/units"
)

const (
	// DefaultDays is the number of forecast days shown.
	DefaultDays = 5
	// DefaultHours is the number of hourly entries shown.
	DefaultHours = 12

	noCondition = "No data"
)

// Conditions is the current-weather view.
type Conditions struct {
	Temperature string
	Description string
	Humidity    string
	Wind        string
	Icon        icons.Reference
}

// Day is one forecast column.
type Day struct {
	Label       string
	High        string
	Low         string
	Description string
	Icon        icons.Reference
}

// Hour is one hourly forecast entry.
type Hour struct {
	Label       string
	Temperature string
	Icon        icons.Reference
}

// Current renders a /weather/current payload.
func Current(raw json.RawMessage, p units.Preferences) (Conditions, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return Conditions{}, err
	}

	temp, tempOK := celsius(getMap(m, "temperature"))
	speed, speedOK := kmh(getMap(getMap(m, "wind"), "speed"))
	cond := condition(m)

	description := conditionText(cond)
	if description == "" {
		description = noCondition
	}
	humidity := units.Placeholder
	if h, ok := getFloat(m, "relativeHumidity"); ok {
		humidity = units.FormatNumber(h, true) + "%"
	}

	return Conditions{
		Temperature: p.FormatTemperature(temp, tempOK),
		Description: description,
		Humidity:    humidity,
		Wind:        p.FormatWind(speed, speedOK),
		Icon:        icons.Resolve(descriptor(cond, daylightOf(m))),
	}, nil
}

// Forecast renders a /weather/daily payload, keeping at most maxDays
// entries. The first day is labelled "Today".
func Forecast(raw json.RawMessage, p units.Preferences, maxDays int) ([]Day, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if maxDays <= 0 {
		maxDays = DefaultDays
	}

	src := getArray(m, "forecastDays")
	if len(src) == 0 {
		src = getArray(m, "days")
	}

	days := make([]Day, 0, min(len(src), maxDays))
	for _, item := range src {
		if len(days) >= maxDays {
			break
		}
		dm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		daytime := getMap(dm, "daytimeForecast")
		nighttime := getMap(dm, "nighttimeForecast")

		high, highOK := celsius(getMap(daytime, "temperature"))
		if !highOK {
			high, highOK = celsius(getMap(dm, "maxTemperature"))
		}
		low, lowOK := celsius(getMap(nighttime, "temperature"))
		if !lowOK {
			low, lowOK = celsius(getMap(dm, "minTemperature"))
		}

		cond := condition(daytime)
		if cond == nil {
			cond = condition(dm)
		}

		days = append(days, Day{
			Label:       dayLabel(dm, len(days)),
			High:        p.FormatTemperature(high, highOK),
			Low:         p.FormatTemperature(low, lowOK),
			Description: conditionText(cond),
			Icon:        icons.Resolve(descriptor(cond, icons.Day)),
		})
	}
	return days, nil
}

// Hourly renders a /weather/hourly payload, keeping at most maxHours
// entries.
func Hourly(raw json.RawMessage, p units.Preferences, maxHours int) ([]Hour, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if maxHours <= 0 {
		maxHours = DefaultHours
	}

	src := getArray(m, "forecastHours")
	if len(src) == 0 {
		src = getArray(m, "hours")
	}

	hours := make([]Hour, 0, min(len(src), maxHours))
	for _, item := range src {
		if len(hours) >= maxHours {
			break
		}
		hm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		temp, tempOK := celsius(getMap(hm, "temperature"))
		hours = append(hours, Hour{
			Label:       hourLabel(hm),
			Temperature: p.FormatTemperature(temp, tempOK),
			Icon:        icons.Resolve(descriptor(condition(hm), daylightOf(hm))),
		})
	}
	return hours, nil
}

func dayLabel(dm map[string]any, index int) string {
	if index == 0 {
		return "Today"
	}
	date := getMap(dm, "date")
	if date == nil {
		date = getMap(dm, "displayDate")
	}
	t, ok := civilDate(date)
	if !ok {
		return units.Placeholder
	}
	return t.Weekday().String()[:3]
}

func civilDate(m map[string]any) (time.Time, bool) {
	y, yok := getFloat(m, "year")
	mo, mok := getFloat(m, "month")
	d, dok := getFloat(m, "day")
	if !yok || !mok || !dok || mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(int(y), time.Month(int(mo)), int(d), 12, 0, 0, 0, time.UTC), true
}

func hourLabel(hm map[string]any) string {
	if h, ok := getFloat(getMap(hm, "displayDateTime"), "hours"); ok && h >= 0 && h < 24 {
		return fmt.Sprintf("%02d:00", int(h))
	}
	if start := getString(getMap(hm, "interval"), "startTime"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			return t.Format("15:04")
		}
	}
	return units.Placeholder
}
