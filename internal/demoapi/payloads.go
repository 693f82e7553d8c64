package demoapi

import (
	"math"
	"strings"
	"time"
)

const iconBase = "https://maps.gstatic.com/weather/v1/"

// assets are the provider icon base names for each demo condition.
var assets = map[string][2]string{
	"CLEAR":         {"sunny", "clear"},
	"PARTLY_CLOUDY": {"partly_cloudy", "partly_clear"},
	"MOSTLY_CLOUDY": {"mostly_cloudy", "mostly_cloudy_night"},
	"CLOUDY":        {"cloudy", "cloudy"},
	"LIGHT_RAIN":    {"drizzle", "drizzle"},
	"RAIN":          {"rain", "rain"},
	"SNOW_SHOWERS":  {"snow_showers", "snow_showers"},
	"WINDY":         {"windy", "windy"},
	"THUNDERSTORM":  {"thunderstorms", "thunderstorms"},
}

// dailyShift varies the forecast from day to day.
var dailyShift = []float64{0, 1.5, -1, 2.5, -2, 0.5, 3, -0.5, 1, -1.5}

// rotation is the condition each later forecast day drifts to.
var rotation = []string{"", "PARTLY_CLOUDY", "CLEAR", "LIGHT_RAIN", "MOSTLY_CLOUDY", "CLEAR", "CLOUDY", "RAIN", "PARTLY_CLOUDY", "CLEAR"}

const (
	forecastDays  = 10
	forecastHours = 24
)

type object = map[string]any

func description(condition string) string {
	text := strings.ToLower(strings.ReplaceAll(condition, "_", " "))
	if text == "" {
		return ""
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

func weatherCondition(condition string, daytime bool, withIcon bool) object {
	c := object{
		"type":        condition,
		"description": object{"text": description(condition), "languageCode": "en"},
	}
	if pair, ok := assets[condition]; ok && withIcon {
		asset := pair[0]
		if !daytime {
			asset = pair[1]
		}
		c["iconBaseUri"] = iconBase + asset
	}
	return c
}

func degrees(v float64) object {
	return object{"degrees": round1(v), "unit": "CELSIUS"}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// localTime approximates the place's wall clock from its longitude.
func localTime(now time.Time, lng float64) time.Time {
	offset := int(math.Round(lng/15)) * 3600
	return now.UTC().In(time.FixedZone("", offset))
}

func isDaytime(local time.Time) bool {
	h := local.Hour()
	return h >= 6 && h < 18
}

// diurnal is the temperature swing around the daily mean at a local hour,
// coolest near 05:00 and warmest near 15:00.
func diurnal(hour int) float64 {
	return -4 * math.Cos(2*math.Pi*float64(hour-3)/24)
}

func humidity(c City) int {
	switch c.Condition {
	case "LIGHT_RAIN", "RAIN", "THUNDERSTORM", "SNOW_SHOWERS":
		return 88
	case "CLEAR":
		return 41
	default:
		return 64
	}
}

func windSpeed(c City) float64 {
	if c.Condition == "WINDY" {
		return 38
	}
	return 8 + math.Mod(math.Abs(c.Lat+c.Lng), 12)
}

func currentPayload(c City, now time.Time) object {
	local := localTime(now, c.Lng)
	day := isDaytime(local)
	return object{
		"currentTime":          now.UTC().Format(time.RFC3339),
		"timeZone":             object{"id": local.Location().String()},
		"isDaytime":            day,
		"weatherCondition":     weatherCondition(c.Condition, day, true),
		"temperature":          degrees(c.BaseC + diurnal(local.Hour())),
		"feelsLikeTemperature": degrees(c.BaseC + diurnal(local.Hour()) - 1.5),
		"relativeHumidity":     humidity(c),
		"wind": object{
			"speed":     object{"value": round1(windSpeed(c)), "unit": "KILOMETERS_PER_HOUR"},
			"direction": object{"degrees": 240, "cardinal": "WEST_SOUTHWEST"},
		},
	}
}

func dailyPayload(c City, now time.Time) object {
	local := localTime(now, c.Lng)
	days := make([]any, 0, forecastDays)
	for i := 0; i < forecastDays; i++ {
		date := local.AddDate(0, 0, i)
		cond := c.Condition
		if i > 0 && rotation[i] != "" {
			cond = rotation[i]
		}
		mean := c.BaseC + dailyShift[i]
		days = append(days, object{
			"displayDate": object{"year": date.Year(), "month": int(date.Month()), "day": date.Day()},
			"daytimeForecast": object{
				"weatherCondition": weatherCondition(cond, true, false),
				"relativeHumidity": humidity(c),
			},
			"nighttimeForecast": object{
				"weatherCondition": weatherCondition(cond, false, false),
			},
			"maxTemperature": degrees(mean + 4),
			"minTemperature": degrees(mean - 4),
		})
	}
	return object{"forecastDays": days}
}

func hourlyPayload(c City, now time.Time) object {
	start := now.UTC().Truncate(time.Hour)
	hours := make([]any, 0, forecastHours)
	for i := 0; i < forecastHours; i++ {
		at := start.Add(time.Duration(i) * time.Hour)
		local := localTime(at, c.Lng)
		day := isDaytime(local)
		hours = append(hours, object{
			"interval": object{
				"startTime": at.Format(time.RFC3339),
				"endTime":   at.Add(time.Hour).Format(time.RFC3339),
			},
			"displayDateTime":  object{"hours": local.Hour()},
			"isDaytime":        day,
			"weatherCondition": weatherCondition(c.Condition, day, false),
			"temperature":      degrees(c.BaseC + diurnal(local.Hour())),
		})
	}
	return object{"forecastHours": hours}
}
