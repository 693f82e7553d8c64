package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/nimbus/internal/icons"
	"github.com/five82/nimbus/internal/units"
)

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("payload is not an object")
	}
	return m, nil
}

func getMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func getArray(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

// getFloat reads a number. Numeric strings are accepted; anything else is
// reported as missing.
func getFloat(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getBool(m map[string]any, key string) (value bool, ok bool) {
	if m == nil {
		return false, false
	}
	v, ok := m[key].(bool)
	return v, ok
}

// celsius reads a {degrees, unit} temperature object.
func celsius(m map[string]any) (float64, bool) {
	v, ok := getFloat(m, "degrees")
	if !ok {
		return 0, false
	}
	if u, known := units.ParseTemperature(getString(m, "unit")); known && u == units.Fahrenheit {
		v = units.ToCelsius(v)
	}
	return v, true
}

// kmh reads a {value, unit} speed object.
func kmh(m map[string]any) (float64, bool) {
	v, ok := getFloat(m, "value")
	if !ok {
		return 0, false
	}
	if u, known := units.ParseWind(getString(m, "unit")); known && u == units.MPH {
		v = units.ToKmh(v)
	}
	return v, true
}

// condition returns whichever condition object the payload carries:
// "weatherCondition" from current providers, "condition" from older ones.
func condition(m map[string]any) map[string]any {
	if c := getMap(m, "weatherCondition"); c != nil {
		return c
	}
	return getMap(m, "condition")
}

// conditionText reads the description as a plain string or {text: ...}.
func conditionText(c map[string]any) string {
	if c == nil {
		return ""
	}
	switch v := c["description"].(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return strings.TrimSpace(getString(v, "text"))
	}
	return ""
}

func descriptor(c map[string]any, daylight icons.Daylight) icons.Descriptor {
	return icons.Descriptor{
		Condition: getString(c, "type"),
		Daylight:  daylight,
		IconURI:   getString(c, "iconBaseUri"),
	}
}

func daylightOf(m map[string]any) icons.Daylight {
	isDay, ok := getBool(m, "isDaytime")
	return icons.DaylightFrom(isDay, ok)
}
