package icons

type entry struct {
	key   string
	day   string
	night string
}

func (e entry) pick(night bool) string {
	if night && e.night != "" {
		return e.night
	}
	return e.day
}

// table maps provider condition codes to canonical icon names. Order is
// significant: the containment scan returns the first matching key, so
// specific codes come before the generic words they contain.
var table = []entry{
	// Google Weather condition types.
	{"mostly_clear", "mostly_sunny", "mostly_clear_night"},
	{"partly_cloudy", "partly_cloudy", "partly_cloudy_night"},
	{"mostly_cloudy", "mostly_cloudy", "mostly_cloudy_night"},
	{"wind_and_rain", "heavy_rain", ""},
	{"light_rain_showers", "showers", "showers_night"},
	{"chance_of_showers", "showers", "showers_night"},
	{"scattered_showers", "showers", "showers_night"},
	{"heavy_rain_showers", "heavy_rain", ""},
	{"rain_showers", "showers", "showers_night"},
	{"light_to_moderate_rain", "rain", ""},
	{"moderate_to_heavy_rain", "heavy_rain", ""},
	{"rain_periodically_heavy", "heavy_rain", ""},
	{"light_rain", "drizzle", ""},
	{"heavy_rain", "heavy_rain", ""},
	{"light_snow_showers", "snow_showers", "snow_showers_night"},
	{"chance_of_snow_showers", "snow_showers", "snow_showers_night"},
	{"scattered_snow_showers", "snow_showers", "snow_showers_night"},
	{"heavy_snow_showers", "heavy_snow", ""},
	{"snow_showers", "snow_showers", "snow_showers_night"},
	{"light_to_moderate_snow", "snow", ""},
	{"moderate_to_heavy_snow", "heavy_snow", ""},
	{"snow_periodically_heavy", "heavy_snow", ""},
	{"heavy_snow_storm", "blizzard", ""},
	{"snowstorm", "blizzard", ""},
	{"blowing_snow", "blizzard", ""},
	{"light_snow", "flurries", ""},
	{"heavy_snow", "heavy_snow", ""},
	{"rain_and_snow", "sleet", ""},
	{"hail_showers", "hail", ""},
	{"light_thunderstorm_rain", "thunderstorm", ""},
	{"scattered_thunderstorms", "thunderstorm", ""},
	{"heavy_thunderstorm", "thunderstorm", ""},
	{"thundershower", "thunderstorm", ""},

	// Generic words, also the vocabulary of older payloads.
	{"thunderstorm", "thunderstorm", ""},
	{"thunder", "thunderstorm", ""},
	{"drizzle", "drizzle", ""},
	{"sleet", "sleet", ""},
	{"hail", "hail", ""},
	{"snow", "snow", ""},
	{"shower", "showers", "showers_night"},
	{"rain", "rain", ""},
	{"overcast", "cloudy", ""},
	{"cloudy", "cloudy", ""},
	{"cloud", "cloudy", ""},
	{"clear", "sunny", "clear_night"},
	{"sunny", "sunny", "clear_night"},
	{"sun", "sunny", "clear_night"},
	{"fog", "fog", ""},
	{"mist", "fog", ""},
	{"haze", "haze", ""},
	{"smoke", "haze", ""},
	{"dust", "haze", ""},
	{"windy", "windy", ""},
	{"wind", "windy", ""},
}

var byKey = func() map[string]entry {
	m := make(map[string]entry, len(table))
	for _, e := range table {
		if _, dup := m[e.key]; !dup {
			m[e.key] = e
		}
	}
	return m
}()
