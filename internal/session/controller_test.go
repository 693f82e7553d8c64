package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/nimbus/internal/state"
	"github.com/five82/nimbus/internal/units"
	"github.com/five82/nimbus/internal/weatherapi"
)

func TestShortQueryNeverCallsAPI(t *testing.T) {
	h := newHarness(t)
	for _, text := range []string{"", " ", "p", " p ", "é"} {
		require.Nil(t, h.c.OnInput(text))
		h.sched.elapse(t, h.c)
		require.Empty(t, h.view.suggestions.Items)
		require.False(t, h.view.suggestions.Visible)
	}
	require.Zero(t, h.api.total())
}

func TestShortQueryCancelsPendingDebounce(t *testing.T) {
	h := newHarness(t)
	h.c.OnInput("par")
	h.c.OnInput("p")
	h.sched.elapse(t, h.c)
	require.Zero(t, h.api.count("autocomplete"))
}

func TestDebounceIssuesOneRequestPerPause(t *testing.T) {
	h := newHarness(t)
	h.api.suggestions["paris"] = []weatherapi.Suggestion{
		{PlaceID: "p1", Description: "Paris, France"},
		{PlaceID: "p2", Description: "Paris, TX, USA"},
	}

	for _, text := range []string{"pa", "par", "pari", "paris"} {
		h.c.OnInput(text)
	}
	require.Zero(t, h.api.count("autocomplete"))

	h.sched.elapse(t, h.c)
	require.Equal(t, 1, h.api.count("autocomplete"))
	require.Equal(t, []string{"paris"}, h.api.queries)

	list := h.view.suggestions
	require.True(t, list.Visible)
	require.Equal(t, -1, list.Active)
	require.Len(t, list.Items, 2)
	require.Equal(t, state.ListReady, list.Status)
}

func TestSuggestionStates(t *testing.T) {
	h := newHarness(t)
	h.c.OnInput("zzz")
	h.sched.elapse(t, h.c)
	require.Equal(t, state.ListEmpty, h.view.suggestions.Status)

	h.api.autocompleteErr = &weatherapi.APIError{Path: "/autocomplete", Message: "OVER_QUERY_LIMIT"}
	h.c.OnInput("zzzz")
	h.sched.elapse(t, h.c)
	require.Equal(t, state.ListError, h.view.suggestions.Status)
	require.Equal(t, "Error fetching results", h.view.suggestions.Message)

	h.api.autocompleteErr = &weatherapi.TransportError{Path: "/autocomplete", Err: errors.New("refused")}
	h.c.OnInput("zzzzz")
	h.sched.elapse(t, h.c)
	require.Equal(t, "Connection error", h.view.suggestions.Message)
	require.Equal(t, 3, h.api.count("autocomplete"), "errors are not retried")
}

func TestStaleSuggestionsAreDropped(t *testing.T) {
	h := newHarness(t)
	h.api.suggestions["par"] = []weatherapi.Suggestion{{PlaceID: "old", Description: "Parma"}}

	h.c.OnInput("par")
	cmd, _ := h.c.Update(debounceMsg{handle: 1})
	require.NotNil(t, cmd)

	// The user keeps typing before the response lands.
	h.c.OnInput("p")
	drain(t, h.c, cmd)

	require.Empty(t, h.c.Session().Query.Suggestions)
	require.False(t, h.view.suggestions.Visible)
}

func TestChoosingCancelsSearchInFlight(t *testing.T) {
	h := newHarness(t)
	h.api.addPlace("p1", "Paris", 48.85, 2.35, 20)
	h.api.suggestions["par"] = []weatherapi.Suggestion{{PlaceID: "p1", Description: "Paris, France"}}
	h.api.suggestions["pari"] = []weatherapi.Suggestion{{PlaceID: "p1", Description: "Paris, France"}}

	h.c.OnInput("par")
	h.sched.elapse(t, h.c)
	require.True(t, h.view.suggestions.Visible)

	// The request for "pari" is still out when Enter picks from the list.
	h.c.OnInput("pari")
	require.Len(t, h.sched.pending, 1)
	held, _ := h.c.Update(h.sched.pending[0])
	h.sched.pending = nil
	require.NotNil(t, held)

	drain(t, h.c, h.c.OnKey(KeyEnter))
	require.False(t, h.view.suggestions.Visible)
	require.False(t, h.view.suggestions.Searching)
	require.Equal(t, "p1", h.c.Session().Place.PlaceID)

	drain(t, h.c, held)
	require.False(t, h.view.suggestions.Visible)
	require.False(t, h.c.Session().Query.Visible)
}

func TestKeyboardNavigation(t *testing.T) {
	h := newHarness(t)
	h.api.suggestions["lyon"] = []weatherapi.Suggestion{
		{PlaceID: "l1", Description: "Lyon, France"},
		{PlaceID: "l2", Description: "Lyons, CO, USA"},
	}
	h.c.OnInput("lyon")
	h.sched.elapse(t, h.c)

	h.c.OnKey(KeyUp)
	require.Equal(t, -1, h.view.suggestions.Active)
	h.c.OnKey(KeyDown)
	require.Equal(t, 0, h.view.suggestions.Active)
	h.c.OnKey(KeyDown)
	h.c.OnKey(KeyDown)
	require.Equal(t, 1, h.view.suggestions.Active)
	h.c.OnKey(KeyUp)
	require.Equal(t, 0, h.view.suggestions.Active)

	h.c.OnKey(KeyEscape)
	require.False(t, h.view.suggestions.Visible)
	require.Equal(t, "lyon", h.c.Session().Query.Raw, "escape keeps the text")
	require.Len(t, h.view.suggestions.Items, 2)
}

func TestEnterOnEmptyListIsNoop(t *testing.T) {
	h := newHarness(t)
	require.Nil(t, h.c.OnKey(KeyEnter))
	require.Zero(t, h.api.total())
}

func TestEnterSelectsFirstWhenNothingActive(t *testing.T) {
	h := newHarness(t)
	h.api.addPlace("p1", "Paris", 48.85, 2.35, 20)
	h.api.suggestions["paris"] = []weatherapi.Suggestion{
		{PlaceID: "p1", Description: "Paris, France"},
		{PlaceID: "p2", Description: "Paris, TX, USA"},
	}
	h.c.OnInput("paris")
	h.sched.elapse(t, h.c)

	drain(t, h.c, h.c.OnKey(KeyEnter))

	require.False(t, h.view.suggestions.Visible)
	p := h.c.Session().Place
	require.NotNil(t, p)
	require.Equal(t, "p1", p.PlaceID)
	require.Equal(t, "Paris", p.Name)
	require.True(t, h.view.weather.Ready)
	require.Equal(t, "20°C", h.view.weather.Conditions.Temperature)
	require.Equal(t, "Clear in Paris", h.view.weather.Conditions.Description)
	require.False(t, h.view.weather.Loading)
	require.Len(t, h.view.forecast, 1)
	require.Len(t, h.view.hourly, 1)
}

func TestBlurHidesWithoutClearing(t *testing.T) {
	h := newHarness(t)
	h.api.suggestions["rome"] = []weatherapi.Suggestion{{PlaceID: "r1", Description: "Rome"}}
	h.c.OnInput("rome")
	h.sched.elapse(t, h.c)
	h.c.OnKey(KeyDown)

	h.c.Blur()
	q := h.c.Session().Query
	require.False(t, q.Visible)
	require.Equal(t, 0, q.Active)
	require.Len(t, q.Suggestions, 1)
}

func TestSelectPlaceFallbackNameAndFetchCounts(t *testing.T) {
	h := newHarness(t)
	lat, lng := 35.68, 139.69
	h.api.places["t1"] = weatherapi.PlaceDetails{Geometry: weatherapi.Geometry{Location: weatherapi.Location{Lat: &lat, Lng: &lng}}}

	drain(t, h.c, h.c.SelectPlace("t1", "Tokyo, Japan"))

	require.Equal(t, "Tokyo, Japan", h.c.Session().Place.Name)
	require.Equal(t, 1, h.api.count("details"))
	require.Equal(t, 1, h.api.count("current"))
	require.Equal(t, 1, h.api.count("daily"))
	require.Equal(t, 1, h.api.count("hourly"))
	require.Equal(t, 1, h.api.count("favorites"), "favorites reload once weather settles")
}

func TestSelectPlaceDetailFailuresKeepPreviousPlace(t *testing.T) {
	h := newHarness(t)
	h.api.addPlace("p1", "Paris", 48.85, 2.35, 20)
	drain(t, h.c, h.c.SelectPlace("p1", "Paris"))

	zero := 0.0
	h.api.places["bad"] = weatherapi.PlaceDetails{Name: "Null Island", Geometry: weatherapi.Geometry{Location: weatherapi.Location{Lat: &zero, Lng: &zero}}}
	drain(t, h.c, h.c.SelectPlace("bad", "Null Island"))
	require.Equal(t, []string{"Invalid location data"}, h.view.notices)
	require.Equal(t, "p1", h.c.Session().Place.PlaceID)
	require.Equal(t, "20°C", h.view.weather.Conditions.Temperature)

	drain(t, h.c, h.c.SelectPlace("missing", "Nowhere"))
	require.Equal(t, "Could not get city details", h.view.notices[1], "provider codes are not shown")
	require.Equal(t, "Paris", h.view.weather.Place.Name)
	require.Len(t, h.view.forecast, 1)
	require.Len(t, h.view.hourly, 1)

	h.api.detailsErr = &weatherapi.TransportError{Path: "/place_details", Err: errors.New("reset")}
	drain(t, h.c, h.c.SelectPlace("p1", "Paris"))
	require.Equal(t, "Failed to load weather data", h.view.notices[2])
	require.Equal(t, "p1", h.c.Session().Place.PlaceID)
	require.Equal(t, 1, h.api.count("current"), "failed selections fetch no weather")
}

func TestWeatherFailuresAreIndependent(t *testing.T) {
	h := newHarness(t)
	h.api.addPlace("p1", "Paris", 48.85, 2.35, 20)
	h.api.forecastErr = &weatherapi.APIError{Path: "/weather/daily", Status: 500}

	drain(t, h.c, h.c.SelectPlace("p1", "Paris"))
	require.True(t, h.view.weather.Ready, "forecast failure must not blank current weather")
	require.Nil(t, h.view.forecast)
	require.Len(t, h.view.hourly, 1)
	require.Empty(t, h.view.notices, "forecast failures are not user-visible")

	h.api.forecastErr = nil
	h.api.currentErr = &weatherapi.APIError{Path: "/weather/current", Status: 500}
	h.api.addPlace("p2", "Lyon", 45.76, 4.83, 18)
	drain(t, h.c, h.c.SelectPlace("p2", "Lyon"))
	require.Equal(t, []string{"Could not fetch weather"}, h.view.notices)
	require.False(t, h.view.weather.Ready)
	require.Equal(t, "Lyon", h.view.weather.Place.Name)
	require.Equal(t, "Could not fetch weather", h.view.weather.Error)
	require.Len(t, h.view.forecast, 1, "current failure must not blank the forecast")
}

func TestToggleRerendersWithoutRequests(t *testing.T) {
	h := newHarness(t)
	h.api.addPlace("p1", "Paris", 48.85, 2.35, 20)
	drain(t, h.c, h.c.SelectPlace("p1", "Paris"))
	before := h.api.total()

	p := h.c.ToggleTemperatureUnit()
	require.Equal(t, units.Fahrenheit, p.Temperature)
	require.Equal(t, "68°F", h.view.weather.Conditions.Temperature)
	require.Equal(t, "68°F", h.view.forecast[0].High)
	require.Equal(t, "50°F", h.view.forecast[0].Low)
	require.Equal(t, "59°F", h.view.hourly[0].Temperature)

	p = h.c.ToggleWindUnit()
	require.Equal(t, units.MPH, p.Wind)
	require.Equal(t, "6.2 mph", h.view.weather.Conditions.Wind)

	require.Equal(t, before, h.api.total())
	require.Equal(t, []units.Preferences{
		{Temperature: units.Fahrenheit, Wind: units.KMH},
		{Temperature: units.Fahrenheit, Wind: units.MPH},
	}, h.saved)
	require.Equal(t, p, h.view.units)
}

func TestToggleWithoutSnapshotOnlyUpdatesPreference(t *testing.T) {
	h := newHarness(t)
	weatherRenders := len(h.view.weatherLog)
	h.c.ToggleTemperatureUnit()
	require.Equal(t, units.Fahrenheit, h.view.units.Temperature)
	require.Len(t, h.view.weatherLog, weatherRenders)
	require.Zero(t, h.api.total())
}

func TestStaleSelectionNeverShowsOldWeather(t *testing.T) {
	h := newHarness(t)
	h.api.addPlace("A", "Amsterdam", 52.37, 4.89, 11)
	h.api.addPlace("B", "Barcelona", 41.39, 2.17, 24)

	// A resolves and starts its weather fetch, but the fetch is held back.
	detailsA := collect(h.c.SelectPlace("A", "Amsterdam"))
	require.Len(t, detailsA, 1)
	fetchA, _ := h.c.Update(detailsA[0])
	weatherA := collect(fetchA)
	require.Len(t, weatherA, 3)

	// B is selected and completes fully.
	drain(t, h.c, h.c.SelectPlace("B", "Barcelona"))
	require.Equal(t, "24°C", h.view.weather.Conditions.Temperature)

	// A's late results arrive.
	for _, msg := range weatherA {
		cmd, handled := h.c.Update(msg)
		require.True(t, handled)
		require.Nil(t, cmd)
	}
	require.Equal(t, "B", h.c.Session().Place.PlaceID)
	require.Equal(t, "Barcelona", h.view.weather.Place.Name)
	require.Equal(t, "24°C", h.view.weather.Conditions.Temperature)
	snap, ok := h.c.Session().Snapshot(state.KindWeather)
	require.True(t, ok)
	require.Equal(t, "B", snap.PlaceID)
}

func TestPendingSelectionHidesPreviousForecast(t *testing.T) {
	h := newHarness(t)
	h.api.addPlace("A", "Amsterdam", 52.37, 4.89, 11)
	h.api.addPlace("B", "Barcelona", 41.39, 2.17, 24)
	drain(t, h.c, h.c.SelectPlace("A", "Amsterdam"))
	require.Len(t, h.view.forecast, 1)
	require.Len(t, h.view.hourly, 1)

	details := collect(h.c.SelectPlace("B", "Barcelona"))
	require.Len(t, details, 1)
	require.Equal(t, "Barcelona", h.view.weather.Place.Name)
	require.True(t, h.view.weather.Loading)
	require.Empty(t, h.view.forecast)
	require.Empty(t, h.view.hourly)
	require.Equal(t, "A", h.c.Session().Place.PlaceID)

	// B cannot be resolved, so A comes back as it was.
	h.api.detailsErr = errors.New("boom")
	drain(t, h.c, h.c.SelectPlace("B", "Barcelona"))
	require.Equal(t, "Amsterdam", h.view.weather.Place.Name)
	require.False(t, h.view.weather.Loading)
	require.Equal(t, "11°C", h.view.weather.Conditions.Temperature)
	require.Len(t, h.view.forecast, 1)
	require.Len(t, h.view.hourly, 1)
}

func TestStaleDetailsAreDropped(t *testing.T) {
	h := newHarness(t)
	h.api.addPlace("A", "Amsterdam", 52.37, 4.89, 11)
	h.api.addPlace("B", "Barcelona", 41.39, 2.17, 24)

	detailsA := collect(h.c.SelectPlace("A", "Amsterdam"))
	drain(t, h.c, h.c.SelectPlace("B", "Barcelona"))

	cmd, _ := h.c.Update(detailsA[0])
	require.Nil(t, cmd)
	require.Equal(t, "B", h.c.Session().Place.PlaceID)
	require.Equal(t, 1, h.api.count("current"))
}

func TestRefreshKeepsPlaceAndRefetches(t *testing.T) {
	h := newHarness(t)
	require.Nil(t, h.c.Refresh())

	h.api.addPlace("p1", "Paris", 48.85, 2.35, 20)
	drain(t, h.c, h.c.SelectPlace("p1", "Paris"))
	drain(t, h.c, h.c.Refresh())

	require.Equal(t, 2, h.api.count("current"))
	require.Equal(t, 1, h.api.count("details"))
	require.True(t, h.view.weather.Ready)
}

func TestUnhandledMessage(t *testing.T) {
	h := newHarness(t)
	_, handled := h.c.Update("not ours")
	require.False(t, handled)
}
