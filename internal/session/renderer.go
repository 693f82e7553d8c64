package session

import (
	"github.com/five82/nimbus/internal/state"
	"github.com/five82/nimbus/internal/units"
	"github.com/five82/nimbus/internal/weather"
	"github.com/five82/nimbus/internal/weatherapi"
)

// Renderer is the view side of the controller. Every call carries the
// complete state of its section, so implementations can redraw without
// consulting the controller.
type Renderer interface {
	RenderSuggestions(SuggestionList)
	RenderWeather(WeatherView)
	RenderForecast([]weather.Day)
	RenderHourly([]weather.Hour)
	RenderFavorites(FavoritesView)
	RenderUnits(units.Preferences)
	// Notify shows a blocking, user-visible failure.
	Notify(message string)
}

// SuggestionList is the search dropdown.
type SuggestionList struct {
	Items     []weatherapi.Suggestion
	Active    int
	Visible   bool
	Searching bool
	Status    state.ListStatus
	Message   string
}

// WeatherView is the current-conditions panel. Place is nil before the
// first selection.
type WeatherView struct {
	Place      *state.Place
	Loading    bool
	Ready      bool
	Error      string
	Conditions weather.Conditions
}

// FavoritesView is the chip list plus the toggle for the selected place.
type FavoritesView struct {
	Items     []weatherapi.Favorite
	HasPlace  bool
	Favorited bool
}

type nopRenderer struct{}

func (nopRenderer) RenderSuggestions(SuggestionList) {}
func (nopRenderer) RenderWeather(WeatherView)        {}
func (nopRenderer) RenderForecast([]weather.Day)     {}
func (nopRenderer) RenderHourly([]weather.Hour)      {}
func (nopRenderer) RenderFavorites(FavoritesView)    {}
func (nopRenderer) RenderUnits(units.Preferences)    {}
func (nopRenderer) Notify(string)                    {}
