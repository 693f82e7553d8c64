package ui

import (
	"github.com/five82/nimbus/internal/session"
	"github.com/five82/nimbus/internal/units"
	"github.com/five82/nimbus/internal/weather"
)

// screen is the controller's Renderer. It keeps the latest state of each
// section for View to draw, and queues notices until the model shows them.
type screen struct {
	suggestions session.SuggestionList
	weather     session.WeatherView
	forecast    []weather.Day
	hourly      []weather.Hour
	favorites   session.FavoritesView
	units       units.Preferences
	notices     []string
}

var _ session.Renderer = (*screen)(nil)

func newScreen() *screen {
	return &screen{
		suggestions: session.SuggestionList{Active: -1},
		units:       units.Defaults(),
	}
}

func (s *screen) RenderSuggestions(v session.SuggestionList) { s.suggestions = v }
func (s *screen) RenderWeather(v session.WeatherView)        { s.weather = v }
func (s *screen) RenderForecast(d []weather.Day)             { s.forecast = d }
func (s *screen) RenderHourly(h []weather.Hour)              { s.hourly = h }
func (s *screen) RenderFavorites(v session.FavoritesView)    { s.favorites = v }
func (s *screen) RenderUnits(p units.Preferences)            { s.units = p }
func (s *screen) Notify(message string)                      { s.notices = append(s.notices, message) }

// popNotice removes and returns the oldest queued notice.
func (s *screen) popNotice() (string, bool) {
	if len(s.notices) == 0 {
		return "", false
	}
	msg := s.notices[0]
	s.notices = s.notices[1:]
	return msg, true
}
