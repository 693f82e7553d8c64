package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/nimbus/internal/units"
	"github.com/five82/nimbus/internal/weather"
	"github.com/five82/nimbus/internal/weatherapi"
)

// fakeAPI serves canned payloads keyed by place and counts every call.
type fakeAPI struct {
	mu sync.Mutex

	calls       map[string]int
	queries     []string
	suggestions map[string][]weatherapi.Suggestion
	places      map[string]weatherapi.PlaceDetails
	current     map[string]json.RawMessage // by "lat,lng"
	favorites   []weatherapi.Favorite

	autocompleteErr error
	detailsErr      error
	currentErr      error
	forecastErr     error
	addErr          error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		calls:       map[string]int{},
		suggestions: map[string][]weatherapi.Suggestion{},
		places:      map[string]weatherapi.PlaceDetails{},
		current:     map[string]json.RawMessage{},
	}
}

func (f *fakeAPI) addPlace(id, name string, lat, lng float64, tempC float64) {
	f.places[id] = weatherapi.PlaceDetails{
		Name:     name,
		Geometry: weatherapi.Geometry{Location: weatherapi.Location{Lat: &lat, Lng: &lng}},
	}
	f.current[key(lat, lng)] = json.RawMessage(fmt.Sprintf(`{"temperature":{"degrees":%v},"wind":{"speed":{"value":10}},"weatherCondition":{"type":"CLEAR","description":{"text":"Clear in %s"}}}`, tempC, name))
}

func key(lat, lng float64) string { return fmt.Sprintf("%v,%v", lat, lng) }

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) Autocomplete(_ context.Context, query string) ([]weatherapi.Suggestion, error) {
	f.hit("autocomplete")
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.autocompleteErr != nil {
		return nil, f.autocompleteErr
	}
	return f.suggestions[query], nil
}

func (f *fakeAPI) PlaceDetails(_ context.Context, placeID string) (weatherapi.PlaceDetails, error) {
	f.hit("details")
	if f.detailsErr != nil {
		return weatherapi.PlaceDetails{}, f.detailsErr
	}
	d, ok := f.places[placeID]
	if !ok {
		return weatherapi.PlaceDetails{}, &weatherapi.APIError{Path: "/place_details", Status: 400, Message: "NOT_FOUND"}
	}
	return d, nil
}

func (f *fakeAPI) CurrentWeather(_ context.Context, lat, lng float64) (json.RawMessage, error) {
	f.hit("current")
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.current[key(lat, lng)], nil
}

func (f *fakeAPI) DailyForecast(_ context.Context, _, _ float64) (json.RawMessage, error) {
	f.hit("daily")
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	return json.RawMessage(`{"forecastDays":[{"maxTemperature":{"degrees":20},"minTemperature":{"degrees":10}}]}`), nil
}

func (f *fakeAPI) HourlyForecast(_ context.Context, _, _ float64) (json.RawMessage, error) {
	f.hit("hourly")
	return json.RawMessage(`{"forecastHours":[{"displayDateTime":{"hours":9},"temperature":{"degrees":15}}]}`), nil
}

func (f *fakeAPI) Favorites(context.Context) ([]weatherapi.Favorite, error) {
	f.hit("favorites")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]weatherapi.Favorite(nil), f.favorites...), nil
}

func (f *fakeAPI) AddFavorite(_ context.Context, placeID, name string) error {
	f.hit("add")
	if f.addErr != nil {
		return f.addErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fav := range f.favorites {
		if fav.PlaceID == placeID {
			return nil
		}
	}
	f.favorites = append(f.favorites, weatherapi.Favorite{PlaceID: placeID, Name: name})
	return nil
}

func (f *fakeAPI) RemoveFavorite(_ context.Context, placeID string) error {
	f.hit("remove")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.favorites[:0]
	for _, fav := range f.favorites {
		if fav.PlaceID != placeID {
			out = append(out, fav)
		}
	}
	f.favorites = out
	return nil
}

// manualScheduler holds scheduled messages until the test advances time.
type manualScheduler struct {
	pending []tea.Msg
}

func (s *manualScheduler) After(_ time.Duration, msg tea.Msg) tea.Cmd {
	s.pending = append(s.pending, msg)
	return nil
}

// elapse fires every scheduled message, oldest first.
func (s *manualScheduler) elapse(t *testing.T, c *Controller) {
	t.Helper()
	due := s.pending
	s.pending = nil
	for _, msg := range due {
		cmd, handled := c.Update(msg)
		if !handled {
			t.Fatalf("controller did not handle %T", msg)
		}
		drain(t, c, cmd)
	}
}

// recorder is a Renderer that keeps the last view of every section.
type recorder struct {
	suggestions SuggestionList
	weather     WeatherView
	forecast    []weather.Day
	hourly      []weather.Hour
	favorites   FavoritesView
	units       units.Preferences
	notices     []string
	weatherLog  []WeatherView
}

func (r *recorder) RenderSuggestions(v SuggestionList) { r.suggestions = v }
func (r *recorder) RenderWeather(v WeatherView) {
	r.weather = v
	r.weatherLog = append(r.weatherLog, v)
}
func (r *recorder) RenderForecast(d []weather.Day)  { r.forecast = d }
func (r *recorder) RenderHourly(h []weather.Hour)   { r.hourly = h }
func (r *recorder) RenderFavorites(v FavoritesView) { r.favorites = v }
func (r *recorder) RenderUnits(p units.Preferences) { r.units = p }
func (r *recorder) Notify(message string)           { r.notices = append(r.notices, message) }

// drain runs cmd and everything it leads to, feeding results back into c
// the way the Bubble Tea loop would.
func drain(t *testing.T, c *Controller, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range collect(cmd) {
		next, handled := c.Update(msg)
		if !handled {
			t.Fatalf("controller did not handle %T", msg)
		}
		drain(t, c, next)
	}
}

// collect executes cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, sub := range batch {
			out = append(out, collect(sub)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

type harness struct {
	api   *fakeAPI
	view  *recorder
	sched *manualScheduler
	saved []units.Preferences
	c     *Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{api: newFakeAPI(), view: &recorder{}, sched: &manualScheduler{}}
	store := units.NewStore(units.Defaults(), func(p units.Preferences) error {
		h.saved = append(h.saved, p)
		return nil
	})
	h.c = New(Options{
		API:       h.api,
		Renderer:  h.view,
		Units:     store,
		Scheduler: h.sched,
		Timeout:   time.Second,
	})
	return h
}
