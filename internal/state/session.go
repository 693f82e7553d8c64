package state

import (
	"encoding/json"
	"strings"

	"github.com/five82/nimbus/internal/weatherapi"
)

// ListStatus is the display state of the suggestion list.
type ListStatus int

const (
	ListReady ListStatus = iota
	ListEmpty
	ListError
)

// Query is the search box state. Active is -1 when no suggestion is
// highlighted and otherwise indexes Suggestions.
type Query struct {
	Raw         string
	Debounce    uint64 // armed handle, 0 when nothing is pending
	Search      uint64 // handle of the request in flight, 0 when none
	Searching   bool
	Suggestions []weatherapi.Suggestion
	Active      int
	Visible     bool
	Status      ListStatus
	Message     string
}

// Place is the resolved selection.
type Place struct {
	PlaceID string
	Name    string
	Lat     float64
	Lng     float64
}

// Kind identifies one of the weather snapshots.
type Kind int

const (
	KindWeather Kind = iota
	KindForecast
	KindHourly
)

// KindCount is the number of snapshots fetched per place.
const KindCount = len(kinds)

var kinds = [...]Kind{KindWeather, KindForecast, KindHourly}

// Kinds returns every snapshot kind in fetch order.
func Kinds() []Kind {
	out := kinds
	return out[:]
}

func (k Kind) String() string {
	switch k {
	case KindWeather:
		return "weather"
	case KindForecast:
		return "forecast"
	case KindHourly:
		return "hourly"
	}
	return "unknown"
}

// Snapshot is a raw payload kept for re-rendering.
type Snapshot struct {
	Raw        json.RawMessage
	PlaceID    string
	Generation uint64
}

// Session is the whole controller state. It is owned by a single event
// loop and mutated only through its methods.
type Session struct {
	Query      Query
	Place      *Place
	Generation uint64
	Favorites  []weatherapi.Favorite

	// WeatherError is set when the current-conditions fetch for Place
	// failed; it is cleared by the next selection or refresh.
	WeatherError string

	snapshots   [KindCount]*Snapshot
	pending     int
	attempt     uint64
	debounceSeq uint64
}

// New returns an empty session.
func New() *Session {
	return &Session{Query: Query{Active: -1}}
}

// ArmDebounce records raw as the input and arms a new debounce handle,
// superseding any earlier one.
func (s *Session) ArmDebounce(raw string) uint64 {
	s.debounceSeq++
	s.Query.Raw = raw
	s.Query.Debounce = s.debounceSeq
	return s.debounceSeq
}

// ClearQuery records raw as the input, cancels the pending debounce and
// empties the suggestion list.
func (s *Session) ClearQuery(raw string) {
	s.Query = Query{Raw: raw, Active: -1}
}

// DebounceFired consumes handle. It reports false for a handle that was
// superseded or cancelled.
func (s *Session) DebounceFired(handle uint64) bool {
	if handle == 0 || handle != s.Query.Debounce {
		return false
	}
	s.Query.Debounce = 0
	s.Query.Search = handle
	s.Query.Searching = true
	return true
}

// CancelSearch drops the pending debounce and the request in flight; a
// late result for either is rejected.
func (s *Session) CancelSearch() {
	s.Query.Debounce = 0
	s.Query.Search = 0
	s.Query.Searching = false
}

// Term is the trimmed query sent to autocomplete.
func (s *Session) Term() string {
	return strings.TrimSpace(s.Query.Raw)
}

// ApplySuggestions replaces the list with the result of search, the
// handle that started it. Results for a cancelled search or a query that
// no longer matches the input are rejected.
func (s *Session) ApplySuggestions(search uint64, query string, list []weatherapi.Suggestion) bool {
	if !s.searchCurrent(search, query) {
		return false
	}
	s.Query.Search = 0
	s.Query.Searching = false
	s.Query.Suggestions = cloneSuggestions(list)
	s.Query.Active = -1
	s.Query.Visible = true
	s.Query.Message = ""
	s.Query.Status = ListReady
	if len(list) == 0 {
		s.Query.Status = ListEmpty
	}
	return true
}

// ApplySuggestionError puts the list in the error state for search.
func (s *Session) ApplySuggestionError(search uint64, query, message string) bool {
	if !s.searchCurrent(search, query) {
		return false
	}
	s.Query.Search = 0
	s.Query.Searching = false
	s.Query.Suggestions = nil
	s.Query.Active = -1
	s.Query.Visible = true
	s.Query.Status = ListError
	s.Query.Message = message
	return true
}

func (s *Session) searchCurrent(search uint64, query string) bool {
	return search != 0 && search == s.Query.Search && query == s.Term()
}

// MoveDown advances the highlight, jumping from none to the first entry.
func (s *Session) MoveDown() {
	if s.Query.Active < len(s.Query.Suggestions)-1 {
		s.Query.Active++
	}
}

// MoveUp retreats the highlight; it never leaves the first entry.
func (s *Session) MoveUp() {
	if s.Query.Active > 0 {
		s.Query.Active--
	}
}

// Selected returns the highlighted suggestion, or the first one when
// nothing is highlighted.
func (s *Session) Selected() (weatherapi.Suggestion, bool) {
	list := s.Query.Suggestions
	if len(list) == 0 {
		return weatherapi.Suggestion{}, false
	}
	if s.Query.Active >= 0 && s.Query.Active < len(list) {
		return list[s.Query.Active], true
	}
	return list[0], true
}

// Suggestion returns entry i.
func (s *Session) Suggestion(i int) (weatherapi.Suggestion, bool) {
	if i < 0 || i >= len(s.Query.Suggestions) {
		return weatherapi.Suggestion{}, false
	}
	return s.Query.Suggestions[i], true
}

// Hide hides the list without touching its contents or the input.
func (s *Session) Hide() {
	s.Query.Visible = false
}

// BeginSelection starts a detail lookup and returns its attempt id. Any
// earlier attempt still in flight becomes stale.
func (s *Session) BeginSelection() uint64 {
	s.attempt++
	s.Query.Visible = false
	return s.attempt
}

// CurrentAttempt reports whether attempt is the latest selection attempt.
func (s *Session) CurrentAttempt(attempt uint64) bool {
	return attempt != 0 && attempt == s.attempt
}

// CommitPlace makes p the selected place for attempt, invalidating every
// snapshot. It returns the new generation; fetches is the number of
// weather requests that will report back under it.
func (s *Session) CommitPlace(attempt uint64, p Place, fetches int) (uint64, bool) {
	if !s.CurrentAttempt(attempt) {
		return 0, false
	}
	s.Place = &p
	s.Generation++
	s.snapshots = [3]*Snapshot{}
	s.WeatherError = ""
	s.pending = fetches
	return s.Generation, true
}

// BeginRefresh starts a new generation for the current place. Existing
// snapshots stay visible until replaced.
func (s *Session) BeginRefresh(fetches int) (uint64, bool) {
	if s.Place == nil {
		return 0, false
	}
	s.Generation++
	s.pending = fetches
	return s.Generation, true
}

// Current reports whether gen is the live generation.
func (s *Session) Current(gen uint64) bool {
	return s.Place != nil && gen == s.Generation
}

// StoreWeather caches a current-conditions payload.
func (s *Session) StoreWeather(gen uint64, raw json.RawMessage) bool {
	if !s.store(KindWeather, gen, raw) {
		return false
	}
	s.WeatherError = ""
	return true
}

// StoreForecast caches a daily forecast payload.
func (s *Session) StoreForecast(gen uint64, raw json.RawMessage) bool {
	return s.store(KindForecast, gen, raw)
}

// StoreHourly caches an hourly forecast payload.
func (s *Session) StoreHourly(gen uint64, raw json.RawMessage) bool {
	return s.store(KindHourly, gen, raw)
}

func (s *Session) store(kind Kind, gen uint64, raw json.RawMessage) bool {
	if !s.Current(gen) {
		return false
	}
	dup := make(json.RawMessage, len(raw))
	copy(dup, raw)
	s.snapshots[kind] = &Snapshot{Raw: dup, PlaceID: s.Place.PlaceID, Generation: gen}
	return true
}

// Fail drops the snapshot of kind after a failed fetch for gen. A weather
// failure also records message for display.
func (s *Session) Fail(kind Kind, gen uint64, message string) bool {
	if !s.Current(gen) {
		return false
	}
	s.snapshots[kind] = nil
	if kind == KindWeather {
		s.WeatherError = message
	}
	return true
}

// Snapshot returns the cached payload of kind for the selected place.
func (s *Session) Snapshot(kind Kind) (Snapshot, bool) {
	snap := s.snapshots[kind]
	if snap == nil || s.Place == nil || snap.PlaceID != s.Place.PlaceID {
		return Snapshot{}, false
	}
	return *snap, true
}

// Settled records one finished fetch for gen and reports whether it was
// the last outstanding one.
func (s *Session) Settled(gen uint64) bool {
	if !s.Current(gen) || s.pending <= 0 {
		return false
	}
	s.pending--
	return s.pending == 0
}

// Loading reports whether weather fetches are outstanding.
func (s *Session) Loading() bool {
	return s.pending > 0
}

// ApplyFavorites replaces the favorites with list, dropping duplicate ids
// (first wins) and entries without an id.
func (s *Session) ApplyFavorites(list []weatherapi.Favorite) {
	seen := make(map[string]bool, len(list))
	out := make([]weatherapi.Favorite, 0, len(list))
	for _, f := range list {
		if f.PlaceID == "" || seen[f.PlaceID] {
			continue
		}
		seen[f.PlaceID] = true
		out = append(out, f)
	}
	s.Favorites = out
}

// IsFavorite reports whether the selected place is in the loaded set.
func (s *Session) IsFavorite() bool {
	if s.Place == nil {
		return false
	}
	for _, f := range s.Favorites {
		if f.PlaceID == s.Place.PlaceID {
			return true
		}
	}
	return false
}

// Favorite returns entry i of the loaded set.
func (s *Session) Favorite(i int) (weatherapi.Favorite, bool) {
	if i < 0 || i >= len(s.Favorites) {
		return weatherapi.Favorite{}, false
	}
	return s.Favorites[i], true
}

func cloneSuggestions(items []weatherapi.Suggestion) []weatherapi.Suggestion {
	if len(items) == 0 {
		return nil
	}
	dup := make([]weatherapi.Suggestion, len(items))
	copy(dup, items)
	return dup
}
