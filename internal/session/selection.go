package session

import (
	"context"
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/nimbus/internal/state"
	"github.com/five82/nimbus/internal/weather"
	"github.com/five82/nimbus/internal/weatherapi"
)

// SelectPlace resolves placeID and, once the details arrive, fetches the
// weather for it. fallbackName is shown when the details carry no name.
func (c *Controller) SelectPlace(placeID, fallbackName string) tea.Cmd {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" || c.api == nil {
		return nil
	}
	attempt := c.s.BeginSelection()
	// Nothing of the previous place may stay under the new title.
	c.view.RenderWeather(WeatherView{
		Place:   &state.Place{PlaceID: placeID, Name: fallbackName},
		Loading: true,
	})
	c.view.RenderForecast(nil)
	c.view.RenderHourly(nil)

	api := c.api
	return c.request(func(ctx context.Context) tea.Msg {
		details, err := api.PlaceDetails(ctx, placeID)
		return detailsMsg{
			attempt:  attempt,
			placeID:  placeID,
			fallback: fallbackName,
			details:  details,
			err:      err,
		}
	})
}

// Refresh refetches the weather for the selected place.
func (c *Controller) Refresh() tea.Cmd {
	if c.s.Place == nil || c.api == nil {
		return nil
	}
	gen, ok := c.s.BeginRefresh(state.KindCount)
	if !ok {
		return nil
	}
	c.renderWeather()
	return c.fetchWeather(gen, *c.s.Place)
}

func (c *Controller) handleDetails(msg detailsMsg) tea.Cmd {
	if !c.s.CurrentAttempt(msg.attempt) {
		c.log.Debugw("dropping stale place details", "place_id", msg.placeID)
		return nil
	}
	if msg.err != nil {
		c.log.Warnw("place details failed", "place_id", msg.placeID, "error", msg.err)
		text := "Could not get city details"
		if weatherapi.IsTransport(msg.err) {
			text = "Failed to load weather data"
		}
		c.view.Notify(text)
		c.renderAll()
		return nil
	}
	lat, lng, ok := msg.details.Coordinates()
	if !ok {
		c.log.Warnw("place details without coordinates", "place_id", msg.placeID)
		c.view.Notify("Invalid location data")
		c.renderAll()
		return nil
	}

	name := strings.TrimSpace(msg.details.Name)
	if name == "" {
		name = msg.fallback
	}
	place := state.Place{PlaceID: msg.placeID, Name: name, Lat: lat, Lng: lng}
	gen, ok := c.s.CommitPlace(msg.attempt, place, state.KindCount)
	if !ok {
		return nil
	}
	c.log.Infow("place selected", "place_id", place.PlaceID, "name", place.Name, "generation", gen)

	c.renderAll()
	c.renderFavorites()
	return c.fetchWeather(gen, place)
}

// fetchWeather issues the current, daily and hourly requests concurrently.
func (c *Controller) fetchWeather(gen uint64, p state.Place) tea.Cmd {
	api := c.api
	fetch := func(kind state.Kind) tea.Cmd {
		return c.request(func(ctx context.Context) tea.Msg {
			var (
				raw json.RawMessage
				err error
			)
			switch kind {
			case state.KindWeather:
				raw, err = api.CurrentWeather(ctx, p.Lat, p.Lng)
			case state.KindForecast:
				raw, err = api.DailyForecast(ctx, p.Lat, p.Lng)
			case state.KindHourly:
				raw, err = api.HourlyForecast(ctx, p.Lat, p.Lng)
			}
			return snapshotMsg{kind: kind, gen: gen, raw: raw, err: err}
		})
	}
	cmds := make([]tea.Cmd, 0, state.KindCount)
	for _, kind := range state.Kinds() {
		cmds = append(cmds, fetch(kind))
	}
	return tea.Batch(cmds...)
}

func (c *Controller) handleSnapshot(msg snapshotMsg) tea.Cmd {
	if !c.s.Current(msg.gen) {
		c.log.Debugw("dropping stale snapshot", "kind", msg.kind, "generation", msg.gen, "current", c.s.Generation)
		return nil
	}

	switch {
	case msg.err != nil && msg.kind == state.KindWeather:
		text := describe(msg.err, "Connection error", "Could not fetch weather")
		c.log.Warnw("weather fetch failed", "kind", msg.kind, "error", msg.err)
		c.s.Fail(msg.kind, msg.gen, text)
		c.view.Notify(text)
	case msg.err != nil:
		c.log.Warnw("weather fetch failed", "kind", msg.kind, "error", msg.err)
		c.s.Fail(msg.kind, msg.gen, "")
	case msg.kind == state.KindWeather:
		c.s.StoreWeather(msg.gen, msg.raw)
	case msg.kind == state.KindForecast:
		c.s.StoreForecast(msg.gen, msg.raw)
	case msg.kind == state.KindHourly:
		c.s.StoreHourly(msg.gen, msg.raw)
	}

	settled := c.s.Settled(msg.gen)
	c.render(msg.kind)
	if !settled {
		return nil
	}
	if msg.kind != state.KindWeather {
		c.renderWeather()
	}
	return c.LoadFavorites()
}

// renderAll redraws every weather section from the cache.
func (c *Controller) renderAll() {
	for _, kind := range state.Kinds() {
		c.render(kind)
	}
}

func (c *Controller) render(kind state.Kind) {
	switch kind {
	case state.KindWeather:
		c.renderWeather()
	case state.KindForecast:
		c.renderForecast()
	case state.KindHourly:
		c.renderHourly()
	}
}

func (c *Controller) renderWeather() {
	v := WeatherView{
		Place:   c.s.Place,
		Loading: c.s.Loading(),
		Error:   c.s.WeatherError,
	}
	if snap, ok := c.s.Snapshot(state.KindWeather); ok {
		cond, err := weather.Current(snap.Raw, c.units.Current())
		if err != nil {
			c.log.Warnw("unreadable weather payload", "place_id", snap.PlaceID, "error", err)
			v.Error = "Could not fetch weather"
		} else {
			v.Conditions = cond
			v.Ready = true
		}
	}
	c.view.RenderWeather(v)
}

// renderForecast hides the section (nil days) when there is no usable
// forecast for the selected place.
func (c *Controller) renderForecast() {
	snap, ok := c.s.Snapshot(state.KindForecast)
	if !ok {
		c.view.RenderForecast(nil)
		return
	}
	days, err := weather.Forecast(snap.Raw, c.units.Current(), c.days)
	if err != nil {
		c.log.Warnw("unreadable forecast payload", "place_id", snap.PlaceID, "error", err)
		days = nil
	}
	c.view.RenderForecast(days)
}

func (c *Controller) renderHourly() {
	snap, ok := c.s.Snapshot(state.KindHourly)
	if !ok {
		c.view.RenderHourly(nil)
		return
	}
	hours, err := weather.Hourly(snap.Raw, c.units.Current(), c.hours)
	if err != nil {
		c.log.Warnw("unreadable hourly payload", "place_id", snap.PlaceID, "error", err)
		hours = nil
	}
	c.view.RenderHourly(hours)
}

// Selection messages

type detailsMsg struct {
	attempt  uint64
	placeID  string
	fallback string
	details  weatherapi.PlaceDetails
	err      error
}

type snapshotMsg struct {
	kind state.Kind
	gen  uint64
	raw  json.RawMessage
	err  error
}
