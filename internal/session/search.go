package session

import (
	"context"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/nimbus/internal/weatherapi"
)

// Key is a navigation key for the suggestion list.
type Key int

const (
	KeyDown Key = iota + 1
	KeyUp
	KeyEnter
	KeyEscape
)

// OnInput handles a change of the search text. Short input clears the
// list at once; anything else (re)arms the debounce.
func (c *Controller) OnInput(text string) tea.Cmd {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minQueryLen {
		c.s.ClearQuery(text)
		c.renderSuggestions()
		return nil
	}
	handle := c.s.ArmDebounce(text)
	return c.sched.After(c.debounce, debounceMsg{handle: handle})
}

// OnKey applies a navigation key to the suggestion list.
func (c *Controller) OnKey(k Key) tea.Cmd {
	switch k {
	case KeyDown:
		c.s.MoveDown()
	case KeyUp:
		c.s.MoveUp()
	case KeyEnter:
		sug, ok := c.s.Selected()
		if !ok {
			return nil
		}
		return c.choose(sug)
	case KeyEscape:
		c.s.Hide()
	default:
		return nil
	}
	c.renderSuggestions()
	return nil
}

// Choose selects suggestion i directly.
func (c *Controller) Choose(i int) tea.Cmd {
	sug, ok := c.s.Suggestion(i)
	if !ok {
		return nil
	}
	return c.choose(sug)
}

// Blur hides the list when focus leaves the search box.
func (c *Controller) Blur() {
	if !c.s.Query.Visible {
		return
	}
	c.s.Hide()
	c.renderSuggestions()
}

func (c *Controller) choose(sug weatherapi.Suggestion) tea.Cmd {
	c.s.CancelSearch()
	c.s.Hide()
	c.renderSuggestions()
	return c.SelectPlace(sug.PlaceID, sug.Description)
}

func (c *Controller) handleDebounce(msg debounceMsg) tea.Cmd {
	if !c.s.DebounceFired(msg.handle) {
		return nil
	}
	search, query := msg.handle, c.s.Term()
	c.renderSuggestions()
	if c.api == nil {
		return nil
	}
	api := c.api
	return c.request(func(ctx context.Context) tea.Msg {
		items, err := api.Autocomplete(ctx, query)
		return suggestionsMsg{search: search, query: query, items: items, err: err}
	})
}

func (c *Controller) handleSuggestions(msg suggestionsMsg) {
	var applied bool
	if msg.err != nil {
		c.log.Warnw("autocomplete failed", "query", msg.query, "error", msg.err)
		applied = c.s.ApplySuggestionError(msg.search, msg.query, describeSearchError(msg.err))
	} else {
		applied = c.s.ApplySuggestions(msg.search, msg.query, msg.items)
	}
	if !applied {
		c.log.Debugw("dropping stale suggestions", "query", msg.query, "input", c.s.Term())
		return
	}
	c.renderSuggestions()
}

func describeSearchError(err error) string {
	if weatherapi.IsTransport(err) {
		return "Connection error"
	}
	return "Error fetching results"
}

func (c *Controller) renderSuggestions() {
	q := c.s.Query
	c.view.RenderSuggestions(SuggestionList{
		Items:     q.Suggestions,
		Active:    q.Active,
		Visible:   q.Visible,
		Searching: q.Searching,
		Status:    q.Status,
		Message:   q.Message,
	})
}

// Search messages

type debounceMsg struct {
	handle uint64
}

type suggestionsMsg struct {
	search uint64
	query  string
	items  []weatherapi.Suggestion
	err    error
}
