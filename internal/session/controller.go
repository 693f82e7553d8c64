package session

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/nimbus/internal/state"
	"github.com/five82/nimbus/internal/units"
	"github.com/five82/nimbus/internal/weather"
	"github.com/five82/nimbus/internal/weatherapi"
)

const (
	defaultDebounce = 300 * time.Millisecond
	defaultTimeout  = 10 * time.Second

	// minQueryLen is the shortest trimmed input that triggers autocomplete.
	minQueryLen = 2
)

// Scheduler delivers msg after d. Production code uses tea.Tick; tests
// substitute a manual clock.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TickScheduler schedules through Bubble Tea's timer.
type TickScheduler struct{}

// After implements Scheduler.
func (TickScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Options configures a Controller.
type Options struct {
	Context      context.Context
	API          weatherapi.API
	Renderer     Renderer
	Units        *units.Store
	Scheduler    Scheduler
	Logger       *zap.SugaredLogger
	Debounce     time.Duration
	Timeout      time.Duration
	ForecastDays int
	HourlyHours  int
}

// Controller drives the search, selection, unit and favorites flows. It
// must only be used from the Bubble Tea loop: exported operations mutate
// the session and return the command to run, and Update feeds results
// back in.
type Controller struct {
	ctx      context.Context
	api      weatherapi.API
	view     Renderer
	units    *units.Store
	sched    Scheduler
	log      *zap.SugaredLogger
	debounce time.Duration
	timeout  time.Duration
	days     int
	hours    int

	s *state.Session
}

// New builds a Controller.
func New(opts Options) *Controller {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	view := opts.Renderer
	if view == nil {
		view = nopRenderer{}
	}
	store := opts.Units
	if store == nil {
		store = units.NewStore(units.Defaults(), nil)
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = TickScheduler{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	days := opts.ForecastDays
	if days <= 0 {
		days = weather.DefaultDays
	}
	hours := opts.HourlyHours
	if hours <= 0 {
		hours = weather.DefaultHours
	}

	return &Controller{
		ctx:      ctx,
		api:      opts.API,
		view:     view,
		units:    store,
		sched:    sched,
		log:      log,
		debounce: debounce,
		timeout:  timeout,
		days:     days,
		hours:    hours,
		s:        state.New(),
	}
}

// Session exposes the current state for read-only inspection.
func (c *Controller) Session() *state.Session {
	return c.s
}

// Init renders the initial state and loads the favorites.
func (c *Controller) Init() tea.Cmd {
	c.view.RenderUnits(c.units.Current())
	c.renderSuggestions()
	c.renderAll()
	return c.LoadFavorites()
}

// Update applies a result message. handled is false for messages the
// controller does not own.
func (c *Controller) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	switch msg := msg.(type) {
	case debounceMsg:
		return c.handleDebounce(msg), true
	case suggestionsMsg:
		c.handleSuggestions(msg)
		return nil, true
	case detailsMsg:
		return c.handleDetails(msg), true
	case snapshotMsg:
		return c.handleSnapshot(msg), true
	case favoritesMsg:
		c.handleFavorites(msg)
		return nil, true
	case favoriteMutationMsg:
		return c.handleFavoriteMutation(msg), true
	}
	return nil, false
}

// request runs fn with a bounded context derived from the controller's.
func (c *Controller) request(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	base, timeout := c.ctx, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()
		return fn(ctx)
	}
}

// describe picks the user-facing text for err: a connection message for
// transport failures, the collaborator's own message when it sent one,
// otherwise generic.
func describe(err error, connection, generic string) string {
	if weatherapi.IsTransport(err) {
		return connection
	}
	if msg, ok := weatherapi.APIMessage(err); ok && msg != "" {
		return msg
	}
	return generic
}
