package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/nimbus/internal/icons"
	"github.com/five82/nimbus/internal/session"
	"github.com/five82/nimbus/internal/units"
	"github.com/five82/nimbus/internal/weatherapi"
)

// focusArea is the part of the screen receiving plain keys.
type focusArea int

const (
	focusSearch focusArea = iota
	focusFavorites
)

// Options configures the UI.
type Options struct {
	Context         context.Context
	API             weatherapi.API
	Units           *units.Store
	Logger          *zap.SugaredLogger
	Scheduler       session.Scheduler
	Debounce        time.Duration
	Timeout         time.Duration
	ForecastDays    int
	HourlyHours     int
	RefreshInterval time.Duration

	ThemeName string
	// SaveTheme persists a theme change. Optional.
	SaveTheme func(name string) error
	// LogPath is the file shown by the log overlay. Empty disables it.
	LogPath string
	// APIBase is shown in the header.
	APIBase string
	// IconURL resolves an icon reference to a fetchable URL for the
	// current-conditions panel. Optional.
	IconURL func(icons.Reference) string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	ctrl         *session.Controller
	screen       *screen
	keys         keyMap
	log          *zap.SugaredLogger
	saveTheme    func(string) error
	logPath      string
	apiBase      string
	iconURL      func(icons.Reference) string
	refreshEvery time.Duration

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	focus  focusArea
	modal  Modal

	input     textinput.Model
	spinner   spinner.Model
	help      help.Model
	favCursor int

	// Log overlay
	logs        logState
	logViewport viewport.Model
}

// New creates a new Bubble Tea model and the session controller it drives.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	scr := newScreen()
	ctrl := session.New(session.Options{
		Context:      ctx,
		API:          opts.API,
		Renderer:     scr,
		Units:        opts.Units,
		Scheduler:    opts.Scheduler,
		Logger:       log,
		Debounce:     opts.Debounce,
		Timeout:      opts.Timeout,
		ForecastDays: opts.ForecastDays,
		HourlyHours:  opts.HourlyHours,
	})

	ti := textinput.New()
	ti.Placeholder = "Search for a city..."
	ti.Prompt = "› "
	ti.CharLimit = 120
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:          ctx,
		ctrl:         ctrl,
		screen:       scr,
		keys:         DefaultKeyMap(),
		log:          log,
		saveTheme:    opts.SaveTheme,
		logPath:      opts.LogPath,
		apiBase:      opts.APIBase,
		iconURL:      opts.IconURL,
		refreshEvery: opts.RefreshInterval,
		theme:        GetTheme(opts.ThemeName),
		focus:        focusSearch,
		input:        ti,
		spinner:      sp,
		help:         help.New(),
		logs:         newLogState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.ctrl.Init(),
		textinput.Blink,
		m.spinner.Tick,
	}
	if m.refreshEvery > 0 {
		cmds = append(cmds, refreshCmd(m.refreshEvery))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model. Notices raised by the controller while
// handling msg become a modal once no other modal is open.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.promoteNotice()
	next.clampFavorites()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	if cmd, handled := m.ctrl.Update(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.input.Width = max(10, m.searchWidth()-6)
		m.resizeLogViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshMsg:
		return m, tea.Batch(m.ctrl.Refresh(), refreshCmd(m.refreshEvery))

	case logsLoadedMsg:
		m.handleLogsLoaded(msg)
		return m, nil

	case logTickMsg:
		if !m.logs.open || msg.seq != m.logs.seq {
			return m, nil
		}
		var load tea.Cmd
		if m.logs.follow {
			load = m.loadLogs()
		}
		return m, tea.Batch(load, logTickCmd(m.logs.seq))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.logs.open {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.logs.open {
		return m.handleLogsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.modal = newHelpModal(m.keys)
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		return m.openLogs()
	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus()
	case key.Matches(msg, m.keys.ToggleTemperature):
		m.ctrl.ToggleTemperatureUnit()
		return m, nil
	case key.Matches(msg, m.keys.ToggleWind):
		m.ctrl.ToggleWindUnit()
		return m, nil
	case key.Matches(msg, m.keys.ToggleFavorite):
		return m, m.ctrl.ToggleFavorite()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.ctrl.Refresh()
	}

	if m.focus == focusFavorites {
		return m.handleFavoritesKey(msg)
	}
	return m.handleSearchKey(msg)
}

// handleSearchKey routes list navigation to the controller and everything
// else to the text input.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		return m, m.ctrl.OnKey(session.KeyDown)
	case key.Matches(msg, m.keys.Up):
		return m, m.ctrl.OnKey(session.KeyUp)
	case key.Matches(msg, m.keys.Escape):
		return m, m.ctrl.OnKey(session.KeyEscape)
	case key.Matches(msg, m.keys.Confirm):
		label, ok := m.activeSuggestion()
		cmd := m.ctrl.OnKey(session.KeyEnter)
		if ok && cmd != nil {
			// Show the chosen place without starting a new search.
			m.input.SetValue(label)
			m.input.CursorEnd()
		}
		return m, cmd
	}

	before := m.input.Value()
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, inputCmd
	}
	return m, tea.Batch(inputCmd, m.ctrl.OnInput(m.input.Value()))
}

// activeSuggestion is the entry Enter will commit.
func (m Model) activeSuggestion() (string, bool) {
	sug, ok := m.ctrl.Session().Selected()
	return sug.Description, ok
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.screen.favorites.Items)
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.favCursor > 0 {
			m.favCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.favCursor < n-1 {
			m.favCursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		return m, m.ctrl.SelectFavorite(m.favCursor)
	case key.Matches(msg, m.keys.Remove):
		return m, m.ctrl.RemoveFavoriteAt(m.favCursor)
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.HelpLetter):
		m.modal = newHelpModal(m.keys)
	case key.Matches(msg, m.keys.QuitLetter):
		return m, tea.Quit
	}
	return m, nil
}

// toggleFocus moves between the search box and the favorites bar. Leaving
// the search box closes the suggestion list.
func (m Model) toggleFocus() (Model, tea.Cmd) {
	if m.focus == focusSearch {
		m.focus = focusFavorites
		m.input.Blur()
		m.ctrl.Blur()
		return m, nil
	}
	m.focus = focusSearch
	return m, m.input.Focus()
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.saveTheme == nil {
		return
	}
	if err := m.saveTheme(m.theme.Name); err != nil {
		m.log.Warnw("saving theme failed", "theme", m.theme.Name, "error", err)
	}
}

func (m *Model) promoteNotice() {
	if m.modal != nil {
		return
	}
	if msg, ok := m.screen.popNotice(); ok {
		m.modal = noticeModal{message: msg}
	}
}

func (m *Model) clampFavorites() {
	n := len(m.screen.favorites.Items)
	if m.favCursor > n-1 {
		m.favCursor = n - 1
	}
	if m.favCursor < 0 {
		m.favCursor = 0
	}
}

// Messages

type refreshMsg time.Time

// Commands

func refreshCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or
// the context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
