package app

import (
	"context"
	"fmt"

	"github.com/five82/nimbus/internal/config"
	"github.com/five82/nimbus/internal/demoapi"
	"github.com/five82/nimbus/internal/icons"
	"github.com/five82/nimbus/internal/logger"
	"github.com/five82/nimbus/internal/prefs"
	"github.com/five82/nimbus/internal/session"
	"github.com/five82/nimbus/internal/ui"
	"github.com/five82/nimbus/internal/units"
	"github.com/five82/nimbus/internal/weatherapi"
)

// Options configure the nimbus application.
type Options struct {
	ConfigPath string // empty uses ~/.config/nimbus/config.toml
	PrefsPath  string // empty uses ~/.config/nimbus/prefs.toml
	// Demo serves the built-in collaborator on a loopback port and points
	// the client at it instead of api_base.
	Demo bool
	// Debug forces log_level=debug.
	Debug bool
}

// Run boots the nimbus TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	uiOpts, cleanup, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	log := uiOpts.Logger
	log.Infow("nimbus starting", "api_base", uiOpts.APIBase, "demo", opts.Demo)
	err = ui.Run(uiOpts)
	if err != nil {
		log.Errorw("ui exited", "error", err)
	}
	log.Infow("nimbus stopped")
	return err
}

// setup wires configuration, logging, preferences and the collaborator
// client into the UI options. cleanup closes the log file.
func setup(ctx context.Context, opts Options) (ui.Options, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if opts.Debug {
		level = logger.DebugLevel
	}
	lg, err := logger.New(cfg.LogFile, level)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("init logger: %w", err)
	}
	cleanup := func() { _ = lg.Close() }
	log := lg.SugaredLogger

	userPrefs := prefs.Load(opts.PrefsPath)
	prefsPath := opts.PrefsPath
	store := units.NewStore(userPrefs.Units(), func(u units.Preferences) error {
		return prefs.Update(prefsPath, func(p *prefs.Prefs) { *p = p.WithUnits(u) })
	})

	apiBase := cfg.APIBase
	if opts.Demo {
		srv := demoapi.NewServer(demoapi.WithLogger(log.Named("demo")))
		apiBase, err = demoapi.Start(ctx, "127.0.0.1:0", srv)
		if err != nil {
			cleanup()
			return ui.Options{}, nil, fmt.Errorf("start demo collaborator: %w", err)
		}
	}

	client, err := weatherapi.NewClient(apiBase,
		weatherapi.WithTimeout(cfg.APITimeout),
		weatherapi.WithRateLimit(cfg.APIRate),
		weatherapi.WithLogger(log.Named("api")),
	)
	if err != nil {
		cleanup()
		return ui.Options{}, nil, fmt.Errorf("init weather client: %w", err)
	}

	log.Debugw("configuration loaded",
		"config", cfg.Path,
		"debounce", cfg.Debounce,
		"forecast_days", cfg.ForecastDays,
		"hourly_hours", cfg.HourlyHours,
		"refresh_interval", cfg.RefreshInterval,
	)

	base, dark := client.BaseURL(), cfg.DarkIcons
	return ui.Options{
		Context:         ctx,
		API:             client,
		Units:           store,
		Logger:          log,
		Scheduler:       session.TickScheduler{},
		Debounce:        cfg.Debounce,
		Timeout:         cfg.APITimeout,
		ForecastDays:    cfg.ForecastDays,
		HourlyHours:     cfg.HourlyHours,
		RefreshInterval: cfg.RefreshInterval,
		ThemeName:       userPrefs.Theme,
		SaveTheme: func(name string) error {
			return prefs.Update(prefsPath, func(p *prefs.Prefs) { p.Theme = name })
		},
		LogPath: lg.Path(),
		APIBase: base,
		IconURL: func(ref icons.Reference) string { return ref.URL(base, dark) },
	}, cleanup, nil
}
