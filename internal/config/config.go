package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the nimbus settings.
type Config struct {
	APIBase         string
	APITimeout      time.Duration
	APIRate         float64
	Debounce        time.Duration
	ForecastDays    int
	HourlyHours     int
	RefreshInterval time.Duration
	DarkIcons       bool
	LogFile         string
	LogLevel        string

	// Path is the config file that was consulted, whether or not it existed.
	Path string
}

const (
	defaultConfigPath      = "~/.config/nimbus/config.toml"
	defaultAPIBase         = "http://127.0.0.1:5000"
	defaultAPITimeout      = 10 * time.Second
	defaultAPIRate         = 5.0
	defaultDebounce        = 300 * time.Millisecond
	defaultForecastDays    = 5
	defaultHourlyHours     = 12
	defaultRefreshInterval = 10 * time.Minute
	defaultLogFile         = "~/.local/state/nimbus/nimbus.log"
	defaultLogLevel        = "info"

	maxForecastDays = 10
	maxHourlyHours  = 48

	envPrefix = "NIMBUS"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load reads the TOML config at path (or the default location), applying
// NIMBUS_* environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(resolved)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Config{
		APIBase:         strings.TrimSpace(v.GetString("api_base")),
		APITimeout:      v.GetDuration("api_timeout"),
		APIRate:         v.GetFloat64("api_rate"),
		Debounce:        v.GetDuration("debounce"),
		ForecastDays:    v.GetInt("forecast_days"),
		HourlyHours:     v.GetInt("hourly_hours"),
		RefreshInterval: v.GetDuration("refresh_interval"),
		DarkIcons:       v.GetBool("dark_icons"),
		LogFile:         strings.TrimSpace(v.GetString("log_file")),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		Path:            resolved,
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		APIBase:         defaultAPIBase,
		APITimeout:      defaultAPITimeout,
		APIRate:         defaultAPIRate,
		Debounce:        defaultDebounce,
		ForecastDays:    defaultForecastDays,
		HourlyHours:     defaultHourlyHours,
		RefreshInterval: defaultRefreshInterval,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_base", defaultAPIBase)
	v.SetDefault("api_timeout", defaultAPITimeout)
	v.SetDefault("api_rate", defaultAPIRate)
	v.SetDefault("debounce", defaultDebounce)
	v.SetDefault("forecast_days", defaultForecastDays)
	v.SetDefault("hourly_hours", defaultHourlyHours)
	v.SetDefault("refresh_interval", defaultRefreshInterval)
	v.SetDefault("dark_icons", false)
	v.SetDefault("log_file", defaultLogFile)
	v.SetDefault("log_level", defaultLogLevel)
}

func (c *Config) normalize() error {
	if c.APIBase == "" {
		c.APIBase = defaultAPIBase
	}
	if c.APITimeout <= 0 {
		c.APITimeout = defaultAPITimeout
	}
	if c.APIRate < 0 {
		return fmt.Errorf("api_rate must not be negative, got %v", c.APIRate)
	}
	if c.Debounce <= 0 {
		c.Debounce = defaultDebounce
	}
	if c.ForecastDays <= 0 {
		c.ForecastDays = defaultForecastDays
	}
	c.ForecastDays = min(c.ForecastDays, maxForecastDays)
	if c.HourlyHours <= 0 {
		c.HourlyHours = defaultHourlyHours
	}
	c.HourlyHours = min(c.HourlyHours, maxHourlyHours)
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh_interval must not be negative, got %s", c.RefreshInterval)
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	c.LogFile = mustExpand(c.LogFile)
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
