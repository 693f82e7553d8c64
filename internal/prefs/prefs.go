// Package prefs handles nimbus user preferences persistence.
// Preferences are stored in ~/.config/nimbus/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/nimbus/internal/units"
)

// Prefs holds user preferences for nimbus.
type Prefs struct {
	Theme           string `toml:"theme"`
	TemperatureUnit string `toml:"temperature_unit"`
	WindUnit        string `toml:"wind_unit"`
}

const (
	defaultPrefsPath = "~/.config/nimbus/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when no file exists.
func Defaults() Prefs {
	d := units.Defaults()
	return Prefs{
		Theme:           defaultTheme,
		TemperatureUnit: string(d.Temperature),
		WindUnit:        string(d.Wind),
	}
}

// Units returns the unit selection, normalized to known values.
func (p Prefs) Units() units.Preferences {
	return units.Preferences{
		Temperature: units.Temperature(p.TemperatureUnit),
		Wind:        units.Wind(p.WindUnit),
	}.Normalize()
}

// WithUnits returns a copy of p carrying u.
func (p Prefs) WithUnits(u units.Preferences) Prefs {
	p.TemperatureUnit = string(u.Temperature)
	p.WindUnit = string(u.Wind)
	return p
}

// Load reads preferences from the given path, falling back to defaults if
// missing or unreadable.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults()
	}

	file, err := os.Open(resolved)
	if err != nil {
		return Defaults()
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Defaults()
	}

	prefs := Defaults()
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Defaults()
	}
	return prefs.normalize()
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p.normalize())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Update loads the current preferences, applies fn and saves the result.
// Fields fn does not touch keep their stored values.
func Update(path string, fn func(*Prefs)) error {
	if fn == nil {
		return errors.New("prefs: nil update func")
	}
	p := Load(path)
	fn(&p)
	return Save(path, p)
}

func (p Prefs) normalize() Prefs {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p.WithUnits(p.Units())
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
