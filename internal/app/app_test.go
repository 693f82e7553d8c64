package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/nimbus/internal/icons"
	"github.com/five82/nimbus/internal/prefs"
	"github.com/five82/nimbus/internal/units"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestSetupWiresDemoCollaborator(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	logPath := filepath.Join(dir, "state", "nimbus.log")
	cfgPath := filepath.Join(dir, "config.toml")
	writeFile(t, cfgPath, "log_file = \""+logPath+"\"\nforecast_days = 3\n")
	prefsPath := filepath.Join(dir, "prefs.toml")
	writeFile(t, prefsPath, "theme = \"Slate\"\ntemperature_unit = \"F\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts, cleanup, err := setup(ctx, Options{ConfigPath: cfgPath, PrefsPath: prefsPath, Demo: true, Debug: true})
	require.NoError(t, err)
	defer cleanup()

	require.Equal(t, "Slate", opts.ThemeName)
	require.Equal(t, units.Fahrenheit, opts.Units.Current().Temperature)
	require.Equal(t, 3, opts.ForecastDays)
	require.Equal(t, logPath, opts.LogPath)
	require.True(t, strings.HasPrefix(opts.APIBase, "http://127.0.0.1:"), opts.APIBase)

	sug, err := opts.API.Autocomplete(ctx, "tok")
	require.NoError(t, err)
	require.NotEmpty(t, sug)
	require.Equal(t, "demo-tokyo", sug[0].PlaceID)

	require.Equal(t, opts.APIBase+"/icon?icon=sunny", opts.IconURL(icons.Reference{Name: "sunny"}))

	opts.Logger.Debugw("marker", "k", "v")
	require.NoError(t, opts.Logger.Sync())
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "demo collaborator listening")
	require.Contains(t, string(data), "marker")
}

func TestSetupPersistsThemeAndUnits(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfgPath := filepath.Join(dir, "config.toml")
	writeFile(t, cfgPath, "log_file = \""+filepath.Join(dir, "nimbus.log")+"\"\n")
	prefsPath := filepath.Join(dir, "prefs.toml")

	opts, cleanup, err := setup(context.Background(), Options{ConfigPath: cfgPath, PrefsPath: prefsPath})
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, opts.SaveTheme("Kanagawa"))
	_, err = opts.Units.ToggleWind()
	require.NoError(t, err)

	saved := prefs.Load(prefsPath)
	require.Equal(t, "Kanagawa", saved.Theme)
	require.Equal(t, units.MPH, saved.Units().Wind)
	require.Equal(t, units.Celsius, saved.Units().Temperature)
}

func TestSetupRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfgPath := filepath.Join(dir, "config.toml")
	writeFile(t, cfgPath, `log_level = "loud"`)

	_, _, err := setup(context.Background(), Options{ConfigPath: cfgPath})
	require.Error(t, err)
	require.Contains(t, err.Error(), "load config")
}
