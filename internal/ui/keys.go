package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings. Global bindings are control chords
// so they work while the search box has focus; plain letters only apply
// on the favorites bar.
type keyMap struct {
	// Global
	Quit              key.Binding
	Help              key.Binding
	Focus             key.Binding
	ToggleTemperature key.Binding
	ToggleWind        key.Binding
	ToggleFavorite    key.Binding
	Refresh           key.Binding
	Logs              key.Binding

	// Search box
	Down    key.Binding
	Up      key.Binding
	Confirm key.Binding
	Escape  key.Binding

	// Favorites bar
	Left       key.Binding
	Right      key.Binding
	Remove     key.Binding
	CycleTheme key.Binding
	QuitLetter key.Binding
	HelpLetter key.Binding

	// Logs overlay
	CycleLevel key.Binding
	Follow     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Toggle help"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Search / favorites"),
		),
		ToggleTemperature: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "°C / °F"),
		),
		ToggleWind: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "km/h / mph"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "Save / unsave place"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Refresh weather"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Log overlay"),
		),

		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("down", "Next suggestion"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("up", "Previous suggestion"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close list"),
		),

		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("h/left", "Previous favorite"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("l/right", "Next favorite"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete", "backspace"),
			key.WithHelp("d", "Remove favorite"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		QuitLetter: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		HelpLetter: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),

		CycleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle level filter"),
		),
		Follow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle follow"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.ToggleTemperature, k.ToggleWind, k.ToggleFavorite, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Confirm, k.Escape},
		{k.Left, k.Right, k.Confirm, k.Remove},
		{k.ToggleTemperature, k.ToggleWind, k.ToggleFavorite, k.Refresh},
		{k.Focus, k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
