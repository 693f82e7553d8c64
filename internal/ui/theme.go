package ui

import "github.com/charmbracelet/lipgloss"

// Theme is the resolved color set the views draw with.
type Theme struct {
	Name string

	Background string // behind modals
	Surface    string // header and status lines
	SurfaceAlt string // favorite chips

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Forecast highs and lows.
	Warm string
	Cool string
}

// palette is a theme in source form: the editor scheme's own ramp and
// accents. theme maps them onto UI roles.
type palette struct {
	name string
	// bg runs from the darkest background to the border shade.
	bg        [4]string
	selection string
	fg        string
	comment   string
	dim       string

	blue, green, yellow, orange, red, cyan string
}

func (p palette) theme() Theme {
	return Theme{
		Name:          p.name,
		Background:    p.bg[0],
		Surface:       p.bg[1],
		SurfaceAlt:    p.bg[2],
		SelectionBg:   p.selection,
		SelectionText: p.fg,
		Border:        p.bg[3],
		BorderFocus:   p.blue,
		Text:          p.fg,
		Muted:         p.comment,
		Faint:         p.dim,
		Accent:        p.blue,
		Success:       p.green,
		Warning:       p.yellow,
		Danger:        p.red,
		Info:          p.cyan,
		Warm:          p.orange,
		Cool:          p.cyan,
	}
}

var palettes = []palette{
	{
		// https://github.com/EdenEast/nightfox.nvim
		name:      "Nightfox",
		bg:        [4]string{"#131a24", "#192330", "#212e3f", "#39506d"},
		selection: "#2b3b51",
		fg:        "#cdcecf",
		comment:   "#738091",
		dim:       "#71839b",
		blue:      "#719cd6", green: "#81b29a", yellow: "#dbc074",
		orange: "#f4a261", red: "#c94f6d", cyan: "#63cdcf",
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		name:      "Kanagawa",
		bg:        [4]string{"#16161D", "#1F1F28", "#2A2A37", "#54546D"},
		selection: "#2D4F67",
		fg:        "#DCD7BA",
		comment:   "#C8C093",
		dim:       "#727169",
		blue:      "#7E9CD8", green: "#98BB6C", yellow: "#E6C384",
		orange: "#FFA066", red: "#E46876", cyan: "#7FB4CA",
	},
	{
		// Tailwind slate with sky accents
		name:      "Slate",
		bg:        [4]string{"#020617", "#0f172a", "#1e293b", "#334155"},
		selection: "#0284c7",
		fg:        "#f1f5f9",
		comment:   "#94a3b8",
		dim:       "#64748b",
		blue:      "#38bdf8", green: "#22c55e", yellow: "#f59e0b",
		orange: "#fb923c", red: "#ef4444", cyan: "#06b6d4",
	},
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Chip     lipgloss.Style

	High lipgloss.Style
	Low  lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Info).Bold(true),
		Selected: fg(t.SelectionText).
			Background(lipgloss.Color(t.SelectionBg)),
		Chip: fg(t.Text).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Padding(0, 1),

		High: fg(t.Warm).Bold(true),
		Low:  fg(t.Cool),
	}
}

// WithBackground returns a copy of Styles with every text style painted on
// bgColor, so adjacent segments do not leave transparent gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo, &out.High, &out.Low,
	} {
		*st = st.Background(bg)
	}
	return out
}

// LevelStyle colors a log level in the log overlay.
func (s Styles) LevelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return s.DangerText
	case "WARN":
		return s.WarningText
	case "DEBUG":
		return s.FaintText
	default:
		return s.InfoText
	}
}

var themes = func() map[string]Theme {
	m := make(map[string]Theme, len(palettes))
	for _, p := range palettes {
		m[p.name] = p.theme()
	}
	return m
}()

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return palettes[0].theme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, p := range palettes {
		if p.name == current {
			return palettes[(i+1)%len(palettes)].name
		}
	}
	return palettes[0].name
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.name
	}
	return names
}
