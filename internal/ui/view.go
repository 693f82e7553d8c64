package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/nimbus/internal/icons"
	"github.com/five82/nimbus/internal/state"
)

// renderMain renders the full screen, top to bottom: header, search box
// with its dropdown, favorites bar, weather panels and the key footer.
func (m Model) renderMain() string {
	sections := []string{
		m.renderHeader(),
		m.renderSearch(),
		m.renderFavorites(),
		m.renderWeatherArea(),
	}
	if m.width >= LayoutCompactWidth {
		if hourly := m.renderHourly(); hourly != "" {
			sections = append(sections, hourly)
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	footer := m.help.View(m.keys)
	gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + footer
}

func (m Model) searchWidth() int {
	return m.width
}

// renderSearch draws the search box and, when open, the suggestion list.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	lines := []string{m.input.View()}

	list := m.screen.suggestions
	switch {
	case list.Searching && len(list.Items) == 0:
		lines = append(lines, styles.MutedText.Render(m.spinner.View()+" Searching..."))
	case !list.Visible:
	case list.Status == state.ListError:
		lines = append(lines, styles.DangerText.Render(list.Message))
	case list.Status == state.ListEmpty:
		lines = append(lines, styles.MutedText.Render("No cities found"))
	default:
		lines = append(lines, m.suggestionRows()...)
	}

	return renderBox(m.theme, "Search", strings.Join(lines, "\n"), m.searchWidth(), 0, m.focus == focusSearch)
}

// suggestionRows renders a window of the list that keeps the active row
// visible.
func (m Model) suggestionRows() []string {
	styles := m.theme.Styles()
	list := m.screen.suggestions
	start := 0
	if list.Active >= maxSuggestionRows {
		start = list.Active - maxSuggestionRows + 1
	}
	end := min(len(list.Items), start+maxSuggestionRows)

	width := max(10, m.searchWidth()-4)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		text := padRight("  "+truncate(list.Items[i].Description, width-2), width)
		if i == list.Active {
			rows = append(rows, styles.Selected.Render(text))
			continue
		}
		rows = append(rows, styles.Text.Render(text))
	}
	return rows
}

// renderFavorites draws the saved places as chips plus the star for the
// selected place.
func (m Model) renderFavorites() string {
	styles := m.theme.Styles()
	fav := m.screen.favorites
	focused := m.focus == focusFavorites

	var line string
	if len(fav.Items) == 0 {
		line = styles.FaintText.Render("No favorite cities yet")
	} else {
		chips := make([]string, 0, len(fav.Items))
		for i, f := range fav.Items {
			style := styles.Chip
			if focused && i == m.favCursor {
				style = styles.Selected.Padding(0, 1)
			}
			chips = append(chips, style.Render(truncate(f.Name, 24)))
		}
		line = strings.Join(chips, " ")
	}

	if fav.HasPlace {
		star := styles.FaintText.Render("☆ ctrl+f to save")
		if fav.Favorited {
			star = styles.WarningText.Render("★ saved")
		}
		line = star + "  " + line
	}
	return renderBox(m.theme, "Favorites", line, m.width, 0, focused)
}

// renderWeatherArea lays out the current conditions and the daily forecast,
// side by side on wide terminals.
func (m Model) renderWeatherArea() string {
	if m.width >= LayoutWideWidth {
		left := m.width / 2
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderCurrent(left),
			m.renderForecast(m.width-left),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderCurrent(m.width),
		m.renderForecast(m.width),
	)
}

func (m Model) renderCurrent(width int) string {
	styles := m.theme.Styles()
	w := m.screen.weather

	title := "Weather"
	if w.Place != nil && w.Place.Name != "" {
		title = w.Place.Name
	}
	if w.Place == nil {
		return renderBox(m.theme, title, styles.FaintText.Render("Search for a city to see its weather"), width, 0, false)
	}

	var lines []string
	switch {
	case w.Ready:
		c := w.Conditions
		glyph := icons.Display(icons.Glyphs{}, c.Icon)
		lines = append(lines,
			glyph+"  "+styles.Text.Bold(true).Render(c.Temperature)+"  "+styles.MutedText.Render(c.Description),
			styles.FaintText.Render("Humidity ")+styles.Text.Render(c.Humidity)+
				styles.FaintText.Render("   Wind ")+styles.Text.Render(c.Wind),
		)
		if m.iconURL != nil && m.width >= LayoutCompactWidth {
			lines = append(lines, styles.FaintText.Render(truncate(m.iconURL(c.Icon), width-4)))
		}
		if w.Loading {
			lines = append(lines, styles.WarningText.Render(m.spinner.View()+" Refreshing"))
		}
	case w.Loading:
		lines = append(lines, styles.WarningText.Render(m.spinner.View()+" Loading weather..."))
	case w.Error != "":
		lines = append(lines, styles.DangerText.Render(w.Error))
	default:
		lines = append(lines, styles.FaintText.Render("No data"))
	}
	return renderBox(m.theme, title, strings.Join(lines, "\n"), width, 0, false)
}

func (m Model) renderForecast(width int) string {
	styles := m.theme.Styles()
	days := m.screen.forecast
	if len(days) == 0 {
		return ""
	}
	if m.width < LayoutCompactWidth && len(days) > 3 {
		days = days[:3]
	}

	col := max(8, (width-4)/len(days))
	var labels, glyphs, highs, lows []string
	for _, d := range days {
		labels = append(labels, styles.AccentText.Render(padRight(d.Label, col)))
		glyphs = append(glyphs, padCell(icons.Display(icons.Glyphs{}, d.Icon), col))
		highs = append(highs, styles.High.Render(padRight(d.High, col)))
		lows = append(lows, styles.Low.Render(padRight(d.Low, col)))
	}
	content := strings.Join([]string{
		strings.Join(labels, ""),
		strings.Join(glyphs, ""),
		strings.Join(highs, ""),
		strings.Join(lows, ""),
	}, "\n")
	return renderBox(m.theme, fmt.Sprintf("%d-day forecast", len(days)), content, width, 0, false)
}

func (m Model) renderHourly() string {
	styles := m.theme.Styles()
	hours := m.screen.hourly
	if len(hours) == 0 {
		return ""
	}
	const col = 8
	fit := max(1, (m.width-4)/col)
	if len(hours) > fit {
		hours = hours[:fit]
	}

	var labels, glyphs, temps []string
	for _, h := range hours {
		labels = append(labels, styles.FaintText.Render(padRight(h.Label, col)))
		glyphs = append(glyphs, padCell(icons.Display(icons.Glyphs{}, h.Icon), col))
		temps = append(temps, styles.Text.Render(padRight(h.Temperature, col)))
	}
	content := strings.Join([]string{
		strings.Join(labels, ""),
		strings.Join(glyphs, ""),
		strings.Join(temps, ""),
	}, "\n")
	return renderBox(m.theme, "Next hours", content, m.width, 0, false)
}

// padCell pads by display width; emoji glyphs are wider than one rune.
func padCell(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
