package ui

import "github.com/five82/nimbus/internal/units"

// renderHeader renders the one-line status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("nimbus", styles.Logo)}

	p := m.screen.units
	parts = append(parts, bg.Render(unitsLabel(p), styles.AccentText))

	w := m.screen.weather
	switch {
	case w.Loading:
		parts = append(parts, bg.Render(m.spinner.View()+" Loading", styles.WarningText))
	case w.Error != "":
		parts = append(parts, bg.Render("● "+w.Error, styles.DangerText))
	case w.Ready:
		parts = append(parts, bg.Render("● Live", styles.SuccessText))
	}

	if m.width >= LayoutCompactWidth && m.apiBase != "" {
		parts = append(parts,
			bg.Render("api", styles.FaintText)+bg.Space()+
				bg.Render(truncateMiddle(m.apiBase, 40), styles.MutedText))
	}
	parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func unitsLabel(p units.Preferences) string {
	return p.Temperature.Symbol() + " · " + p.Wind.Label()
}
