package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// helpModal lists the key bindings. Any key closes it.
type helpModal struct {
	sections []helpSection
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func newHelpModal(k keyMap) helpModal {
	groups := k.FullHelp()
	titles := []string{"Search", "Favorites", "Weather", "General"}
	sections := make([]helpSection, 0, len(groups))
	for i, g := range groups {
		sections = append(sections, helpSection{title: titles[i], bindings: g})
	}
	return helpModal{sections: sections}
}

func (h helpModal) Update(msg tea.Msg, _ keyMap) (Modal, tea.Cmd, bool) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return h, nil, true
	}
	return h, nil, false
}

func (h helpModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Warning)).
		Width(12)
	for i, section := range h.sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			hb := binding.Help()
			b.WriteString(keyStyle.Render(hb.Key))
			b.WriteString(styles.Text.Render(hb.Desc))
			b.WriteString("\n")
		}
		if i < len(h.sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(40)

	return overlay(theme, width, height, modal.Render(b.String()))
}
