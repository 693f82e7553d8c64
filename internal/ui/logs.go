package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/nimbus/internal/logtail"
)

// logLevels is the filter cycle for the overlay; "" shows everything.
var logLevels = []string{"", "INFO", "WARN", "ERROR"}

// logState holds the log overlay state.
type logState struct {
	open     bool
	follow   bool
	levelIdx int
	raw      []string
	entries  []logtail.Entry
	err      error
	loadedAt time.Time
	// seq identifies the refresh tick chain of the current opening.
	seq int
}

func newLogState() logState {
	return logState{follow: true}
}

func (s logState) level() string {
	return logLevels[s.levelIdx%len(logLevels)]
}

func (m Model) openLogs() (Model, tea.Cmd) {
	m.logs.open = true
	m.logs.seq++
	m.resizeLogViewport()
	return m, tea.Batch(m.loadLogs(), logTickCmd(m.logs.seq))
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape, m.keys.Logs, m.keys.QuitLetter):
		m.logs.open = false
		return m, nil
	case key.Matches(msg, m.keys.CycleLevel):
		m.logs.levelIdx = (m.logs.levelIdx + 1) % len(logLevels)
		m.applyLogFilter()
		return m, nil
	case key.Matches(msg, m.keys.Follow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logViewport.GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	if !m.logViewport.AtBottom() {
		m.logs.follow = false
	}
	return m, cmd
}

// loadLogs reads the tail of the log file off the event loop.
func (m Model) loadLogs() tea.Cmd {
	path := m.logPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logsLoadedMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogsLoaded(msg logsLoadedMsg) {
	m.logs.loadedAt = time.Now()
	m.logs.err = msg.err
	if msg.err != nil {
		return
	}
	m.logs.raw = msg.lines
	m.applyLogFilter()
}

func (m *Model) applyLogFilter() {
	m.logs.entries = logtail.Filter(m.logs.raw, m.logs.level())
	m.logViewport.SetContent(m.renderLogContent())
	if m.logs.follow {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) resizeLogViewport() {
	w, h := max(10, m.width-4), max(3, m.height-4)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(w, h)
	}
	m.logViewport.Width = w
	m.logViewport.Height = h
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	if len(m.logs.entries) == 0 {
		return styles.FaintText.Render("No log entries")
	}
	lines := make([]string, 0, len(m.logs.entries))
	for _, e := range m.logs.entries {
		if e.Level == "" {
			lines = append(lines, styles.FaintText.Render(e.Raw))
			continue
		}
		ts := e.Time
		if t, err := time.Parse(time.RFC3339, e.Time); err == nil {
			ts = t.Local().Format("15:04:05")
		}
		line := styles.FaintText.Render(ts) + " " +
			styles.LevelStyle(e.Level).Render(padRight(e.Level, 5)) + " " +
			styles.Text.Render(e.Message)
		if e.Fields != "" {
			line += " " + styles.MutedText.Render(e.Fields)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderLogs draws the overlay: a bordered viewport and a status line.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := "Log"
	if lvl := m.logs.level(); lvl != "" {
		title = fmt.Sprintf("Log (%s+)", lvl)
	}
	box := renderBox(m.theme, title, m.logViewport.View(), m.width, m.height-1, true)

	bg := NewBgStyle(m.theme.Surface)
	follow := "off"
	if m.logs.follow {
		follow = "on"
	}
	parts := []string{
		bg.Render(truncateMiddle(m.logPath, 50), styles.MutedText),
		bg.Render(fmt.Sprintf("%d lines", len(m.logs.entries)), styles.FaintText),
		bg.Render("follow "+follow, styles.FaintText),
	}
	if !m.logs.loadedAt.IsZero() {
		parts = append(parts, bg.Render("read "+m.logs.loadedAt.Format("15:04:05"), styles.FaintText))
	}
	if m.logs.err != nil {
		parts = append(parts, bg.Render(m.logs.err.Error(), styles.DangerText))
	}
	parts = append(parts, bg.Render("f level · space follow · esc close", styles.FaintText))
	status := bg.FillLine(bg.Join(parts, "  "), m.width)
	return box + "\n" + status
}

// renderBox draws content inside a rounded border with a title in the top
// edge. focused selects the accent border.
func renderBox(theme Theme, title, content string, width, height int, focused bool) string {
	border := theme.Border
	if focused {
		border = theme.BorderFocus
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(max(0, width-2))
	if height > 2 {
		style = style.Height(height - 2)
	}
	box := style.Render(content)
	if title == "" {
		return box
	}

	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent)).
		Bold(true).
		Render(" " + title + " ")
	lines := strings.SplitN(box, "\n", 2)
	top := lipgloss.NewStyle().Foreground(lipgloss.Color(border)).Render("╭─") + label
	fill := width - lipgloss.Width(top) - 1
	if fill < 0 {
		return box
	}
	top += lipgloss.NewStyle().Foreground(lipgloss.Color(border)).Render(strings.Repeat("─", fill) + "╮")
	if len(lines) == 1 {
		return top
	}
	return top + "\n" + lines[1]
}

// Messages

type logsLoadedMsg struct {
	lines []string
	err   error
}

type logTickMsg struct {
	seq int
}

func logTickCmd(seq int) tea.Cmd {
	return tea.Tick(LogRefreshInterval, func(time.Time) tea.Msg {
		return logTickMsg{seq: seq}
	})
}
