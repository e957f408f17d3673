package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flipclock/internal/logger"
)

const logOverlayLines = 15

// renderLogs renders the most recent log entries in an overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Recent Logs"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	entries := logger.Tail(logOverlayLines)
	if len(entries) == 0 {
		b.WriteString(styles.MutedText.Render("No log entries yet"))
	}
	for i, e := range entries {
		b.WriteString(styles.FaintText.Render(e.Timestamp))
		b.WriteString(" ")
		b.WriteString(levelStyle(e.Level, styles).Render(string(e.Level)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(e.Message))
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}

	width := max(40, min(100, m.width-4))
	return m.overlay(styles.Overlay.Width(width).Render(b.String()))
}

func levelStyle(level logger.LogLevel, styles Styles) lipgloss.Style {
	switch level {
	case logger.Error:
		return styles.DangerText
	case logger.Warn:
		return styles.WarningText
	case logger.Debug:
		return styles.FaintText
	default:
		return styles.AccentText
	}
}
