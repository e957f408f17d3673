package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSections = []string{"Display", "Overlays", "General"}

// renderHelp renders the help overlay from the full key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	for i, group := range groups {
		if i < len(helpSections) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpSections[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			writeBinding(&b, binding, m.theme, styles)
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	modal := styles.Overlay.Width(40).Render(b.String())
	return m.overlay(modal)
}

func writeBinding(b *strings.Builder, binding key.Binding, theme Theme, styles Styles) {
	h := binding.Help()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Warning)).
		Width(12)
	b.WriteString(keyStyle.Render(h.Key))
	b.WriteString(styles.Text.Render(h.Desc))
	b.WriteString("\n")
}

// overlay centers content over the whole terminal.
func (m Model) overlay(content string) string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
