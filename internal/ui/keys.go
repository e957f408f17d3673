package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the clock.
type keyMap struct {
	Quit          key.Binding
	Help          key.Binding
	CycleTheme    key.Binding
	ToggleSummary key.Binding
	ToggleLogs    key.Binding
	Close         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleSummary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Toggle summary"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Recent logs"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close overlay"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.CycleTheme, k.ToggleSummary, k.ToggleLogs, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CycleTheme, k.ToggleSummary},
		{k.ToggleLogs, k.Close},
		{k.Help, k.Quit},
	}
}
