package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flipclock/internal/clock"
	"github.com/five82/flipclock/internal/countdown"
	"github.com/five82/flipclock/internal/logger"
	"github.com/five82/flipclock/internal/prefs"
)

// frameInterval paces animation frames while a flip is running.
const frameInterval = time.Second / 30

// Options configures the UI.
type Options struct {
	Context context.Context

	// Countdown must have been built with Builder.
	Countdown    *countdown.Countdown
	Builder      *Builder
	Clock        clock.Clock
	Tick         time.Duration
	ExitOnExpire bool
	ThemeName    string
	HideSummary  bool
	PrefsPath    string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	countdown    *countdown.Countdown
	builder      *Builder
	clock        clock.Clock
	tick         time.Duration
	exitOnExpire bool
	prefsPath    string

	// UI state
	theme       Theme
	keys        keyMap
	help        help.Model
	width       int
	height      int
	ready       bool
	hideSummary bool
	showHelp    bool
	showLogs    bool

	// Countdown state
	expired bool
	framing bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = countdown.DefaultTick
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		countdown:    opts.Countdown,
		builder:      opts.Builder,
		clock:        clk,
		tick:         tick,
		exitOnExpire: opts.ExitOnExpire,
		prefsPath:    prefsPath,
		theme:        GetTheme(themeName),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		hideSummary:  opts.HideSummary,
		expired:      opts.Countdown.State() == countdown.Expired,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.tick),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case frameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showLogs {
		return m.renderLogs()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Close):
		m.showLogs = false

	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = !m.showLogs

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.ToggleSummary):
		m.hideSummary = !m.hideSummary
		m.savePrefs()
	}

	return m, nil
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, HideSummary: m.hideSummary}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		logger.Warnf("Failed to save preferences: %v", err)
	}
}

// handleTick advances the countdown and starts framing when a flip began.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.expired {
		return m, nil
	}

	if !m.countdown.Tick(m.clock.Now()) {
		m.expired = true
		if m.exitOnExpire {
			return m, tea.Quit
		}
		return m, nil
	}

	cmds := []tea.Cmd{tickCmd(m.tick)}
	if !m.framing && m.builder.Timeline().Active() {
		m.framing = true
		cmds = append(cmds, frameCmd())
	}
	return m, tea.Batch(cmds...)
}

// handleFrame steps every running flip. Framing stops once nothing moves.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	tl := m.builder.Timeline()
	tl.Step(m.clock.Now())
	if tl.Active() {
		return m, frameCmd()
	}
	m.framing = false
	return m, nil
}

// renderMain renders the clock face, or the expired panel.
func (m Model) renderMain() string {
	styles := m.theme.Styles()

	var body string
	if m.expired {
		body = m.renderExpired(styles)
	} else {
		body = m.renderClock(styles)
	}

	footer := styles.Footer.Render(m.help.View(m.keys))
	height := max(0, m.height-lipgloss.Height(footer))

	content := lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, body)
	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}

func (m Model) renderClock(styles Styles) string {
	parts := make([]string, 0, 3)
	if caption := m.countdown.Caption(); caption != "" {
		parts = append(parts, styles.Caption.Render(caption), "")
	}
	parts = append(parts, renderFace(m.builder, m.countdown.Labels(), styles))
	if !m.hideSummary {
		parts = append(parts, "", styles.Summary.Render(m.countdown.Summary()))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) renderExpired(styles Styles) string {
	var b strings.Builder
	caption := m.countdown.Caption()
	if caption == "" {
		caption = "Countdown"
	}
	b.WriteString(styles.Caption.Render(caption))
	b.WriteString("\n\n")
	b.WriteString(styles.SuccessText.Render("Expired"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(m.countdown.Target().Local().Format(time.RFC1123)))
	return styles.Overlay.Align(lipgloss.Center).Render(b.String())
}

// Messages

type tickMsg time.Time

type frameMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits or
// opts.Context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
