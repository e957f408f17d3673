package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flipclock/internal/countdown"
)

const (
	cardGap  = 1
	groupGap = 3
)

// cardRow is one printed row of a card half.
type cardRow struct {
	text string
	flap bool
}

// topRows returns the upper half of c. The resting top already shows the new
// character; a top flap covers the rows next to the hinge with the departing
// character's upper half, squashed to fit.
func (c *flipCell) topRows() [halfRows]cardRow {
	var rows [halfRows]cardRow
	g := glyphFor(c.top)
	for r := range rows {
		rows[r] = cardRow{text: g[r]}
	}
	if f := c.topFlap; f != nil {
		k := coverage(f.angle())
		fg := glyphFor(f.ch)
		for i := 0; i < k; i++ {
			rows[halfRows-k+i] = cardRow{text: fg[i*halfRows/k], flap: true}
		}
	}
	return rows
}

// bottomRows returns the lower half of c. The resting bottom shows the old
// character until the bottom flap, carrying the new character's lower half,
// has fully unfolded.
func (c *flipCell) bottomRows() [halfRows]cardRow {
	var rows [halfRows]cardRow
	g := glyphFor(c.bottom)
	for r := range rows {
		rows[r] = cardRow{text: g[halfRows+r]}
	}
	if f := c.bottomFlap; f != nil {
		k := coverage(f.angle())
		fg := glyphFor(f.ch)
		for i := 0; i < k; i++ {
			rows[i] = cardRow{text: fg[halfRows+i*halfRows/k], flap: true}
		}
	}
	return rows
}

// renderCard draws one card: upper half, hinge, lower half.
func renderCard(c *flipCell, styles Styles) string {
	lines := make([]string, 0, glyphRows+1)
	for _, row := range c.topRows() {
		lines = append(lines, paintRow(row, styles.CardTop, styles))
	}
	lines = append(lines, styles.Hinge.Render(strings.Repeat("─", cardWidth)))
	for _, row := range c.bottomRows() {
		lines = append(lines, paintRow(row, styles.CardBottom, styles))
	}
	return strings.Join(lines, "\n")
}

func paintRow(row cardRow, base lipgloss.Style, styles Styles) string {
	style := base
	if row.flap {
		style = styles.Flap
	}
	return style.Render(" " + row.text + " ")
}

// renderUnit draws a label centered over the unit's two cards.
func renderUnit(b *Builder, unit countdown.Unit, label string, styles Styles) string {
	cards := make([]string, 0, len(countdown.Positions)*2)
	for i, p := range countdown.Positions {
		if i > 0 {
			cards = append(cards, strings.Repeat(" ", cardGap))
		}
		cards = append(cards, renderCard(b.cell(countdown.Slot{Unit: unit, Pos: p}), styles))
	}
	face := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	width := lipgloss.Width(face)
	head := styles.Label.Width(width).Align(lipgloss.Center).Render(label)
	return lipgloss.JoinVertical(lipgloss.Center, head, face)
}

// renderFace draws all three units side by side.
func renderFace(b *Builder, labels [len(countdown.Units)]string, styles Styles) string {
	groups := make([]string, 0, len(countdown.Units)*2)
	for i, u := range countdown.Units {
		if i > 0 {
			groups = append(groups, strings.Repeat(" ", groupGap))
		}
		groups = append(groups, renderUnit(b, u, labels[u], styles))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, groups...)
}
