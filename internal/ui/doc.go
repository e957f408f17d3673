// Package ui provides the terminal flip clock for flipclock.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns the countdown and drives it from
// tickMsg, so every countdown call and every cell callback happens on the
// program goroutine. Digit cards are flipCells created by Builder, which
// implements countdown.Builder on top of a shared anim.Timeline.
//
// # Package Structure
//
//   - app.go: Model, Options, message handling and Run
//   - cell.go: flipCell and Builder, the animated countdown.Cell
//   - render.go: card, unit and clock face rendering
//   - glyphs.go: six-row block font for the digits
//   - theme.go: color themes and Lipgloss styles
//   - keys.go: key bindings, shown in the footer and help overlay
//   - help.go, logs.go: overlays
//
// # Flip Rendering
//
// Each card is a 6-row glyph split at the hinge into a 3-row upper and lower
// half. A flip runs in two rotations. The upper flap carries the departing
// character and folds from flat (0°) to edge-on (90°); the lower flap
// carries the arriving character and unfolds from 90° back to flat. A flap
// at angle θ covers round(cos θ · 3) rows next to the hinge.
//
// # Frames
//
// Frames are only scheduled while the timeline has running transitions. A
// tick that starts a flip also starts framing at about 30 fps, and framing
// stops on the first frame after the last transition completes.
//
// # Key Bindings
//
//   - q/ctrl+c: Quit
//   - ?: Toggle help
//   - T: Cycle theme (saved to preferences)
//   - s: Toggle the spoken summary line (saved to preferences)
//   - L: Toggle the recent logs overlay
package ui
