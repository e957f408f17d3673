// Package countdown implements the flip-clock countdown core: the time-delta
// calculator, the per-digit diff, the flip animation state machine and the
// periodic scheduler that ties them together.
//
// # Data Flow
//
//	tick ──> ComputeDelta ──> Render ──> Diff(previous, next) ──> Animator.Apply
//	                                                                   │
//	                                                                   └──> Cell (presentation)
//
// A Countdown owns the target instant and the canonical DigitState. Each tick
// samples the clock once; when the target has been reached the countdown
// moves to Expired, cancels its periodic handle and performs no digit work.
// Otherwise it recomputes the digits, feeds only the changed slots to the
// Animator and republishes the summary string if its text changed.
//
// # Units and Slots
//
// Three units (Day, Hour, Minute) are shown with two character cells each,
// giving six Slots. Day counts above 99 saturate the display at "99"; the
// summary carries the exact count.
//
// # Flip Animation
//
// Every slot runs the cycle
//
//	Idle ──> FlippingTop ──> FlippingBottom ──> Idle
//
// The Animator never draws anything itself. It drives a Cell supplied by a
// Builder: FlipTop and FlipBottom start timed rotations and call their
// continuation on completion, and the top half always completes before the
// bottom half begins. A change that reaches a slot mid-flip is handled by the
// configured Policy:
//
//   - PolicyCoalesce (default): the newest character waits and is flipped to
//     once the running cycle finishes.
//   - PolicyOverlap: a new cycle starts at once, racing the running one.
//
// # Construction Input
//
// ParseInput validates raw input before anything is rendered:
//
//   - target unparseable (or bad cron schedule): ErrInvalidDate
//   - target not strictly in the future: ErrAlreadyPassed
//   - label count other than three: ErrInvalidTimeFormat
//
// # Concurrency
//
// Countdown is single-threaded. Either call Tick from one loop (the TUI's
// update loop does this) or call Start, whose goroutine then owns it.
package countdown
