// Package anim provides frame-stepped transitions.
//
// A Timeline owns a set of Transitions and advances them when its owner calls
// Step, typically from an animation frame message. Nothing runs in the
// background, so every value change and completion callback happens on the
// caller's goroutine.
package anim

import (
	"fmt"
	"time"

	"github.com/five82/flipclock/internal/clock"
)

// Status describes where a transition is in its lifetime.
type Status int

const (
	// Running means the transition has not reached its end value.
	Running Status = iota
	// Completed means the transition reached To and its callback ran.
	Completed
	// Cancelled means the transition was removed before completing.
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Transition interpolates a value from From to To over Duration.
type Transition struct {
	From     float64
	To       float64
	Duration time.Duration
	Curve    Curve

	value  float64
	start  time.Time
	status Status
	done   func()
}

// Value returns the value as of the most recent Step.
func (t *Transition) Value() float64 { return t.value }

// Status reports the transition status.
func (t *Transition) Status() Status { return t.status }

// advance moves the transition to now and reports whether it finished.
func (t *Transition) advance(now time.Time) bool {
	if t.Duration <= 0 {
		t.value = t.To
		return true
	}
	progress := float64(now.Sub(t.start)) / float64(t.Duration)
	switch {
	case progress >= 1:
		progress = 1
	case progress < 0:
		progress = 0
	}
	eased := progress
	if t.Curve != nil {
		eased = t.Curve(progress)
	}
	t.value = t.From + (t.To-t.From)*eased
	return progress >= 1
}

// Timeline schedules transitions against a clock.
type Timeline struct {
	clk    clock.Clock
	active []*Transition
}

// NewTimeline returns an empty timeline reading time from clk. A nil clk
// uses the real clock.
func NewTimeline(clk clock.Clock) *Timeline {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Timeline{clk: clk}
}

// Start begins a transition from from to to. done runs from Step once the
// transition reaches to. A non-positive duration completes on the next Step.
func (tl *Timeline) Start(from, to float64, d time.Duration, curve Curve, done func()) *Transition {
	t := &Transition{
		From:     from,
		To:       to,
		Duration: d,
		Curve:    curve,
		value:    from,
		start:    tl.clk.Now(),
		done:     done,
	}
	tl.active = append(tl.active, t)
	return t
}

// Step advances every running transition to now. Finished transitions are
// removed before their callbacks run, so callbacks may start new transitions;
// those are first advanced by the next Step.
func (tl *Timeline) Step(now time.Time) {
	if len(tl.active) == 0 {
		return
	}
	current := tl.active
	tl.active = nil

	var finished []*Transition
	for _, t := range current {
		if t.advance(now) {
			t.status = Completed
			finished = append(finished, t)
			continue
		}
		tl.active = append(tl.active, t)
	}
	for _, t := range finished {
		if t.done != nil {
			t.done()
		}
	}
}

// Cancel removes t without running its callback.
func (tl *Timeline) Cancel(t *Transition) {
	for i, a := range tl.active {
		if a == t {
			tl.active = append(tl.active[:i], tl.active[i+1:]...)
			t.status = Cancelled
			return
		}
	}
}

// Active reports whether any transition is still running.
func (tl *Timeline) Active() bool { return len(tl.active) > 0 }

// Len returns the number of running transitions.
func (tl *Timeline) Len() int { return len(tl.active) }

// Now returns the timeline clock's current time.
func (tl *Timeline) Now() time.Time { return tl.clk.Now() }
