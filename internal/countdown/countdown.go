package countdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a Countdown.
type State int

const (
	Active State = iota
	Expired
)

func (s State) String() string {
	if s == Expired {
		return "expired"
	}
	return "active"
}

// Snapshot is a read-only copy of a countdown's observable state.
type Snapshot struct {
	ID      string
	Caption string
	Target  time.Time
	State   State
	Delta   Delta
	Digits  DigitState
	Summary string
	At      time.Time
}

// Hooks are optional callbacks fired on the ticking goroutine.
type Hooks struct {
	// OnSummary fires with the initial summary and whenever it changes.
	OnSummary func(summary string)
	// OnTick fires after every non-expiring tick.
	OnTick func(Snapshot)
	// OnFlip fires when a slot starts a flip cycle.
	OnFlip func(slot Slot, ch byte)
	// OnExpire fires once, on the tick that reaches the target.
	OnExpire func(Snapshot)
}

// Countdown counts down to a fixed target. It is not safe for concurrent
// use; every call must come from the goroutine that drives ticks.
type Countdown struct {
	id       string
	opts     Options
	state    State
	delta    Delta
	digits   DigitState
	summary  string
	lastTick time.Time
	animator *Animator
	hooks    Hooks
	cancel   func()
}

// New validates opts against now, builds the six digit cells and publishes
// the initial summary.
func New(opts Options, now time.Time, b Builder, hooks Hooks) (*Countdown, error) {
	if !opts.Target.After(now) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPassed, opts.Target.Format(time.RFC1123))
	}

	c := &Countdown{
		id:       uuid.NewString(),
		opts:     opts,
		state:    Active,
		lastTick: now,
		hooks:    hooks,
	}
	c.delta = ComputeDelta(opts.Target, now)
	c.digits = Render(c.delta)
	c.summary = c.describe(c.delta)

	c.animator = NewAnimator(b, c.digits, opts.Policy)
	c.animator.OnFlip = hooks.OnFlip

	if hooks.OnSummary != nil {
		hooks.OnSummary(c.summary)
	}
	return c, nil
}

// Tick samples now once. It reports whether the countdown is still active.
func (c *Countdown) Tick(now time.Time) bool {
	if c.state == Expired {
		return false
	}
	c.lastTick = now
	if !now.Before(c.opts.Target) {
		c.expire()
		return false
	}

	c.delta = ComputeDelta(c.opts.Target, now)
	next := Render(c.delta)
	for _, change := range Diff(c.digits, next) {
		c.animator.Apply(change)
	}
	c.digits = next

	if summary := c.describe(c.delta); summary != c.summary {
		c.summary = summary
		if c.hooks.OnSummary != nil {
			c.hooks.OnSummary(summary)
		}
	}
	if c.hooks.OnTick != nil {
		c.hooks.OnTick(c.Snapshot())
	}
	return true
}

func (c *Countdown) expire() {
	c.state = Expired
	if c.cancel != nil {
		cancel := c.cancel
		c.cancel = nil
		cancel()
	}
	if c.hooks.OnExpire != nil {
		c.hooks.OnExpire(c.Snapshot())
	}
}

// describe builds the accessibility summary, e.g. "0 days 1 hours 29 minutes".
func (c *Countdown) describe(d Delta) string {
	parts := make([]string, 0, len(Units))
	for _, u := range Units {
		parts = append(parts, fmt.Sprintf("%d %s", d.Count(u), c.opts.Labels[u]))
	}
	return strings.Join(parts, " ")
}

// ID returns the instance identifier used in logs and snapshots.
func (c *Countdown) ID() string { return c.id }

func (c *Countdown) State() State { return c.state }
func (c *Countdown) Target() time.Time { return c.opts.Target }
func (c *Countdown) Caption() string { return c.opts.Caption }
func (c *Countdown) Labels() [len(Units)]string { return c.opts.Labels }
func (c *Countdown) Delta() Delta { return c.delta }
func (c *Countdown) Digits() DigitState { return c.digits }
func (c *Countdown) Summary() string { return c.summary }
func (c *Countdown) Phase(s Slot) Phase { return c.animator.Phase(s) }
func (c *Countdown) Animating() bool { return c.animator.Busy() }
func (c *Countdown) Policy() Policy { return c.opts.Policy }

// Snapshot copies the observable state.
func (c *Countdown) Snapshot() Snapshot {
	return Snapshot{
		ID:      c.id,
		Caption: c.opts.Caption,
		Target:  c.opts.Target,
		State:   c.state,
		Delta:   c.delta,
		Digits:  c.digits,
		Summary: c.summary,
		At:      c.lastTick,
	}
}
