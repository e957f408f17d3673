package countdown

import "fmt"

// Phase is the animation state of one slot.
//
//	        change           top done             bottom done
//	Idle ──────────► FlippingTop ──────────► FlippingBottom ──────────► Idle
type Phase int

const (
	Idle Phase = iota
	FlippingTop
	FlippingBottom
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FlippingTop:
		return "flipping-top"
	case FlippingBottom:
		return "flipping-bottom"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Cell is a presentation handle for one digit card. The static top and bottom
// halves hold the resting characters; the flips are transient overlays.
//
// FlipTop rotates a snapshot of from away from the viewer (0° to -90°) and
// FlipBottom rotates to into view (90° to 0°). Each calls done once the
// rotation completes. done may be invoked synchronously.
type Cell interface {
	Top() byte
	SetTop(ch byte)
	SetBottom(ch byte)
	FlipTop(from byte, done func())
	FlipBottom(to byte, done func())
}

// Builder creates the cells a countdown animates.
type Builder interface {
	BuildCell(slot Slot, initial byte) Cell
}

// Policy decides what happens when a change reaches a slot that is still
// flipping.
type Policy int

const (
	// PolicyCoalesce keeps the newest change as pending and flips to it once
	// the current cycle has finished.
	PolicyCoalesce Policy = iota
	// PolicyOverlap starts a new cycle immediately. Earlier cycles keep
	// running and still commit their bottom character.
	PolicyOverlap
)

func (p Policy) String() string {
	if p == PolicyOverlap {
		return "overlap"
	}
	return "coalesce"
}

// ParsePolicy maps a config value onto a Policy. Empty means coalesce.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "coalesce":
		return PolicyCoalesce, nil
	case "overlap":
		return PolicyOverlap, nil
	}
	return PolicyCoalesce, fmt.Errorf("unknown flip policy %q", s)
}

type slotState struct {
	phase      Phase
	gen        uint64
	pending    byte
	hasPending bool
}

// Animator runs the flip state machine for every slot.
type Animator struct {
	cells  [len(Units)][len(Positions)]Cell
	slots  [len(Units)][len(Positions)]slotState
	policy Policy

	// OnFlip, when set, is called each time a slot starts a flip cycle.
	OnFlip func(slot Slot, ch byte)
}

// NewAnimator builds the six cells from b, seeded with initial.
func NewAnimator(b Builder, initial DigitState, policy Policy) *Animator {
	a := &Animator{policy: policy}
	for _, u := range Units {
		for _, p := range Positions {
			slot := Slot{Unit: u, Pos: p}
			a.cells[u][p] = b.BuildCell(slot, initial.At(slot))
		}
	}
	return a
}

// Phase reports the current phase of slot.
func (a *Animator) Phase(slot Slot) Phase {
	return a.slots[slot.Unit][slot.Pos].phase
}

// Busy reports whether any slot is mid-flip.
func (a *Animator) Busy() bool {
	for _, u := range Units {
		for _, p := range Positions {
			if a.slots[u][p].phase != Idle {
				return true
			}
		}
	}
	return false
}

// Apply feeds one diff event into the slot's state machine.
func (a *Animator) Apply(c Change) {
	st := &a.slots[c.Slot.Unit][c.Slot.Pos]
	if st.phase != Idle && a.policy == PolicyCoalesce {
		st.pending = c.Char
		st.hasPending = true
		return
	}
	a.begin(c.Slot, c.Char)
}

func (a *Animator) begin(slot Slot, ch byte) {
	st := &a.slots[slot.Unit][slot.Pos]
	cell := a.cells[slot.Unit][slot.Pos]

	st.gen++
	gen := st.gen
	st.phase = FlippingTop
	if a.OnFlip != nil {
		a.OnFlip(slot, ch)
	}

	from := cell.Top()
	cell.SetTop(ch)
	cell.FlipTop(from, func() { a.topDone(slot, gen, ch) })
}

func (a *Animator) topDone(slot Slot, gen uint64, ch byte) {
	st := &a.slots[slot.Unit][slot.Pos]
	if st.gen == gen {
		st.phase = FlippingBottom
	}
	a.cells[slot.Unit][slot.Pos].FlipBottom(ch, func() { a.bottomDone(slot, gen, ch) })
}

func (a *Animator) bottomDone(slot Slot, gen uint64, ch byte) {
	st := &a.slots[slot.Unit][slot.Pos]
	a.cells[slot.Unit][slot.Pos].SetBottom(ch)
	if st.gen != gen {
		return
	}
	st.phase = Idle

	if !st.hasPending {
		return
	}
	next := st.pending
	st.pending, st.hasPending = 0, false
	if next != ch {
		a.begin(slot, next)
	}
}
