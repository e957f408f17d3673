package ui

import (
	"math"
	"time"

	"github.com/five82/flipclock/internal/anim"
	"github.com/five82/flipclock/internal/clock"
	"github.com/five82/flipclock/internal/countdown"
)

// Flap angles in degrees. 0 is flat against the card, 90 is edge-on.
const (
	flatAngle   = 0
	edgeOnAngle = 90
)

// flap is a half card in motion. ch is the character printed on it.
type flap struct {
	ch byte
	tr *anim.Transition
}

// angle returns the current rotation in degrees.
func (f *flap) angle() float64 { return f.tr.Value() }

// flipCell is one digit card on screen.
type flipCell struct {
	slot  countdown.Slot
	tl    *anim.Timeline
	dur   time.Duration
	curve anim.Curve

	top    byte
	bottom byte

	topFlap    *flap
	bottomFlap *flap
}

func (c *flipCell) Top() byte         { return c.top }
func (c *flipCell) SetTop(ch byte)    { c.top = ch }
func (c *flipCell) SetBottom(ch byte) { c.bottom = ch }

// Bottom returns the resting character of the lower half.
func (c *flipCell) Bottom() byte { return c.bottom }

// Flipping reports whether either half is in motion.
func (c *flipCell) Flipping() bool { return c.topFlap != nil || c.bottomFlap != nil }

// FlipTop folds the departing top half down to the hinge.
func (c *flipCell) FlipTop(from byte, done func()) {
	if c.dur <= 0 {
		done()
		return
	}
	f := &flap{ch: from}
	f.tr = c.tl.Start(flatAngle, edgeOnAngle, c.dur, c.curve, func() {
		if c.topFlap == f {
			c.topFlap = nil
		}
		done()
	})
	c.topFlap = f
}

// FlipBottom unfolds the arriving bottom half from the hinge.
func (c *flipCell) FlipBottom(to byte, done func()) {
	if c.dur <= 0 {
		done()
		return
	}
	f := &flap{ch: to}
	f.tr = c.tl.Start(edgeOnAngle, flatAngle, c.dur, c.curve, func() {
		if c.bottomFlap == f {
			c.bottomFlap = nil
		}
		done()
	})
	c.bottomFlap = f
}

// coverage is the number of half-card rows a flap at angle degrees covers.
func coverage(angle float64) int {
	k := int(math.Round(math.Cos(angle*math.Pi/180) * halfRows))
	return max(0, min(halfRows, k))
}

// Builder creates flip cells that animate on a shared timeline.
type Builder struct {
	tl    *anim.Timeline
	dur   time.Duration
	curve anim.Curve
	cells map[countdown.Slot]*flipCell
}

// NewBuilder returns a Builder whose cells flip each half over dur. A
// non-positive dur makes flips complete immediately.
func NewBuilder(clk clock.Clock, dur time.Duration, curve anim.Curve) *Builder {
	if curve == nil {
		curve = anim.Linear
	}
	return &Builder{
		tl:    anim.NewTimeline(clk),
		dur:   dur,
		curve: curve,
		cells: make(map[countdown.Slot]*flipCell),
	}
}

// BuildCell implements countdown.Builder.
func (b *Builder) BuildCell(slot countdown.Slot, initial byte) countdown.Cell {
	c := &flipCell{
		slot:   slot,
		tl:     b.tl,
		dur:    b.dur,
		curve:  b.curve,
		top:    initial,
		bottom: initial,
	}
	b.cells[slot] = c
	return c
}

// Timeline returns the timeline driving every cell.
func (b *Builder) Timeline() *anim.Timeline { return b.tl }

func (b *Builder) cell(slot countdown.Slot) *flipCell { return b.cells[slot] }
