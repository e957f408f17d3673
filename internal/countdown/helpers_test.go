package countdown

import "fmt"

// recordingCell implements Cell and keeps pending continuations so tests can
// step through a flip by hand. With instant set, flips complete immediately.
type recordingCell struct {
	slot    Slot
	top     byte
	bottom  byte
	instant bool

	events        []string
	pendingTop    []func()
	pendingBottom []func()
}

func (c *recordingCell) Top() byte { return c.top }

func (c *recordingCell) SetTop(ch byte) {
	c.top = ch
	c.events = append(c.events, fmt.Sprintf("top=%c", ch))
}

func (c *recordingCell) SetBottom(ch byte) {
	c.bottom = ch
	c.events = append(c.events, fmt.Sprintf("bottom=%c", ch))
}

func (c *recordingCell) FlipTop(from byte, done func()) {
	c.events = append(c.events, fmt.Sprintf("flip-top(%c)", from))
	if c.instant {
		done()
		return
	}
	c.pendingTop = append(c.pendingTop, done)
}

func (c *recordingCell) FlipBottom(to byte, done func()) {
	c.events = append(c.events, fmt.Sprintf("flip-bottom(%c)", to))
	if c.instant {
		done()
		return
	}
	c.pendingBottom = append(c.pendingBottom, done)
}

// finishTop completes the oldest in-flight top rotation.
func (c *recordingCell) finishTop() {
	done := c.pendingTop[0]
	c.pendingTop = c.pendingTop[1:]
	done()
}

// finishBottom completes the oldest in-flight bottom rotation.
func (c *recordingCell) finishBottom() {
	done := c.pendingBottom[0]
	c.pendingBottom = c.pendingBottom[1:]
	done()
}

type recordingBuilder struct {
	instant bool
	cells   map[Slot]*recordingCell
}

func newRecordingBuilder(instant bool) *recordingBuilder {
	return &recordingBuilder{instant: instant, cells: make(map[Slot]*recordingCell)}
}

func (b *recordingBuilder) BuildCell(slot Slot, initial byte) Cell {
	c := &recordingCell{slot: slot, top: initial, bottom: initial, instant: b.instant}
	b.cells[slot] = c
	return c
}

func (b *recordingBuilder) cell(u Unit, p Position) *recordingCell {
	return b.cells[Slot{Unit: u, Pos: p}]
}

// eventCount sums recorded events across every cell.
func (b *recordingBuilder) eventCount() int {
	n := 0
	for _, c := range b.cells {
		n += len(c.events)
	}
	return n
}
