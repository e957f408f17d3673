package ui

import (
	"testing"
	"time"

	"github.com/five82/flipclock/internal/anim"
	"github.com/five82/flipclock/internal/clock"
	"github.com/five82/flipclock/internal/countdown"
)

var testEpoch = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func newTestCell(t *testing.T, dur time.Duration) (*flipCell, *Builder, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(testEpoch)
	b := NewBuilder(fake, dur, anim.Linear)
	slot := countdown.Slot{Unit: countdown.Minute, Pos: countdown.Ones}
	b.BuildCell(slot, '1')
	return b.cell(slot), b, fake
}

func TestCoverage(t *testing.T) {
	tests := []struct {
		angle float64
		want  int
	}{
		{0, 3},
		{30, 3},
		{45, 2},
		{60, 2},
		{75, 1},
		{85, 0},
		{90, 0},
	}
	for _, tt := range tests {
		if got := coverage(tt.angle); got != tt.want {
			t.Fatalf("coverage(%v) = %d, want %d", tt.angle, got, tt.want)
		}
	}
}

func TestFlipCell_ZeroDurationCompletesSynchronously(t *testing.T) {
	c, b, _ := newTestCell(t, 0)

	called := 0
	c.FlipTop('1', func() { called++ })
	c.FlipBottom('0', func() { called++ })

	if called != 2 {
		t.Fatalf("done calls = %d, want 2", called)
	}
	if c.Flipping() || b.Timeline().Active() {
		t.Fatal("zero duration flip left a transition running")
	}
}

func TestFlipCell_TopFlapFoldsToHinge(t *testing.T) {
	c, b, fake := newTestCell(t, 500*time.Millisecond)
	tl := b.Timeline()

	c.SetTop('0')
	done := false
	c.FlipTop('1', func() { done = true })

	departing := glyphFor('1')
	arriving := glyphFor('0')

	tl.Step(fake.Now())
	rows := c.topRows()
	for i, row := range rows {
		if !row.flap || row.text != departing[i] {
			t.Fatalf("row %d = %+v, want the departing flap row %q", i, row, departing[i])
		}
	}

	fake.Advance(250 * time.Millisecond)
	tl.Step(fake.Now())
	rows = c.topRows()
	if rows[0].flap || rows[0].text != arriving[0] {
		t.Fatalf("row 0 = %+v, want the resting top %q", rows[0], arriving[0])
	}
	if !rows[1].flap || rows[1].text != departing[0] {
		t.Fatalf("row 1 = %+v, want squashed flap row %q", rows[1], departing[0])
	}
	if !rows[2].flap || rows[2].text != departing[1] {
		t.Fatalf("row 2 = %+v, want squashed flap row %q", rows[2], departing[1])
	}

	fake.Advance(250 * time.Millisecond)
	tl.Step(fake.Now())
	if !done {
		t.Fatal("FlipTop done was not called")
	}
	if c.topFlap != nil {
		t.Fatal("top flap still set after completion")
	}
	for i, row := range c.topRows() {
		if row.flap || row.text != arriving[i] {
			t.Fatalf("row %d = %+v, want resting %q", i, row, arriving[i])
		}
	}
}

func TestFlipCell_BottomFlapUnfoldsFromHinge(t *testing.T) {
	c, b, fake := newTestCell(t, 500*time.Millisecond)
	tl := b.Timeline()

	done := false
	c.FlipBottom('0', func() { done = true })

	old := glyphFor('1')
	arriving := glyphFor('0')

	tl.Step(fake.Now())
	for i, row := range c.bottomRows() {
		if row.flap || row.text != old[halfRows+i] {
			t.Fatalf("row %d = %+v, want the old bottom %q", i, row, old[halfRows+i])
		}
	}

	fake.Advance(250 * time.Millisecond)
	tl.Step(fake.Now())
	rows := c.bottomRows()
	if !rows[0].flap || rows[0].text != arriving[halfRows] {
		t.Fatalf("row 0 = %+v, want flap row %q", rows[0], arriving[halfRows])
	}
	if !rows[1].flap || rows[1].text != arriving[halfRows+1] {
		t.Fatalf("row 1 = %+v, want flap row %q", rows[1], arriving[halfRows+1])
	}
	if rows[2].flap || rows[2].text != old[halfRows+2] {
		t.Fatalf("row 2 = %+v, want the old bottom %q", rows[2], old[halfRows+2])
	}

	fake.Advance(250 * time.Millisecond)
	tl.Step(fake.Now())
	if !done {
		t.Fatal("FlipBottom done was not called")
	}
	if c.bottomFlap != nil {
		t.Fatal("bottom flap still set after completion")
	}
}

func TestFlipCell_NewerFlapSurvivesOlderCompletion(t *testing.T) {
	c, b, fake := newTestCell(t, 500*time.Millisecond)
	tl := b.Timeline()

	c.FlipTop('1', func() {})
	fake.Advance(250 * time.Millisecond)
	c.FlipTop('2', func() {})
	newer := c.topFlap

	fake.Advance(250 * time.Millisecond)
	tl.Step(fake.Now())
	if c.topFlap != newer {
		t.Fatal("completion of the first flap cleared the newer one")
	}
}

func TestBuilder_DrivesCountdownFlip(t *testing.T) {
	fake := clock.NewFake(testEpoch)
	b := NewBuilder(fake, 500*time.Millisecond, anim.Linear)
	opts := countdown.Options{
		Target: testEpoch.Add(2*time.Minute + 30*time.Second),
		Labels: [3]string{"d", "h", "m"},
	}
	cd, err := countdown.New(opts, fake.Now(), b, countdown.Hooks{})
	if err != nil {
		t.Fatalf("countdown.New returned error: %v", err)
	}

	slot := countdown.Slot{Unit: countdown.Minute, Pos: countdown.Ones}
	cell := b.cell(slot)
	if cell.Top() != '2' || cell.Bottom() != '2' {
		t.Fatalf("initial cell = %c/%c, want 2/2", cell.Top(), cell.Bottom())
	}

	fake.Advance(time.Minute)
	if !cd.Tick(fake.Now()) {
		t.Fatal("Tick reported expiry")
	}
	if !b.Timeline().Active() {
		t.Fatal("minute change did not start a transition")
	}
	if cd.Phase(slot) != countdown.FlippingTop {
		t.Fatalf("Phase = %s, want flipping-top", cd.Phase(slot))
	}

	fake.Advance(500 * time.Millisecond)
	b.Timeline().Step(fake.Now())
	if cd.Phase(slot) != countdown.FlippingBottom {
		t.Fatalf("Phase = %s, want flipping-bottom", cd.Phase(slot))
	}

	fake.Advance(500 * time.Millisecond)
	b.Timeline().Step(fake.Now())
	if cd.Phase(slot) != countdown.Idle {
		t.Fatalf("Phase = %s, want idle", cd.Phase(slot))
	}
	if cell.Top() != '1' || cell.Bottom() != '1' {
		t.Fatalf("final cell = %c/%c, want 1/1", cell.Top(), cell.Bottom())
	}
	if cell.Flipping() || b.Timeline().Active() {
		t.Fatal("flip left a transition running")
	}
}
