package countdown

import (
	"fmt"
	"time"
)

// Unit identifies one displayed time unit. The declaration order is the
// computation, iteration and rendering order.
type Unit int

const (
	Day Unit = iota
	Hour
	Minute
)

// Units lists every unit in display order.
var Units = [...]Unit{Day, Hour, Minute}

func (u Unit) String() string {
	switch u {
	case Day:
		return "day"
	case Hour:
		return "hour"
	case Minute:
		return "minute"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

const (
	msPerMinute int64 = 60_000
	msPerHour         = 60 * msPerMinute
	msPerDay          = 24 * msPerHour
)

// Delta is the remaining time split into whole units. Hours is always in
// [0,23] and Minutes in [0,59]; Days is unbounded.
type Delta struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Count returns the value for u.
func (d Delta) Count(u Unit) int {
	switch u {
	case Day:
		return d.Days
	case Hour:
		return d.Hours
	case Minute:
		return d.Minutes
	}
	return 0
}

// ComputeDelta splits target-now into days, hours and minutes from a single
// millisecond difference. A negative difference yields the zero Delta.
func ComputeDelta(target, now time.Time) Delta {
	diff := target.Sub(now).Milliseconds()
	if diff <= 0 {
		return Delta{}
	}
	return Delta{
		Days:    int(diff / msPerDay),
		Hours:   int((diff % msPerDay) / msPerHour),
		Minutes: int((diff % msPerHour) / msPerMinute),
	}
}
