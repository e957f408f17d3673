package countdown

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Configuration errors. All of them abort construction.
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrAlreadyPassed     = errors.New("already passed")
	ErrInvalidTimeFormat = errors.New("invalid time format")
)

// LabelSeparator delimits the unit labels in Input.Labels.
const LabelSeparator = "|"

// Input is the raw, unvalidated construction input.
type Input struct {
	Target   string // target instant
	Schedule string // cron expression, used when Target is empty
	Labels   string // "day|hour|minute"
	Caption  string
	Policy   Policy
}

// Options are validated countdown parameters.
type Options struct {
	Target  time.Time
	Labels  [len(Units)]string
	Caption string
	Policy  Policy
}

// ParseInput validates in against now.
func ParseInput(in Input, now time.Time) (Options, error) {
	target, err := resolveTarget(in, now)
	if err != nil {
		return Options{}, err
	}
	if !target.After(now) {
		return Options{}, fmt.Errorf("%w: %s", ErrAlreadyPassed, target.Format(time.RFC1123))
	}
	labels, err := ParseLabels(in.Labels)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Target:  target,
		Labels:  labels,
		Caption: strings.TrimSpace(in.Caption),
		Policy:  in.Policy,
	}, nil
}

// ParseLabels splits raw into exactly three trimmed labels.
func ParseLabels(raw string) ([len(Units)]string, error) {
	var labels [len(Units)]string
	parts := strings.Split(strings.TrimSpace(raw), LabelSeparator)
	if strings.TrimSpace(raw) == "" || len(parts) != len(labels) {
		return labels, fmt.Errorf("%w: want %d labels separated by %q, got %q", ErrInvalidTimeFormat, len(labels), LabelSeparator, raw)
	}
	for i, p := range parts {
		labels[i] = strings.TrimSpace(p)
	}
	return labels, nil
}

func resolveTarget(in Input, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(in.Target)
	if raw == "" && strings.TrimSpace(in.Schedule) != "" {
		return NextScheduled(in.Schedule, now)
	}
	return ParseTarget(raw)
}

// NextScheduled returns the first occurrence of the standard cron expression
// expr after now.
func NextScheduled(expr string, now time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(strings.TrimSpace(expr))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: schedule %q: %v", ErrInvalidDate, expr, err)
	}
	next := sched.Next(now)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("%w: schedule %q never fires", ErrInvalidDate, expr)
	}
	return next, nil
}

// Layouts carrying an explicit zone or offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
}

// Layouts without a zone, interpreted in the local zone.
var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"January 2, 2006 15:04:05",
	"January 2, 2006 15:04",
	"January 2, 2006",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// Date-only ISO layouts, interpreted as UTC midnight.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01",
	"2006",
}

// ParseTarget parses a target instant. Date-only ISO strings ("2027",
// "2027-03", "2027-03-01") are UTC midnight and zone-less date-times are
// local. Other bare numbers are rejected.
func ParseTarget(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty target", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}
