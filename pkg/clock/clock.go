// Package clock provides the display string for "now" and the wait duration
// to the next wall-clock second boundary.
package clock

import "time"

// Display layouts in the stdlib reference-time notation.
const (
	layoutFull     = "2006-01-02 15:04:05"
	layoutTimeOnly = "15:04:05"
)

// Format returns the overlay text for now in the local timezone:
// HH:MM:SS when timeOnly is set, YYYY-MM-DD HH:MM:SS otherwise.
func Format(now time.Time, timeOnly bool) string {
	if timeOnly {
		return now.Format(layoutTimeOnly)
	}
	return now.Format(layoutFull)
}

// UntilNextSecond returns how long to wait from now until the next
// whole-second boundary, at millisecond granularity. An instant already on
// a boundary yields zero, an immediate tick.
func UntilNextSecond(now time.Time) time.Duration {
	ms := now.Nanosecond() / int(time.Millisecond)
	rem := 1000 - ms
	if rem == 1000 {
		return 0
	}
	return time.Duration(rem) * time.Millisecond
}
