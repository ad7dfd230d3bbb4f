package clock_test

import (
	"testing"
	"time"

	"github.com/gregjohnson2017/overlay-clock/pkg/clock"
)

func testFormat(instant time.Time, timeOnly bool, expected string) func(t *testing.T) {
	return func(t *testing.T) {
		actual := clock.Format(instant, timeOnly)
		if actual != expected {
			t.Fatalf("expected %q, got %q", expected, actual)
		}
	}
}

func TestFormat(t *testing.T) {
	instant := time.Date(2024, time.January, 15, 9, 5, 3, 0, time.Local)
	t.Run("date and time", testFormat(instant, false, "2024-01-15 09:05:03"))
	t.Run("time only", testFormat(instant, true, "09:05:03"))

	midnight := time.Date(1999, time.December, 31, 23, 59, 59, 0, time.Local)
	t.Run("end of day", testFormat(midnight, true, "23:59:59"))
	t.Run("end of century", testFormat(midnight, false, "1999-12-31 23:59:59"))
}

func testUntil(offset, expected time.Duration) func(t *testing.T) {
	return func(t *testing.T) {
		instant := time.Date(2024, time.January, 15, 9, 5, 3, 0, time.Local).Add(offset)
		actual := clock.UntilNextSecond(instant)
		if actual != expected {
			t.Fatalf("offset %v: expected %v, got %v", offset, expected, actual)
		}
	}
}

func TestUntilNextSecond(t *testing.T) {
	t.Run("on boundary", testUntil(0, 0))
	t.Run("one millisecond in", testUntil(time.Millisecond, 999*time.Millisecond))
	t.Run("halfway", testUntil(500*time.Millisecond, 500*time.Millisecond))
	t.Run("last millisecond", testUntil(999*time.Millisecond, time.Millisecond))
	t.Run("sub-millisecond residue counts as boundary", testUntil(100*time.Microsecond, 0))
}

// The wait must always land in [0, 999ms] and reach an exact boundary when
// the instant is millisecond-aligned.
func TestUntilNextSecondProperties(t *testing.T) {
	base := time.Date(2024, time.January, 15, 9, 5, 3, 0, time.Local)
	for ms := 0; ms < 1000; ms++ {
		instant := base.Add(time.Duration(ms) * time.Millisecond)
		wait := clock.UntilNextSecond(instant)
		if wait < 0 || wait > 999*time.Millisecond {
			t.Fatalf("wait %v out of range at offset %vms", wait, ms)
		}
		if landed := instant.Add(wait); ms != 0 && landed.Nanosecond() != 0 {
			t.Fatalf("offset %vms: %v + %v is not a second boundary", ms, instant, wait)
		}
	}
}
