package schedule

import (
	"fmt"
	"time"
)

// =============================================================================
// CLOCK - Time-of-day within a single 24h cycle
// =============================================================================

// Clock is a time of day with second resolution. The zero value is midnight.
// All schedule arithmetic (window boundaries, break times) happens on Clock
// values; absolute dates only matter when a segment is anchored to a shift
// boundary.
type Clock struct {
	secs int
}

// ClockOf builds a Clock from hour, minute and second.
func ClockOf(hour, minute, second int) Clock {
	return Clock{secs: hour*3600 + minute*60 + second}
}

// ClockFrom extracts the clock reading of an absolute timestamp, dropping
// sub-minute precision the way break bookkeeping does ("HHMM" resolution).
func ClockFrom(t time.Time) Clock {
	return ClockOf(t.Hour(), t.Minute(), 0)
}

// ParseClock parses "HH:MM:SS" (or "HH:MM") into a Clock.
func ParseClock(s string) (Clock, error) {
	var h, m, sec int
	switch n, _ := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); n {
	case 2, 3:
	default:
		return Clock{}, fmt.Errorf("invalid clock value %q: want HH:MM:SS", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return Clock{}, fmt.Errorf("invalid clock value %q: out of range", s)
	}
	return ClockOf(h, m, sec), nil
}

// ParseCompactClock parses the compact "HHMM" form used for break times,
// e.g. "2215" for a break at 22:15.
func ParseCompactClock(s string) (Clock, error) {
	if len(s) != 4 {
		return Clock{}, fmt.Errorf("invalid break time %q: want HHMM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d%2d", &h, &m); err != nil {
		return Clock{}, fmt.Errorf("invalid break time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("invalid break time %q: out of range", s)
	}
	return ClockOf(h, m, 0), nil
}

func (c Clock) Hour() int    { return c.secs / 3600 }
func (c Clock) Minute() int  { return c.secs / 60 % 60 }
func (c Clock) Second() int  { return c.secs % 60 }
func (c Clock) Seconds() int { return c.secs }

func (c Clock) IsMidnight() bool    { return c.secs == 0 }
func (c Clock) Before(o Clock) bool { return c.secs < o.secs }
func (c Clock) After(o Clock) bool  { return c.secs > o.secs }
func (c Clock) Equal(o Clock) bool  { return c.secs == o.secs }
func (c Clock) Sub(o Clock) int     { return c.secs - o.secs }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

// Compact renders the "HHMM" form.
func (c Clock) Compact() string {
	return fmt.Sprintf("%02d%02d", c.Hour(), c.Minute())
}

// OnDate anchors the clock reading to the calendar date of t.
func (c Clock) OnDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour(), c.Minute(), c.Second(), 0, t.Location())
}
