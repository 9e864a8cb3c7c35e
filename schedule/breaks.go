/*
breaks.go - Break schedule derivation for a day segment

PURPOSE:
  Derive the clock times at which the robot's breaks begin on one day
  segment, continuing the work/rest rhythm carried in from the previous
  day where the segment has one.

MODEL:
  The rhythm is simulated hour by hour. A counter tracks hours worked
  since the last break; when it reaches the policy's work hours a break
  begins on that hour, at the same minute offset the rhythm has been
  running on. Break hours are then skipped before the counter resumes.

  Segments that begin mid-day (shift start, confined) start the counter
  at zero from the first worked hour. Segments that begin at midnight
  (full, shift end) seed the counter from the carried break: a break
  that began at hour H of the previous day leaves 24-(H+break) hours
  already worked when this day opens. A carried break of exactly
  midnight means the break began as this day opened and the counter is
  seeded below zero to absorb it.

SENTINEL:
  A segment too short to earn any break yields a single pseudo-break at
  the moment the shift began. It is never paid time (minutes.go skips
  it) but it keeps the carry chain intact for the following day.
*/
package schedule

import (
	"fmt"
	"time"
)

// BreakTimes returns the clock times at which breaks begin on the given
// day segment under the given policy.
//
// For segments carrying a break from the previous day, the carried time
// must leave no more than the policy's work hours before this day opens,
// otherwise ErrInvalidBreakTime is returned.
func BreakTimes(seg DaySegment, p BreakPolicy) ([]Clock, error) {
	switch seg.Role {
	case RoleFull, RoleShiftEnd:
		return carriedDayBreaks(seg.LastBreak, p)

	case RoleShiftStart:
		start := ClockFrom(seg.Start)
		// Past this point the remainder of the day cannot fit a full
		// work stretch plus its break.
		latest := ClockOf(24-p.WorkHours-p.BreakHours, 0, 0)
		if start.After(latest) {
			return []Clock{start}, nil
		}
		return simulateBreaks(start.Hour(), 24-start.Hour(), start.Minute(), 0, p), nil

	case RoleConfined:
		start := ClockFrom(seg.Start)
		dur := seg.End.Sub(seg.Start)
		if dur <= time.Duration(p.WorkHours)*time.Hour {
			return []Clock{start}, nil
		}
		return simulateBreaks(start.Hour(), int(dur.Seconds())/3600, start.Minute(), 0, p), nil

	default:
		return nil, fmt.Errorf("unknown segment role %v", seg.Role)
	}
}

// carriedDayBreaks handles the full 24h simulation for segments that open
// at midnight with a break carried in from the previous day.
func carriedDayBreaks(last Clock, p BreakPolicy) ([]Clock, error) {
	effSecs := last.Seconds()
	if last.IsMidnight() {
		// The carried break began exactly as this day opened.
		effSecs = 24 * 3600
	}
	earliest := ClockOf(24-p.BreakHours-p.WorkHours, 0, 0)
	if effSecs < earliest.Seconds() {
		return nil, &InvalidBreakTimeError{LastBreak: last, Earliest: earliest}
	}
	hoursSinceBreak := 24 - (effSecs/3600 + p.BreakHours)
	return simulateBreaks(0, 24, last.Minute(), hoursSinceBreak, p), nil
}

// simulateBreaks runs the hour-by-hour rhythm over a run of hours starting
// at startHour, all breaks falling on the given minute offset.
func simulateBreaks(startHour, hours, minute, hoursSinceBreak int, p BreakPolicy) []Clock {
	var breaks []Clock
	inBreak := false
	taken := 0
	for i := 0; i < hours; i++ {
		hour := startHour + i
		if inBreak {
			taken++
			if taken == p.BreakHours {
				inBreak = false
				taken = 0
			}
			continue
		}
		if hoursSinceBreak == p.WorkHours {
			hoursSinceBreak = 0
			breaks = append(breaks, ClockOf(hour, minute, 0))
			inBreak = true
		}
		hoursSinceBreak++
	}
	return breaks
}
