// Package schedule implements the minute accounting that turns a robot
// work shift into paid day and night minutes.
//
// A shift is cut into calendar-day segments. Each segment plays one of four
// roles depending on where it sits inside the shift: the opening partial day,
// a run of full 24h days, the closing partial day, or a shift confined to a
// single date. For each segment the package derives the robot's break
// schedule, splits the minutes actually worked between the day-rate window
// and the night-rate complement, and prices the split against a rate
// schedule.
//
// Break bookkeeping threads across segments: the start of the last break of
// one day is carried into the next so that the "hours since last break"
// counter never resets at midnight.
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROLES
// =============================================================================

// Role describes where a day segment sits inside the overall shift.
type Role int

const (
	// RoleFull is a complete 24h day strictly inside the shift.
	RoleFull Role = iota
	// RoleShiftStart is the partial day from shift start to midnight.
	RoleShiftStart
	// RoleShiftEnd is the partial day from midnight to shift end.
	RoleShiftEnd
	// RoleConfined is a shift that starts and ends on the same date.
	RoleConfined
)

func (r Role) String() string {
	switch r {
	case RoleFull:
		return "full"
	case RoleShiftStart:
		return "shift_start"
	case RoleShiftEnd:
		return "shift_end"
	case RoleConfined:
		return "confined"
	default:
		return "unknown"
	}
}

// =============================================================================
// WINDOWS, RATES, BREAK POLICY
// =============================================================================

// DayWindow is the half-open clock interval [Open, Close) paid at the day
// rate. Minutes outside the window are paid at the night rate.
type DayWindow struct {
	Open  Clock
	Close Clock
}

// RateSchedule prices one kind of day (weekday or weekend): the day-rate
// window and the per-minute values inside and outside it.
type RateSchedule struct {
	Window    DayWindow
	DayRate   decimal.Decimal
	NightRate decimal.Decimal
}

// BreakPolicy fixes the work/rest rhythm: after WorkHours consecutive hours
// of work the robot rests for BreakHours.
type BreakPolicy struct {
	WorkHours  int
	BreakHours int
}

// DefaultBreakPolicy returns the standard rhythm of one hour of rest after
// every eight hours worked.
func DefaultBreakPolicy() BreakPolicy {
	return BreakPolicy{WorkHours: 8, BreakHours: 1}
}

// =============================================================================
// DAY SEGMENTS
// =============================================================================

// DaySegment is one calendar day's slice of a shift. Start and End are only
// meaningful for the roles that use them, and LastBreak only when the
// segment inherits a break carried over from the previous day.
type DaySegment struct {
	Role Role

	// Date identifies the calendar day the segment lies on.
	Date time.Time

	// Start is the moment work begins on this day. Set for RoleShiftStart
	// and RoleConfined; full and closing days begin at midnight.
	Start time.Time

	// End is the moment work stops on this day. Set for RoleShiftEnd and
	// RoleConfined; opening and full days run until midnight.
	End time.Time

	// LastBreak is the start of the most recent break of the previous day,
	// carried in so the break rhythm continues across midnight. A midnight
	// LastBreak means the break began exactly as this day opened.
	LastBreak Clock
}

// NewFullDay builds a complete 24h segment with the break carried in from
// the previous day.
func NewFullDay(date time.Time, lastBreak Clock) DaySegment {
	return DaySegment{Role: RoleFull, Date: date, LastBreak: lastBreak}
}

// NewShiftStartDay builds the opening partial segment, running from the
// shift start to the following midnight.
func NewShiftStartDay(start time.Time) DaySegment {
	return DaySegment{Role: RoleShiftStart, Date: start, Start: start}
}

// NewShiftEndDay builds the closing partial segment, running from midnight
// to the shift end, with the break carried in from the previous day.
func NewShiftEndDay(end time.Time, lastBreak Clock) DaySegment {
	return DaySegment{Role: RoleShiftEnd, Date: end, End: end, LastBreak: lastBreak}
}

// NewConfinedDay builds a segment for a shift that starts and ends on the
// same date.
func NewConfinedDay(start, end time.Time) DaySegment {
	return DaySegment{Role: RoleConfined, Date: start, Start: start, End: end}
}

// =============================================================================
// MINUTE SPLIT
// =============================================================================

// MinuteSplit is the outcome of accounting one day segment: the minutes
// worked inside the day-rate window and the minutes worked outside it,
// breaks already deducted.
type MinuteSplit struct {
	Day   decimal.Decimal
	Night decimal.Decimal
}

// Total is the sum of day and night minutes.
func (m MinuteSplit) Total() decimal.Decimal {
	return m.Day.Add(m.Night)
}
