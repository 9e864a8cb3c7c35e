/*
minutes.go - Day/night minute accounting for a day segment

PURPOSE:
  Split the time worked on one day segment into minutes inside the
  day-rate window and minutes outside it, then deduct the segment's
  breaks from the bucket each break falls in.

MODEL:
  The day bucket is measured directly as the overlap between the worked
  interval and the half-open window [Open, Close). The night bucket is
  everything else worked, computed by subtraction so the two buckets
  always sum to the elapsed time before deductions.

  Each counted break removes the policy's full break length from one
  bucket: the day bucket when the break both starts and completes
  inside the window, the night bucket otherwise. On a confined segment
  a break completing exactly at window close still counts as day; the
  other roles exclude that boundary. Sentinel pseudo-breaks (see
  breaks.go) and breaks that cannot complete before the shift ends are
  not counted.
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// MinutesWorked accounts one day segment against a day-rate window,
// returning worked minutes split into day and night buckets with the
// given breaks deducted.
func MinutesWorked(seg DaySegment, w DayWindow, breaks []Clock, p BreakPolicy) MinuteSplit {
	windowSecs := w.Close.Sub(w.Open)
	var daySecs, totalSecs int

	switch seg.Role {
	case RoleFull:
		daySecs = windowSecs
		totalSecs = 24 * 3600

	case RoleShiftStart:
		s := secondsOfDay(seg.Start)
		totalSecs = 24*3600 - s
		switch {
		case s <= w.Open.Seconds():
			daySecs = windowSecs
		case s < w.Close.Seconds():
			daySecs = w.Close.Seconds() - s
		default:
			daySecs = 0
		}

	case RoleShiftEnd:
		e := secondsOfDay(seg.End)
		totalSecs = e
		switch {
		case e <= w.Open.Seconds():
			daySecs = 0
		case e < w.Close.Seconds():
			daySecs = e - w.Open.Seconds()
		default:
			daySecs = windowSecs
		}

	case RoleConfined:
		s, e := secondsOfDay(seg.Start), secondsOfDay(seg.End)
		totalSecs = e - s
		ds, de := w.Open.Seconds(), w.Close.Seconds()
		switch {
		case e <= ds || s >= de:
			daySecs = 0
		case s <= ds && e >= de:
			daySecs = windowSecs
		case s >= ds && e <= de:
			daySecs = totalSecs
		case s >= ds:
			daySecs = de - s
		default:
			daySecs = e - ds
		}
	}

	day := secondsToMinutes(daySecs)
	night := secondsToMinutes(totalSecs - daySecs)

	deduction := decimal.NewFromInt(int64(p.BreakHours) * 60)
	for _, bt := range breaks {
		if !countsBreak(seg, bt, p) {
			continue
		}
		if inDayBucket(seg.Role, bt, w, p) {
			day = day.Sub(deduction)
		} else {
			night = night.Sub(deduction)
		}
	}
	return MinuteSplit{Day: day, Night: night}
}

// countsBreak reports whether a derived break actually interrupts paid
// time on this segment.
func countsBreak(seg DaySegment, bt Clock, p BreakPolicy) bool {
	switch seg.Role {
	case RoleShiftStart, RoleConfined:
		// A pseudo-break at the shift start marks a segment too short
		// to earn a real break.
		return !bt.Equal(ClockFrom(seg.Start))
	case RoleShiftEnd:
		// Breaks must complete before the shift ends.
		return bt.Seconds() <= secondsOfDay(seg.End)-p.BreakHours*3600
	default:
		return true
	}
}

// inDayBucket reports whether a break starts and completes inside the
// day-rate window. On confined segments the closing boundary counts: a
// break ending exactly at window close interrupts day time there, and
// the post-window tail can be shorter than the break, which would push
// the night bucket negative if it absorbed the deduction.
func inDayBucket(role Role, bt Clock, w DayWindow, p BreakPolicy) bool {
	latest := w.Close.Seconds() - p.BreakHours*3600
	if role == RoleConfined {
		return bt.Seconds() >= w.Open.Seconds() && bt.Seconds() <= latest
	}
	return bt.Seconds() >= w.Open.Seconds() && bt.Seconds() < latest
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func secondsToMinutes(secs int) decimal.Decimal {
	return decimal.NewFromInt(int64(secs)).Div(decimal.NewFromInt(60))
}
