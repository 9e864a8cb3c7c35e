/*
shift.go - Shift pricing across calendar days

PURPOSE:
  Walk a shift from its start to its end one calendar day at a time,
  assign each day its segment role and the rate schedule in force on
  that weekday, and sum the per-day pay.

SEGMENTATION:
  A multi-day shift yields an opening partial day, zero or more full
  days, and a closing partial day. A shift confined to one date yields
  a single confined segment. The last break of each day (real or
  pseudo) is carried into the next day so the work/rest rhythm never
  resets at midnight.

ROUNDING:
  Each day's pay is rounded to cents as it is earned; Quote then
  truncates the summed total to a whole unit.
*/
package shift

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DavidLHW/robot-salary-calculator/schedule"
)

// Calculator prices shifts against a rate table under a break policy.
type Calculator struct {
	Rates  RateTable
	Policy schedule.BreakPolicy
}

// NewCalculator returns a calculator using the standard break policy.
func NewCalculator(rates RateTable) *Calculator {
	return &Calculator{Rates: rates, Policy: schedule.DefaultBreakPolicy()}
}

// DayPay is one day's slice of a priced shift.
type DayPay struct {
	Date    time.Time
	Role    schedule.Role
	Minutes schedule.MinuteSplit
	Pay     decimal.Decimal
}

// Quote prices a shift and truncates the total to a whole unit.
func (c *Calculator) Quote(start, end time.Time) (int64, error) {
	total, err := c.TotalPay(start, end)
	if err != nil {
		return 0, err
	}
	return total.IntPart(), nil
}

// SameDayPay prices a shift confined to a single calendar date.
func (c *Calculator) SameDayPay(start, end time.Time) (decimal.Decimal, error) {
	if start.After(end) {
		return decimal.Zero, &schedule.InvalidShiftError{Start: start, End: end}
	}
	if !sameDate(start, end) {
		return decimal.Zero, fmt.Errorf("shift from %s to %s spans multiple days",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	day, _, err := c.priceDay(schedule.NewConfinedDay(start, end))
	if err != nil {
		return decimal.Zero, err
	}
	return day.Pay, nil
}

// TotalPay prices a shift to cents.
func (c *Calculator) TotalPay(start, end time.Time) (decimal.Decimal, error) {
	days, err := c.Itemize(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, d := range days {
		total = total.Add(d.Pay)
	}
	return total, nil
}

// Itemize prices a shift day by day.
func (c *Calculator) Itemize(start, end time.Time) ([]DayPay, error) {
	if start.After(end) {
		return nil, &schedule.InvalidShiftError{Start: start, End: end}
	}
	if sameDate(start, end) {
		day, _, err := c.priceDay(schedule.NewConfinedDay(start, end))
		if err != nil {
			return nil, err
		}
		return []DayPay{day}, nil
	}

	span := spanDays(start, end)
	days := make([]DayPay, 0, span+1)
	var carry schedule.Clock
	current := start
	for i := 0; i <= span; i++ {
		var seg schedule.DaySegment
		switch {
		case i == 0:
			seg = schedule.NewShiftStartDay(start)
		case i == span:
			seg = schedule.NewShiftEndDay(end, carry)
		default:
			seg = schedule.NewFullDay(current, carry)
		}
		seg.Date = current

		day, breaks, err := c.priceDay(seg)
		if err != nil {
			return nil, err
		}
		days = append(days, day)

		if len(breaks) > 0 {
			carry = breaks[len(breaks)-1]
		}
		current = current.AddDate(0, 0, 1)
	}
	return days, nil
}

func (c *Calculator) priceDay(seg schedule.DaySegment) (DayPay, []schedule.Clock, error) {
	breaks, err := schedule.BreakTimes(seg, c.Policy)
	if err != nil {
		return DayPay{}, nil, err
	}
	rates := c.Rates.ForDay(seg.Date)
	minutes := schedule.MinutesWorked(seg, rates.Window, breaks, c.Policy)
	day := DayPay{
		Date:    seg.Date,
		Role:    seg.Role,
		Minutes: minutes,
		Pay:     schedule.Pay(minutes, rates),
	}
	return day, breaks, nil
}

// spanDays counts the calendar-day steps between start and end. The three
// measures disagree near month boundaries and around exact multiples of
// 24h; the largest one is always the true step count.
func spanDays(start, end time.Time) int {
	dur := end.Sub(start)
	span := end.Day() - start.Day()
	if byDuration := int(dur.Hours()) / 24; byDuration > span {
		span = byDuration
	}
	if span < 1 && int(dur.Seconds())%86400 > 0 {
		span = 1
	}
	return span
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
