package shift

import (
	"time"

	"github.com/DavidLHW/robot-salary-calculator/schedule"
)

// RateTable holds the two rate schedules a shift is priced against:
// one for weekdays and one for Saturdays and Sundays.
type RateTable struct {
	Weekday schedule.RateSchedule
	Weekend schedule.RateSchedule
}

// ForDay picks the schedule in force on the given calendar day.
func (rt RateTable) ForDay(day time.Time) schedule.RateSchedule {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return rt.Weekend
	default:
		return rt.Weekday
	}
}
