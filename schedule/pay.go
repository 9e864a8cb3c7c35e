package schedule

import "github.com/shopspring/decimal"

// Pay prices a minute split against a rate schedule. Rates are per
// minute; the result is rounded to cents.
func Pay(split MinuteSplit, rs RateSchedule) decimal.Decimal {
	return split.Day.Mul(rs.DayRate).
		Add(split.Night.Mul(rs.NightRate)).
		Round(2)
}
