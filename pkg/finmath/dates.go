// Package finmath holds the calendar and interest arithmetic the lending
// ledger is built on. Everything here is pure computation; rounding of
// monetary and duration results is to 2 decimal places throughout.
package finmath

import (
	"errors"
	"math"
	"time"
)

var ErrNegativeDateRange = errors.New("end date is before start date")

// MonthsBetween returns the fractional number of calendar months between
// start and end, rounded to 2 decimals. The whole-month difference comes from
// the year/month fields; the day-of-month difference contributes a fraction
// scaled by the actual length of the month it falls in, so variable month
// lengths (28-31 days) are accounted for.
func MonthsBetween(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrNegativeDateRange
	}

	months := float64((end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()))
	dayDiff := end.Day() - start.Day()

	switch {
	case dayDiff < 0:
		// Borrow one whole month; the partial month is measured against
		// the length of the month preceding the end date.
		months--
		prev := daysInMonth(end.Year(), int(end.Month())-1)
		months += float64(prev+dayDiff) / float64(prev)
	case dayDiff > 0:
		cur := daysInMonth(end.Year(), int(end.Month()))
		months += float64(dayDiff) / float64(cur)
	}

	return Round2(months), nil
}

// daysInMonth returns the number of days in the given month. month may be 0
// (December of the previous year); time.Date normalizes it.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
