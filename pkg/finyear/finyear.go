// Package finyear provides UK financial-year date helpers. The financial
// year runs 1 April to 31 March.
package finyear

import (
	"fmt"
	"time"
)

// Start returns the financial-year start date (1 April) for the year
// containing the given date.
func Start(date time.Time) time.Time {
	year := date.Year()
	if date.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, date.Location())
}

// End returns the financial-year end date (31 March) for the year
// containing the given date.
func End(date time.Time) time.Time {
	year := date.Year()
	if date.Month() >= time.April {
		year++
	}
	return time.Date(year, time.March, 31, 0, 0, 0, 0, date.Location())
}

// YearMonth is a single calendar month bucket
type YearMonth struct {
	Year  int
	Month time.Month
}

// String formats the bucket as "YYYY-MM", the key dashboards group by
func (ym YearMonth) String() string {
	return fmt.Sprintf("%d-%02d", ym.Year, int(ym.Month))
}

// MonthSequence returns every (year, month) pair from start's month up to
// and including end's month, in chronological order with no gaps.
func MonthSequence(start, end time.Time) []YearMonth {
	first := 12*start.Year() + int(start.Month()) - 1
	last := 12*end.Year() + int(end.Month()) - 1

	var months []YearMonth
	for ym := first; ym <= last; ym++ {
		months = append(months, YearMonth{
			Year:  ym / 12,
			Month: time.Month(ym%12 + 1),
		})
	}
	return months
}
