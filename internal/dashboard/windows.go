package dashboard

import "time"

const (
	bucketMonths     = 12
	scalarWindowDays = 365
)

// trailingCalendarMonths returns n month-aligned months ending with the
// month of now, oldest first.
func trailingCalendarMonths(now time.Time, n int) []YearMonth {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := make([]YearMonth, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, yearMonthOf(first.AddDate(0, -i, 0)))
	}
	return months
}

// trailingDays returns the start of a rolling window of the given number of
// days ending at now.
func trailingDays(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}
