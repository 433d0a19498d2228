package calculator

import "time"

// DateLayout is the fromdate format expected by the quote API.
const DateLayout = "2006-01-02"

// YearsAgo returns the calendar date n years before now, keeping month and day.
// When that day does not exist in the target year (Feb 29 into a non-leap year)
// the previous day is returned instead.
func YearsAgo(now time.Time, n int) time.Time {
	if n < 0 {
		n = 0
	}
	y, m, d := now.Date()
	past := time.Date(y-n, m, d, 0, 0, 0, 0, now.Location())
	if past.Month() != m {
		// time.Date normalized an invalid day into the next month
		past = time.Date(y-n, m, d-1, 0, 0, 0, 0, now.Location())
	}
	return past
}
