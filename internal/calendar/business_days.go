// Package calendar builds the business-day time grid used by the simulator.
package calendar

import "time"

// TradingDaysPerYear is the annualisation base for daily steps.
const TradingDaysPerYear = 252

// BusinessDays returns every Monday–Friday date in [start, end], inclusive.
// Only the calendar date of start and end is used; results are UTC midnight.
// Returns an empty (nil) grid when start is after end.
func BusinessDays(start, end time.Time) []time.Time {
	from := truncateDay(start)
	to := truncateDay(end)
	if from.After(to) {
		return nil
	}

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// IsBusinessDay reports whether t falls on Monday through Friday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// CountBusinessDays returns len(BusinessDays(start, end)) without allocating.
func CountBusinessDays(start, end time.Time) int {
	from := truncateDay(start)
	to := truncateDay(end)
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			n++
		}
	}
	return n
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
