package tracker

import (
	"strconv"
	"time"
)

// Day is one cell of the month grid. Leading cells before the first
// of the month have Day 0 and Current false.
type Day struct {
	Day     int  `json:"day,omitempty"`
	Current bool `json:"current"`
	Today   bool `json:"today"`
}

// MonthLabel renders the calendar heading, e.g. "August 2026".
func MonthLabel(t time.Time) string {
	return t.Month().String() + " " + strconv.Itoa(t.Year())
}

// MonthGrid returns the Sunday-first cells for the month containing
// selected: blanks padding the weekday of the 1st, then every day of
// the month, with today marked when it falls in the shown month.
func MonthGrid(selected, today time.Time) []Day {
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, selected.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]Day, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, Day{})
	}

	sameMonth := today.Year() == selected.Year() && today.Month() == selected.Month()
	for d := 1; d <= daysInMonth; d++ {
		days = append(days, Day{
			Day:     d,
			Current: true,
			Today:   sameMonth && d == today.Day(),
		})
	}
	return days
}

// StepMonth moves the selected date by n months. Navigation state is
// display-only and never persisted.
func StepMonth(selected time.Time, n int) time.Time {
	return selected.AddDate(0, n, 0)
}
