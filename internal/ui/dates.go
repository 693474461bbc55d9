package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ShortDate renders a due date as "Jan 2nd".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%s %s", t.Format("Jan"), humanize.Ordinal(t.Day()))
}

// LongDate renders a due date as "Wednesday, January 1st, 2025".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %s %s, %d", t.Weekday(), t.Month(), humanize.Ordinal(t.Day()), t.Year())
}

// Relative describes how far due is from now in whole days.
func Relative(due, now time.Time) string {
	due, today := civil(due), civil(now)
	switch days := int(due.Sub(today).Hours() / 24); days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	case -1:
		return "yesterday"
	}
	return humanize.RelTime(due, today, "ago", "from now")
}

// Overdue reports whether due is strictly before today.
func Overdue(due, now time.Time) bool {
	return civil(due).Before(civil(now))
}
