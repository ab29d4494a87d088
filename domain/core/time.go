package core

import (
	"time"
)

// DateStampLayout is the MMDDYY stamp embedded in report file names.
const DateStampLayout = "010206"

// DateStamp formats t as MMDDYY.
func DateStamp(t time.Time) string {
	return t.Format(DateStampLayout)
}

// ParseDateStamp parses an MMDDYY stamp.
func ParseDateStamp(s string) (time.Time, error) {
	return time.ParseInLocation(DateStampLayout, s, time.Local)
}

// DaysBefore returns the calendar day `days` days before t, keeping t's location.
func DaysBefore(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, -days)
}

// Today truncates t to midnight in its own location.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
