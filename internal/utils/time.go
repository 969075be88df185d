package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutTime     = "15:04"
	layoutDateTime = "2006-01-02 15:04"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseTripDateTime parses the form's separate date and time fields
// ("YYYY-MM-DD" + "HH:MM") into one local instant.
func ParseTripDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation(layoutDateTime, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), time.Local)
}

// TripHour extracts the integer hour component from "HH:MM". Invalid input
// yields 0, matching how the site parsed the field.
func TripHour(clock string) int {
	t, err := time.Parse(layoutTime, strings.TrimSpace(clock))
	if err != nil {
		return 0
	}
	return t.Hour()
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
