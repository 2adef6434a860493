package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used as the key for daily rosters.
const DateLayout = "2006-01-02"

const displayLayout = "Monday, January 2, 2006"

// Today returns the UTC calendar date of now as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// Parse validates a YYYY-MM-DD date string.
func Parse(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return t, nil
}

// FormatDate renders a YYYY-MM-DD date for display, e.g. "Monday, January 1, 2024".
func FormatDate(date string) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.Format(displayLayout), nil
}
