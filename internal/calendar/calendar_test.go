package calendar

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 1, 31, 23, 30, 0, 0, loc)

	if got := Today(now); got != "2024-02-01" {
		t.Errorf("Today = %q, want %q", got, "2024-02-01")
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-01", "Monday, January 1, 2024"},
		{"2024-02-29", "Thursday, February 29, 2024"},
		{"2026-10-17", "Saturday, October 17, 2026"},
	}
	for _, tt := range tests {
		got, err := FormatDate(tt.date)
		if err != nil {
			t.Fatalf("FormatDate(%q): %v", tt.date, err)
		}
		if got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, date := range []string{"", "2024-13-01", "2024-02-30", "01/02/2024", "today"} {
		if _, err := Parse(date); err == nil {
			t.Errorf("Parse(%q) should fail", date)
		}
	}
}
