package calendar

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Every date-bearing entity stores both representations; this package is the
// single place where one is derived from the other. Shamsi dates travel as
// "YYYY-MM-DD" strings.

// ToShamsi converts a Gregorian date to its Shamsi representation.
func ToShamsi(t time.Time) string {
	pt := ptime.New(t)
	return fmt.Sprintf("%04d-%02d-%02d", pt.Year(), int(pt.Month()), pt.Day())
}

// ToGregorian parses a Shamsi date string and returns the Gregorian date
// (midnight, Iran local time).
func ToGregorian(s string) (time.Time, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return time.Time{}, fmt.Errorf("invalid shamsi date %q: %w", s, err)
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("invalid shamsi date %q", s)
	}
	pt := ptime.Date(y, ptime.Month(m), d, 0, 0, 0, 0, ptime.Iran())
	return pt.Time(), nil
}

// MonthName returns the Persian month name for a 1-based month number.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return ptime.Month(month).String()
}
