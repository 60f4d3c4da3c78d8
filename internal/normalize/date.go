package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses a strict DD/MM/YYYY date as entered on Brazilian payroll
// sheets. Anything else, including ISO order, is an error.
func ParseDate(raw string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY", raw)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: day is not numeric", raw)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: month is not numeric", raw)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: year is not numeric", raw)
	}

	if year < 1000 || year > 9999 {
		return time.Time{}, fmt.Errorf("invalid date %q: expected a 4-digit year", raw)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (32/01 becomes 01/02);
	// a round-trip mismatch means the calendar date did not exist.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %q: no such calendar date", raw)
	}
	return t, nil
}

// Age returns full years between birth and asOf, decremented by one when the
// asOf date falls before the birthday anniversary in asOf's year.
func Age(birth, asOf time.Time) int {
	years := asOf.Year() - birth.Year()
	anniversary := time.Date(asOf.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if asOf.Before(anniversary) {
		years--
	}
	return years
}
