// Package duration provides parsing for human-readable duration strings.
//
// Users specify time windows as "7d" (days), "4w" (weeks), or "3m" (months)
// rather than Go's time.Duration format. This matches common CLI conventions
// and is more intuitive for search --within and similar recency filters.
package duration

import (
	"fmt"
	"strconv"
	"time"
)

const day = 24 * time.Hour

// Parse parses duration strings in the format: Nd (days), Nw (weeks), Nm (months).
// Examples: "7d" = 7 days, "4w" = 4 weeks, "3m" = 3 months (30 days).
func Parse(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format: %s (use 7d, 4w, or 3m)", s)
	}

	num, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || num < 0 {
		return 0, fmt.Errorf("invalid duration format: %s (use 7d, 4w, or 3m)", s)
	}

	switch s[len(s)-1] {
	case 'd':
		return time.Duration(num) * day, nil
	case 'w':
		return time.Duration(num) * 7 * day, nil
	case 'm':
		return time.Duration(num) * 30 * day, nil
	default:
		return 0, fmt.Errorf("invalid duration unit: %c (use d, w, or m)", s[len(s)-1])
	}
}

// Days converts a duration string to a whole number of days, rounding up so
// partial days still widen the window rather than narrow it.
func Days(s string) (int, error) {
	d, err := Parse(s)
	if err != nil {
		return 0, err
	}
	days := int(d / day)
	if d%day != 0 {
		days++
	}
	return days, nil
}
