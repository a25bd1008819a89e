// Package dateutils provides the date conversions used when importing bank
// exports.
package dateutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layouts used by the importer.
const (
	DateLayoutISO = "2006-01-02"
	// DateLayoutDMY is day/month/four-digit-year without zero padding, the
	// posting date format of Piraeus exports.
	DateLayoutDMY = "2/1/2006"
)

// ParseDMY parses a D/M/YYYY date. A day between 29 and 31 that is past the
// end of its month is clamped to the month's last day, so 31/2/2024 is
// 29 February 2024.
func ParseDMY(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutDMY, dateStr)
	if err == nil {
		return t, nil
	}
	if clamped, ok := clampDMY(dateStr); ok {
		return clamped, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q: %w", dateStr, err)
}

// clampDMY resolves a D/M/YYYY date whose day overflows its month.
func clampDMY(dateStr string) (time.Time, bool) {
	parts := strings.Split(dateStr, "/")
	if len(parts) != 3 || len(parts[0]) > 2 || len(parts[1]) > 2 || len(parts[2]) != 4 {
		return time.Time{}, false
	}

	var n [3]int
	for i, part := range parts {
		if !isDigits(part) {
			return time.Time{}, false
		}
		n[i], _ = strconv.Atoi(part)
	}
	day, month, year := n[0], n[1], n[2]
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, false
	}

	// Day 0 of the next month is the last day of this one.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// DMYToISO converts a D/M/YYYY date into ISO 8601. The second return value
// is false when the input did not parse, in which case the input is returned
// unchanged.
func DMYToISO(dateStr string) (string, bool) {
	t, err := ParseDMY(dateStr)
	if err != nil {
		return dateStr, false
	}
	return ToISODate(t), true
}
