// Package dates parses the partial sample dates found in genome metadata
// (YYYY, YYYY-MM or YYYY-MM-DD) and computes lookback windows over them.
//
// Missing month or day default to 01, so "2020" is read as 2020-01-01.
// All results use the canonical YYYY-MM-DD layout, which sorts
// lexicographically in calendar order.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical date layout.
const Layout = "2006-01-02"

// ErrMalformedDate is matched by every *ParseError via errors.Is.
var ErrMalformedDate = errors.New("dates: malformed date")

// ParseError reports which part of a date string could not be parsed.
//
// Field is one of "format", "year", "month" or "day".
type ParseError struct {
	Input string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dates: parse %q: bad %s %q: %v", e.Input, e.Field, e.Value, e.Err)
	}

	return fmt.Sprintf("dates: parse %q: bad %s %q", e.Input, e.Field, e.Value)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// Is makes every ParseError match ErrMalformedDate.
func (e *ParseError) Is(target error) bool { return target == ErrMalformedDate }

// Parse reads a YYYY, YYYY-MM or YYYY-MM-DD date in UTC.
func Parse(s string) (time.Time, error) {
	in := strings.TrimSpace(s)
	parts := strings.Split(in, "-")
	if in == "" || len(parts) > 3 {
		return time.Time{}, &ParseError{Input: s, Field: "format", Value: in}
	}
	for len(parts) < 3 {
		parts = append(parts, "01")
	}

	year, err := field(s, "year", parts[0], 1, 9999)
	if err != nil {
		return time.Time{}, err
	}
	month, err := field(s, "month", parts[1], 1, 12)
	if err != nil {
		return time.Time{}, err
	}
	day, err := field(s, "day", parts[2], 1, daysIn(year, time.Month(month)))
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// Canonical returns s rewritten as YYYY-MM-DD.
func Canonical(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}

	return t.Format(Layout), nil
}

// StopDate returns the calendar date days before s, as YYYY-MM-DD.
//
// Example:
//
//	StopDate("2020-03-15", 40) // "2020-02-04"
//	StopDate("2020", 30)       // "2019-12-02"
func StopDate(s string, days int) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}

	return t.AddDate(0, 0, -days).Format(Layout), nil
}

func field(input, name, value string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ParseError{Input: input, Field: name, Value: value, Err: err}
	}
	if n < lo || n > hi {
		return 0, &ParseError{
			Input: input,
			Field: name,
			Value: value,
			Err:   fmt.Errorf("out of range [%d, %d]", lo, hi),
		}
	}

	return n, nil
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
