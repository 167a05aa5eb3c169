// Package dateutil turns loosely formatted date strings into canonical
// ISO-8601 calendar dates.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jinzhu/now"
)

// ISO8601 is the canonical calendar date layout.
const ISO8601 = "2006-01-02"

// maxWindow limits how many adjacent tokens the fuzzy fallback joins.
const maxWindow = 4

// DateParseError signals that no date could be extracted from a value.
type DateParseError struct {
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("no date found in %q", e.Value)
}

var errEmptyValue = errors.New("empty date value")

// ToISO8601 parses a date-like string and renders it as YYYY-MM-DD. The
// parse is fuzzy: tokens that are not part of a date are ignored, and
// ambiguous day/month order resolves day-first (25/05/2020 -> 2020-05-25).
func ToISO8601(value string) (string, error) {
	t, err := parseLoose(value)
	if err != nil {
		return "", &DateParseError{Value: value}
	}
	return t.Format(ISO8601), nil
}

// Parse returns the time value for a date-like string, day-first on
// ambiguity.
func Parse(value string) (time.Time, error) {
	return dateparse.ParseAny(value, dateparse.PreferMonthFirst(false))
}

// MustParse is like Parse but panics on error
func MustParse(value string) time.Time {
	t, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return t
}

// parseLoose tries the whole value first, then falls back to sliding
// windows of adjacent whitespace-separated tokens, widest window first.
func parseLoose(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyValue
	}
	if t, err := Parse(value); err == nil {
		return t, nil
	}
	fields := strings.Fields(value)
	w := maxWindow
	if len(fields) < w {
		w = len(fields)
	}
	for ; w > 0; w-- {
		for i := 0; i+w <= len(fields); i++ {
			cand := strings.Trim(strings.Join(fields[i:i+w], " "), ".,;:")
			if cand == "" {
				continue
			}
			if t, err := Parse(cand); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, errEmptyValue
}

// RunDay pads a point in time back to the beginning of its day; pipeline
// artifacts are partitioned by this value.
func RunDay(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}
