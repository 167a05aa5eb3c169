package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestToISO8601(t *testing.T) {
	testCases := []struct {
		value  string
		result string
	}{
		{"2022-01-01", "2022-01-01"},
		{"25/05/2020", "2020-05-25"},
		{"1 January 2020", "2020-01-01"},
		{"2020-03-01T00:00:00Z", "2020-03-01"},
		{"  2020-05-25  ", "2020-05-25"},
		{"published online 25/05/2020", "2020-05-25"},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			got, err := ToISO8601(tc.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.result {
				t.Errorf("got %s, want %s", got, tc.result)
			}
		})
	}
}

func TestToISO8601Error(t *testing.T) {
	for _, value := range []string{"", "no date here at all", "???"} {
		_, err := ToISO8601(value)
		if err == nil {
			t.Errorf("expected error for %q", value)
			continue
		}
		var dpe *DateParseError
		if !errors.As(err, &dpe) {
			t.Errorf("expected DateParseError for %q, got %T", value, err)
		}
	}
}

func TestRunDay(t *testing.T) {
	v := time.Date(2020, 5, 25, 13, 37, 42, 0, time.UTC)
	day := RunDay(v)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Errorf("expected beginning of day, got %v", day)
	}
	if day.Format(ISO8601) != "2020-05-25" {
		t.Errorf("got %s, want 2020-05-25", day.Format(ISO8601))
	}
}
