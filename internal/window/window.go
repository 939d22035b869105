// Package window decides whether a dated record falls inside a named or
// custom reporting period. Dates are calendar days in YYYY-MM-DD form.
package window

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only date form records carry
const DateLayout = time.DateOnly

// WeekDays is how far back the "week" window reaches
const WeekDays = 7

type Window string

const (
	Today  Window = "today"
	Week   Window = "week"
	Month  Window = "month"
	Year   Window = "year"
	Custom Window = "custom"
	All    Window = "all"
)

// Parse maps a query value onto a Window. Empty input yields fallback.
func Parse(s string, fallback Window) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback, nil
	}
	switch w := Window(s); w {
	case Today, Week, Month, Year, Custom, All:
		return w, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Range bounds a custom window. Either side may be empty.
type Range struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Validate rejects bounds that are set but not dates, or reversed
func (r Range) Validate() error {
	var start, end time.Time
	var err error
	if r.Start != "" {
		if start, err = time.Parse(DateLayout, r.Start); err != nil {
			return fmt.Errorf("start %q is not a YYYY-MM-DD date", r.Start)
		}
	}
	if r.End != "" {
		if end, err = time.Parse(DateLayout, r.End); err != nil {
			return fmt.Errorf("end %q is not a YYYY-MM-DD date", r.End)
		}
	}
	if r.Start != "" && r.End != "" && end.Before(start) {
		return fmt.Errorf("end %s is before start %s", r.End, r.Start)
	}
	return nil
}

// Filter is a window plus the custom range it may need
type Filter struct {
	Window Window `json:"window"`
	Range  Range  `json:"range,omitempty"`
}

// Contains applies the filter to a record date
func (f Filter) Contains(recordDate string, now time.Time) bool {
	return InWindow(recordDate, now, f.Window, f.Range)
}

// Date returns the calendar date of now in now's location
func Date(now time.Time) string {
	return now.Format(DateLayout)
}

// InWindow reports whether recordDate falls inside w relative to now.
//
// The week window has a lower bound only: a record dated after now still
// matches. An unknown window behaves like All.
func InWindow(recordDate string, now time.Time, w Window, r Range) bool {
	switch w {
	case Today:
		return recordDate == Date(now)
	case Week, Month, Year, Custom:
	default:
		return true
	}

	rec, ok := parseDate(recordDate)
	if !ok {
		return false
	}
	ref := civil(now)

	switch w {
	case Week:
		return !rec.Before(ref.AddDate(0, 0, -WeekDays))
	case Month:
		return rec.Year() == ref.Year() && rec.Month() == ref.Month()
	case Year:
		return rec.Year() == ref.Year()
	case Custom:
		if start, ok := parseDate(r.Start); ok && rec.Before(start) {
			return false
		}
		if end, ok := parseDate(r.End); ok && rec.After(end) {
			return false
		}
		return true
	}
	return true
}

// DateFromTimestamp reduces a server timestamp to its calendar date. The API
// emits RFC 1123 ("Mon, 03 Jun 2024 10:00:00 GMT"), but RFC 3339 and bare
// dates are accepted too.
func DateFromTimestamp(ts string) (string, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return "", false
	}
	layouts := []string{
		time.RFC1123,
		time.RFC1123Z,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02 15:04:05.999999",
		DateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format(DateLayout), true
		}
	}
	return "", false
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// civil drops the clock and zone of t, keeping its calendar date in UTC so it
// compares directly with parsed record dates.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
