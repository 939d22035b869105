package window

import (
	"testing"
	"time"
)

var reference = time.Date(2024, time.June, 3, 15, 30, 0, 0, time.UTC)

func TestInWindow(t *testing.T) {
	testCases := []struct {
		name   string
		record string
		window Window
		rng    Range
		want   bool
	}{
		{"today exact", "2024-06-03", Today, Range{}, true},
		{"today yesterday", "2024-06-02", Today, Range{}, false},
		{"week exactly seven days back", "2024-05-27", Week, Range{}, true},
		{"week eight days back", "2024-05-26", Week, Range{}, false},
		{"week future record still matches", "2024-07-30", Week, Range{}, true},
		{"month first day", "2024-06-01", Month, Range{}, true},
		{"month previous month last day within a week", "2024-05-31", Month, Range{}, false},
		{"month same month other year", "2023-06-15", Month, Range{}, false},
		{"year same year", "2024-01-01", Year, Range{}, true},
		{"year previous year", "2023-12-31", Year, Range{}, false},
		{"custom inside", "2024-05-10", Custom, Range{Start: "2024-05-01", End: "2024-05-31"}, true},
		{"custom start inclusive", "2024-05-01", Custom, Range{Start: "2024-05-01", End: "2024-05-31"}, true},
		{"custom end inclusive", "2024-05-31", Custom, Range{Start: "2024-05-01", End: "2024-05-31"}, true},
		{"custom after end", "2024-06-01", Custom, Range{Start: "2024-05-01", End: "2024-05-31"}, false},
		{"custom open start", "2001-01-01", Custom, Range{End: "2024-05-31"}, true},
		{"custom open end", "2030-01-01", Custom, Range{Start: "2024-05-01"}, true},
		{"custom unbounded", "1999-01-01", Custom, Range{}, true},
		{"all", "1999-01-01", All, Range{}, true},
		{"bad record date bounded", "June 1st", Month, Range{}, false},
		{"bad record date all", "June 1st", All, Range{}, true},
		{"unknown window", "2024-06-01", Window("decade"), Range{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InWindow(tc.record, reference, tc.window, tc.rng); got != tc.want {
				t.Errorf("InWindow(%s, %s) = %v, want %v", tc.record, tc.window, got, tc.want)
			}
		})
	}
}

func TestInWindowUsesReferenceLocation(t *testing.T) {
	lagos := time.FixedZone("WAT", 60*60)
	// 23:30 UTC on June 3 is already June 4 in Lagos
	now := time.Date(2024, time.June, 3, 23, 30, 0, 0, time.UTC).In(lagos)

	if !InWindow("2024-06-04", now, Today, Range{}) {
		t.Error("expected local calendar date to decide today")
	}
	if !InWindow("2024-05-28", now, Week, Range{}) {
		t.Error("expected week cutoff from the local date")
	}
}

func TestParse(t *testing.T) {
	w, err := Parse("", Today)
	if err != nil || w != Today {
		t.Fatalf("expected fallback today, got %v %v", w, err)
	}
	w, err = Parse(" Month ", All)
	if err != nil || w != Month {
		t.Fatalf("expected month, got %v %v", w, err)
	}
	if _, err := Parse("fortnight", All); err == nil {
		t.Fatal("expected error for unknown period")
	}
}

func TestRangeValidate(t *testing.T) {
	if err := (Range{Start: "2024-05-01", End: "2024-05-31"}).Validate(); err != nil {
		t.Errorf("expected valid range, got %v", err)
	}
	if err := (Range{}).Validate(); err != nil {
		t.Errorf("expected empty range to be valid, got %v", err)
	}
	if err := (Range{Start: "01/05/2024"}).Validate(); err == nil {
		t.Error("expected error for malformed start")
	}
	if err := (Range{Start: "2024-06-01", End: "2024-05-01"}).Validate(); err == nil {
		t.Error("expected error for reversed range")
	}
}

func TestDateFromTimestamp(t *testing.T) {
	cases := map[string]string{
		"Mon, 03 Jun 2024 10:00:00 GMT": "2024-06-03",
		"2024-06-03T10:00:00Z":          "2024-06-03",
		"2024-06-03T10:00:00.123456":    "2024-06-03",
		"2024-06-03":                    "2024-06-03",
	}
	for in, want := range cases {
		got, ok := DateFromTimestamp(in)
		if !ok || got != want {
			t.Errorf("DateFromTimestamp(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := DateFromTimestamp("yesterday"); ok {
		t.Error("expected unparseable timestamp to fail")
	}
	if _, ok := DateFromTimestamp(""); ok {
		t.Error("expected empty timestamp to fail")
	}
}
