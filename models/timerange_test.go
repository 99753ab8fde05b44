package models

import "testing"

func mustRange(t *testing.T, date, start, end string) TimeRange {
	t.Helper()
	tr, err := NewTimeRange(date, start, end)
	if err != nil {
		t.Fatalf("NewTimeRange(%s, %s, %s): %v", date, start, end, err)
	}
	return tr
}

func TestNewTimeRangeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name             string
		date, start, end string
	}{
		{"bad date", "2053-13-40", "09:00", "10:00"},
		{"bad start", "2053-01-25", "9am", "10:00"},
		{"bad end", "2053-01-25", "09:00", "25:00"},
		{"zero length", "2053-01-25", "09:00", "09:00"},
		{"inverted", "2053-01-25", "10:00", "09:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTimeRange(tc.date, tc.start, tc.end); err == nil {
				t.Errorf("NewTimeRange(%s, %s, %s) accepted invalid input", tc.date, tc.start, tc.end)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	base := TimeRange{Date: "2053-01-25", Start: "10:00", End: "12:00"}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical", "10:00", "12:00", true},
		{"starts inside", "11:00", "13:00", true},
		{"ends inside", "09:00", "11:00", true},
		{"fully inside", "10:30", "11:30", true},
		{"fully covering", "09:00", "13:00", true},
		{"back to back before", "08:00", "10:00", false},
		{"back to back after", "12:00", "14:00", false},
		{"well before", "07:00", "08:00", false},
		{"well after", "13:00", "14:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other := TimeRange{Date: base.Date, Start: tc.start, End: tc.end}
			if got := other.Overlaps(base); got != tc.want {
				t.Errorf("[%s-%s).Overlaps([%s-%s)) = %v, want %v",
					tc.start, tc.end, base.Start, base.End, got, tc.want)
			}
			// Overlap is symmetric.
			if got := base.Overlaps(other); got != tc.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOverlapsDifferentDates(t *testing.T) {
	a := TimeRange{Date: "2053-01-25", Start: "10:00", End: "12:00"}
	b := TimeRange{Date: "2053-01-26", Start: "10:00", End: "12:00"}
	if a.Overlaps(b) {
		t.Error("ranges on different dates must not overlap")
	}
}

func TestParseInputTimeRange(t *testing.T) {
	tr, err := ParseInputTimeRange("2053-01-25", "0900-1030")
	if err != nil {
		t.Fatalf("ParseInputTimeRange: %v", err)
	}
	if tr.Start != "09:00" || tr.End != "10:30" {
		t.Errorf("got %s-%s, want 09:00-10:30", tr.Start, tr.End)
	}

	for _, bad := range []string{"", "0900", "0900-0900", "1030-0900", "9-10", "0900-2500"} {
		if _, err := ParseInputTimeRange("2053-01-25", bad); err == nil {
			t.Errorf("ParseInputTimeRange(%q) accepted invalid input", bad)
		}
	}
}

func TestStartsByEndsBy(t *testing.T) {
	tr := mustRange(t, "2053-01-25", "10:00", "12:00")
	if !tr.StartsBy("10:00") || !tr.StartsBy("11:00") || tr.StartsBy("09:59") {
		t.Error("StartsBy misclassified")
	}
	if !tr.EndsBy("12:00") || tr.EndsBy("11:59") {
		t.Error("EndsBy misclassified")
	}
}
