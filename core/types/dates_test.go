// Package types - Calendar interval tests
package types

import "testing"

// TestDateRangeCounts distinguishes inclusive days from nights
func TestDateRangeCounts(t *testing.T) {
	r := NewDateRange(Date(2024, 6, 1), Date(2024, 6, 5))
	if r.Days() != 5 {
		t.Errorf("expected 5 days, got %d", r.Days())
	}
	if r.Nights() != 4 {
		t.Errorf("expected 4 nights, got %d", r.Nights())
	}

	single := NewDateRange(Date(2024, 6, 1), Date(2024, 6, 1))
	if single.Days() != 1 || single.Nights() != 0 {
		t.Errorf("single day: expected 1 day and 0 nights, got %d/%d", single.Days(), single.Nights())
	}
}

// TestDateRangeEmpty treats inverted intervals as empty
func TestDateRangeEmpty(t *testing.T) {
	r := DateRange{From: Date(2024, 6, 5), To: Date(2024, 6, 1)}
	if !r.Empty() {
		t.Error("inverted interval must be empty")
	}
	if r.Days() != 0 || r.Nights() != 0 {
		t.Errorf("empty interval must count zero, got %d/%d", r.Days(), r.Nights())
	}
}

// TestDateRangeIntersects includes shared boundary days
func TestDateRangeIntersects(t *testing.T) {
	a := NewDateRange(Date(2024, 6, 1), Date(2024, 6, 5))
	b := NewDateRange(Date(2024, 6, 5), Date(2024, 6, 10))
	c := NewDateRange(Date(2024, 6, 6), Date(2024, 6, 10))

	if !a.Intersects(b) {
		t.Error("intervals sharing a boundary day must intersect")
	}
	if a.Intersects(c) {
		t.Error("disjoint intervals must not intersect")
	}
}

// TestToDayNormalizes strips time-of-day and zone to a UTC calendar day
func TestToDayNormalizes(t *testing.T) {
	d, err := ParseDate("2024-06-03")
	if err != nil {
		t.Fatal(err)
	}
	if !ToDay(d).Equal(Date(2024, 6, 3)) {
		t.Errorf("expected 2024-06-03, got %s", FormatDate(ToDay(d)))
	}
	if DaysBetween(Date(2024, 6, 1), Date(2024, 6, 5)) != 4 {
		t.Error("expected 4 days between Jun 1 and Jun 5")
	}
}
