// Package types - Calendar date types
package types

import "time"

// dayLayout is the canonical date format for catalog data
const dayLayout = "2006-01-02"

// Date builds a calendar day at UTC midnight
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ToDay truncates a timestamp to its UTC calendar day
func ToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dayLayout, s)
}

// FormatDate renders a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dayLayout)
}

// DaysBetween returns the whole-day difference to - from
func DaysBetween(from, to time.Time) int {
	return int(ToDay(to).Sub(ToDay(from)).Hours() / 24)
}

// MinDay returns the earlier of two days
func MinDay(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDay returns the later of two days
func MaxDay(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// DateRange is a closed calendar-day interval [From, To]
type DateRange struct {
	// From is the first day of the interval
	From time.Time `json:"from"`

	// To is the last day of the interval
	To time.Time `json:"to"`
}

// NewDateRange creates a range from two days, truncated to UTC midnight
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: ToDay(from), To: ToDay(to)}
}

// Empty reports whether the interval contains no days
func (r DateRange) Empty() bool {
	return r.To.Before(r.From)
}

// Contains reports whether the day falls inside the closed interval
func (r DateRange) Contains(day time.Time) bool {
	d := ToDay(day)
	return !d.Before(r.From) && !d.After(r.To)
}

// Intersects reports whether two closed intervals share at least one day
func (r DateRange) Intersects(o DateRange) bool {
	return !r.From.After(o.To) && !r.To.Before(o.From)
}

// Days returns the inclusive day count of the interval
func (r DateRange) Days() int {
	if r.Empty() {
		return 0
	}
	return DaysBetween(r.From, r.To) + 1
}

// Nights returns the night count of the interval
func (r DateRange) Nights() int {
	if r.Empty() {
		return 0
	}
	return DaysBetween(r.From, r.To)
}

// String renders the interval as "from..to"
func (r DateRange) String() string {
	return FormatDate(r.From) + ".." + FormatDate(r.To)
}
