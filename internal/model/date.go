package model

import (
	"fmt"
	"time"
)

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar day without a time-of-day or timezone component.
// Reservations match on calendar days, never on instants, so keeping a
// dedicated type avoids the off-by-one-day bugs that come with comparing
// timestamps across zones.  The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates an instant to the calendar day it falls on in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}, nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At returns the instant at the given hour and minute on this date in loc.
// Hours past 23 roll into the following day, which is how a slot ending at
// "24:00" resolves to midnight of the next calendar day.
func (d Date) At(hour, minute int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	y, m, day := t.Date()
	return Date{Year: y, Month: m, Day: day}
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(o Date) bool { return d == o }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.  An RFC3339 timestamp is also
// accepted and truncated to its day, so legacy dumps that kept a full
// timestamp in the date field still load.
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a JSON string, got %s", b)
	}
	s := string(b[1 : len(b)-1])
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	y, m, day := t.Date()
	*d = Date{Year: y, Month: m, Day: day}
	return nil
}
