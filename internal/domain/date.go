package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a year/month/day triple does not exist on
// the calendar. It is the only error the forecast core produces.
var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

// CalendarDate is a day on the proleptic Gregorian calendar with no
// time-of-day or zone. It is the sole input to every simulator.
type CalendarDate struct {
	year  int
	month time.Month
	day   int
}

// NewDate validates a year/month/day triple. Years outside 1..9999 are rejected
// so the date seed stays positive and fits the documented layout.
func NewDate(year, month, day int) (CalendarDate, error) {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return CalendarDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return CalendarDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return CalendarDate{year: year, month: time.Month(month), day: day}, nil
}

// MustDate is NewDate for literals known to be valid. It panics otherwise.
func MustDate(year, month, day int) CalendarDate {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses an ISO-8601 calendar date ("2024-07-15").
func ParseDate(s string) (CalendarDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// DateOf drops the time-of-day from t, keeping the calendar day as observed in
// t's own location.
func DateOf(t time.Time) CalendarDate {
	return CalendarDate{year: t.Year(), month: t.Month(), day: t.Day()}
}

func (d CalendarDate) Year() int         { return d.year }
func (d CalendarDate) Month() time.Month { return d.month }
func (d CalendarDate) Day() int          { return d.day }

// IsZero reports whether d is the zero value, which is not a valid date.
func (d CalendarDate) IsZero() bool { return d.year == 0 }

func (d CalendarDate) midnight() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// DayOfYear returns 1..365, or 1..366 in leap years.
func (d CalendarDate) DayOfYear() int { return d.midnight().YearDay() }

// DaysInYear returns 366 for leap years and 365 otherwise.
func (d CalendarDate) DaysInYear() int {
	if isLeap(d.year) {
		return 366
	}
	return 365
}

func (d CalendarDate) Weekday() time.Weekday { return d.midnight().Weekday() }

// AddDays returns the date n days after d (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

// Before reports whether d falls strictly before other.
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.midnight().Before(other.midnight())
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalText encodes the date as YYYY-MM-DD.
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a YYYY-MM-DD date, rejecting impossible days.
func (d *CalendarDate) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
