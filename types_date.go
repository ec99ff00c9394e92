package debtledger

import (
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool {
	return d.y == 0 && d.m == 0 && d.d == 0
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Sub returns the number of calendar days from x to d.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()) / (24 * time.Hour)) }

// DaysInMonth returns the length of the date's month.
func (d Date) DaysInMonth() int {
	// day 0 of the next month is the last day of this month.
	return time.Date(d.y, d.m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthClamped returns the date n months later, keeping the day of month
// and clamping it to the target month's length (2020-01-31 +1 is 2020-02-29).
// This differs from time.AddDate, which normalizes the overflow into the
// following month.
func (d Date) AddMonthClamped(n int) Date {
	first := NewDate(d.y, d.m+time.Month(n), 1)
	return NewDate(first.y, first.m, min(d.d, first.DaysInMonth()))
}

// IsLeapYear reports whether the date's year is a leap year.
func (d Date) IsLeapYear() bool {
	return d.y%4 == 0 && (d.y%100 != 0 || d.y%400 == 0)
}

// SemesterStart returns January 1 or July 1 of the date's year, whichever
// starts the calendar half-year containing the date.
func (d Date) SemesterStart() Date {
	if d.m > time.June {
		return NewDate(d.y, time.July, 1)
	}
	return NewDate(d.y, time.January, 1)
}

// SemesterEnd returns June 30 or December 31 of the date's year, whichever
// ends the calendar half-year containing the date.
func (d Date) SemesterEnd() Date {
	if d.m > time.June {
		return NewDate(d.y, time.December, 31)
	}
	return NewDate(d.y, time.June, 30)
}

// PrecedingSemesterEnd returns the last day of the calendar half-year
// preceding the one containing the date.
func (d Date) PrecedingSemesterEnd() Date {
	if d.m > time.June {
		return NewDate(d.y, time.June, 30)
	}
	return NewDate(d.y-1, time.December, 31)
}

// ParseDate parses a Date from a string. It is lenient and accepts formats
// like "2025-7-1".
func ParseDate(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
