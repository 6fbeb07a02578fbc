// Package calday provides the canonical calendar-day value used for all
// planning and holiday comparisons. A Day is a date in the plant's business
// timezone with no time-of-day component; converting instants to days must
// always go through FromTime with that timezone so that near-midnight UTC
// timestamps land on the correct local day.
package calday

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout is the wire and storage form of a Day.
const Layout = "2006-01-02"

// Day is a calendar date, timezone-independent once constructed.
type Day struct {
	year  int
	month time.Month
	day   int
}

// New builds a Day from its components. It does not normalize; out-of-range
// components surface when the Day is compared or formatted.
func New(year int, month time.Month, day int) Day {
	return Day{year: year, month: month, day: day}
}

// FromTime reduces an instant to the calendar day it falls on in loc.
func FromTime(t time.Time, loc *time.Location) Day {
	local := t.In(loc)
	return Day{year: local.Year(), month: local.Month(), day: local.Day()}
}

// Parse reads a Day from its YYYY-MM-DD form.
func Parse(value string) (Day, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", value, err)
	}
	return Day{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Weekday returns the day of week for d.
func (d Day) Weekday() time.Weekday {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).Weekday()
}

// IsWeekend reports whether d is a Saturday or Sunday.
func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Equal reports whether two Days are the same calendar date.
func (d Day) Equal(other Day) bool {
	return d == other
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// Year returns the four-digit year.
func (d Day) Year() int {
	return d.year
}

// MarshalJSON encodes the Day as a YYYY-MM-DD string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Day) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("day must be a JSON string in %s form", Layout)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer; Days are stored as DATE columns.
func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner for DATE columns read back as time.Time,
// string, or []byte depending on the driver.
func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Day{}
		return nil
	case time.Time:
		// DATE columns come back at midnight UTC; the components already
		// are the calendar date, so no timezone shift applies here.
		*d = Day{year: v.Year(), month: v.Month(), day: v.Day()}
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into calday.Day", src)
	}
}
