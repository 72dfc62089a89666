package timeslot

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidDate      = errors.New("invalid date")
)

// TimeOfDay is a wall-clock slot time such as 19:00, independent of date
// and timezone. Slots are keyed by it alongside the calendar date.
type TimeOfDay struct {
	hour   int
	minute int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// ParseTimeOfDay accepts "HH:MM" (and "HH:MM:SS", seconds ignored).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &hour, &minute, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
			return TimeOfDay{}, ErrInvalidTimeOfDay
		}
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

func (t TimeOfDay) MinutesFromMidnight() int {
	return t.hour*60 + t.minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.MinutesFromMidnight() < other.MinutesFromMidnight()
}

// AddMinutes wraps within day bounds at the caller's risk; generation stops
// before the closing time so wrapping never occurs there.
func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	total := t.MinutesFromMidnight() + minutes
	return TimeOfDay{hour: (total / 60) % 24, minute: total % 60}
}

// Date is a civil calendar date. Comparisons deliberately ignore time of day
// so the booking window counts restaurant-local calendar days, not hours.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{year: year, month: month, day: day}
}

// ParseDate accepts "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d Date) AddDays(days int) Date {
	t := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return DateOf(t)
}

func (d Date) Before(other Date) bool {
	return d.compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.compare(other) > 0
}

func (d Date) Equal(other Date) bool {
	return d.compare(other) == 0
}

func (d Date) compare(other Date) int {
	switch {
	case d.year != other.year:
		return d.year - other.year
	case d.month != other.month:
		return int(d.month) - int(other.month)
	default:
		return d.day - other.day
	}
}

// ToTime returns midnight of the date in UTC, the representation the
// persistence layer binds to DATE columns.
func (d Date) ToTime() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}
