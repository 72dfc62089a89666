//go:build unit

package timeslot_test

import (
	"testing"
	"time"

	"tablebook/internal/domain/timeslot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDay(t *testing.T) {
	t.Run("valid construction", func(t *testing.T) {
		tod, err := timeslot.NewTimeOfDay(19, 30)
		require.NoError(t, err)
		assert.Equal(t, 19, tod.Hour())
		assert.Equal(t, 30, tod.Minute())
		assert.Equal(t, "19:30", tod.String())
	})

	t.Run("bounds", func(t *testing.T) {
		cases := []struct {
			hour, minute int
			ok           bool
		}{
			{0, 0, true},
			{23, 59, true},
			{24, 0, false},
			{-1, 0, false},
			{12, 60, false},
			{12, -1, false},
		}
		for _, tc := range cases {
			_, err := timeslot.NewTimeOfDay(tc.hour, tc.minute)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, timeslot.ErrInvalidTimeOfDay)
			}
		}
	})

	t.Run("parse", func(t *testing.T) {
		tod, err := timeslot.ParseTimeOfDay("09:05")
		require.NoError(t, err)
		assert.Equal(t, "09:05", tod.String())

		tod, err = timeslot.ParseTimeOfDay("18:00:00")
		require.NoError(t, err)
		assert.Equal(t, "18:00", tod.String())

		_, err = timeslot.ParseTimeOfDay("half past noon")
		assert.ErrorIs(t, err, timeslot.ErrInvalidTimeOfDay)

		_, err = timeslot.ParseTimeOfDay("25:00")
		assert.ErrorIs(t, err, timeslot.ErrInvalidTimeOfDay)
	})

	t.Run("ordering and arithmetic", func(t *testing.T) {
		a, _ := timeslot.NewTimeOfDay(11, 0)
		b, _ := timeslot.NewTimeOfDay(11, 30)

		assert.True(t, a.Before(b))
		assert.False(t, b.Before(a))
		assert.False(t, a.Before(a))

		assert.Equal(t, "11:30", a.AddMinutes(30).String())
		assert.Equal(t, "12:15", a.AddMinutes(75).String())
	})
}

func TestDate(t *testing.T) {
	t.Run("parse and format", func(t *testing.T) {
		d, err := timeslot.ParseDate("2026-09-01")
		require.NoError(t, err)
		assert.Equal(t, "2026-09-01", d.String())
		assert.Equal(t, 2026, d.Year())
		assert.Equal(t, time.September, d.Month())
		assert.Equal(t, 1, d.Day())

		_, err = timeslot.ParseDate("01/09/2026")
		assert.ErrorIs(t, err, timeslot.ErrInvalidDate)

		_, err = timeslot.ParseDate("2026-13-40")
		assert.ErrorIs(t, err, timeslot.ErrInvalidDate)
	})

	t.Run("DateOf uses the instant's location", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// 03:30 UTC is still the previous evening in New York.
		instant := time.Date(2026, 9, 2, 3, 30, 0, 0, time.UTC)
		assert.Equal(t, "2026-09-02", timeslot.DateOf(instant).String())
		assert.Equal(t, "2026-09-01", timeslot.DateOf(instant.In(loc)).String())
	})

	t.Run("AddDays crosses month boundaries", func(t *testing.T) {
		d := timeslot.NewDate(2026, time.August, 30)
		assert.Equal(t, "2026-09-06", d.AddDays(7).String())
		assert.Equal(t, "2026-08-23", d.AddDays(-7).String())
	})

	t.Run("comparisons", func(t *testing.T) {
		a := timeslot.NewDate(2026, time.September, 1)
		b := timeslot.NewDate(2026, time.September, 2)
		c := timeslot.NewDate(2026, time.October, 1)

		assert.True(t, a.Before(b))
		assert.True(t, b.After(a))
		assert.True(t, a.Before(c))
		assert.True(t, a.Equal(timeslot.NewDate(2026, time.September, 1)))
		assert.False(t, a.Equal(b))
	})

	t.Run("ToTime is midnight UTC", func(t *testing.T) {
		d := timeslot.NewDate(2026, time.September, 1)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), d.ToTime())
	})
}
