//go:build unit

package booking_test

import (
	"testing"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/timeslot"
	"tablebook/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	windowDays   = 7
	maxPartySize = 20
)

func newFactoryAt(t *testing.T, instant time.Time) *booking.Factory {
	t.Helper()
	return booking.NewFactory(clock.NewMockClock(instant), windowDays, maxPartySize)
}

func createAt(f *booking.Factory, tz string, date timeslot.Date) (*booking.Booking, error) {
	restaurant := booking.RestaurantSpec{ID: uuid.New(), Timezone: tz}
	tod, _ := timeslot.NewTimeOfDay(19, 0)
	return f.CreateBooking(restaurant, uuid.New(), date, tod, 4, nil, "", nil)
}

func TestFactoryCreateBooking(t *testing.T) {
	// 2026-09-01 10:00 UTC
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("builds a pending booking with a fresh reference", func(t *testing.T) {
		f := newFactoryAt(t, now)
		b, err := createAt(f, "UTC", timeslot.NewDate(2026, time.September, 3))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPending, b.Status())
		assert.NotEmpty(t, b.Reference().String())
		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, 4, b.PartySize().Value())
		assert.Equal(t, now, b.CreatedAt())
		assert.Equal(t, b.CreatedAt(), b.UpdatedAt())
	})

	t.Run("window boundaries", func(t *testing.T) {
		f := newFactoryAt(t, now)

		cases := []struct {
			name  string
			date  timeslot.Date
			errIs error
		}{
			{name: "same day is allowed", date: timeslot.NewDate(2026, time.September, 1)},
			{name: "last day of window", date: timeslot.NewDate(2026, time.September, 8)},
			{name: "one day past the window", date: timeslot.NewDate(2026, time.September, 9), errIs: booking.ErrDateOutOfWindow},
			{name: "yesterday", date: timeslot.NewDate(2026, time.August, 31), errIs: booking.ErrDateInPast},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := createAt(f, "UTC", tc.date)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
					return
				}
				assert.NoError(t, err)
			})
		}
	})

	t.Run("window counts calendar days in the restaurant's timezone", func(t *testing.T) {
		// 23:30 in New York on Sep 1; UTC is already Sep 2.
		lateEvening := time.Date(2026, 9, 2, 3, 30, 0, 0, time.UTC)
		f := newFactoryAt(t, lateEvening)

		// Sep 8 is local today+7, still inside the window even though
		// barely seven 24h spans remain.
		_, err := createAt(f, "America/New_York", timeslot.NewDate(2026, time.September, 8))
		assert.NoError(t, err)

		// Sep 9 is local today+8.
		_, err = createAt(f, "America/New_York", timeslot.NewDate(2026, time.September, 9))
		assert.ErrorIs(t, err, booking.ErrDateOutOfWindow)

		// Sep 1 is still "today" locally, not the past.
		_, err = createAt(f, "America/New_York", timeslot.NewDate(2026, time.September, 1))
		assert.NoError(t, err)

		// In UTC the same instant is already Sep 2, so Sep 1 is past.
		_, err = createAt(f, "UTC", timeslot.NewDate(2026, time.September, 1))
		assert.ErrorIs(t, err, booking.ErrDateInPast)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		f := newFactoryAt(t, now)
		_, err := createAt(f, "Mars/Olympus_Mons", timeslot.NewDate(2026, time.September, 3))
		assert.ErrorIs(t, err, booking.ErrUnknownTimezone)
	})

	t.Run("party size is validated before the window", func(t *testing.T) {
		f := newFactoryAt(t, now)
		restaurant := booking.RestaurantSpec{ID: uuid.New(), Timezone: "UTC"}
		tod, _ := timeslot.NewTimeOfDay(19, 0)

		_, err := f.CreateBooking(restaurant, uuid.New(), timeslot.NewDate(2026, time.September, 3), tod, 0, nil, "", nil)
		assert.ErrorIs(t, err, booking.ErrInvalidPartySize)

		_, err = f.CreateBooking(restaurant, uuid.New(), timeslot.NewDate(2026, time.September, 3), tod, maxPartySize+1, nil, "", nil)
		assert.ErrorIs(t, err, booking.ErrPartySizeTooLarge)
	})
}

func TestBookingRegenerateReference(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f := newFactoryAt(t, now)

	b, err := createAt(f, "UTC", timeslot.NewDate(2026, time.September, 3))
	require.NoError(t, err)

	before := b.Reference().String()
	b.RegenerateReference(now.Add(time.Millisecond))
	assert.NotEqual(t, before, b.Reference().String())
}

func TestBookingIsOwnedBy(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f := newFactoryAt(t, now)

	owner := uuid.New()
	restaurant := booking.RestaurantSpec{ID: uuid.New(), Timezone: "UTC"}
	tod, _ := timeslot.NewTimeOfDay(19, 0)

	b, err := f.CreateBooking(restaurant, owner, timeslot.NewDate(2026, time.September, 3), tod, 2, nil, "", nil)
	require.NoError(t, err)

	assert.True(t, b.IsOwnedBy(owner))
	assert.False(t, b.IsOwnedBy(uuid.New()))
}

func TestNewLineItem(t *testing.T) {
	id := uuid.New()

	li, err := booking.NewLineItem(id, 2, 1250)
	require.NoError(t, err)
	assert.Equal(t, id, li.MenuItemID())
	assert.Equal(t, 2, li.Quantity())
	assert.Equal(t, 1250, li.PriceCents())

	_, err = booking.NewLineItem(id, 0, 1250)
	assert.ErrorIs(t, err, booking.ErrInvalidQuantity)

	_, err = booking.NewLineItem(id, -1, 1250)
	assert.ErrorIs(t, err, booking.ErrInvalidQuantity)
}
